package utils

import (
	"net/url"
	"path/filepath"
	"strings"
)

const fileScheme = "file://"

// NormalizeURI ensures the URI has the proper file:// scheme
func NormalizeURI(uri string) string {
	if strings.HasPrefix(uri, fileScheme) {
		return uri
	}

	// Other schemes pass through untouched
	if strings.Contains(uri, "://") {
		return uri
	}

	return FilePathToURI(uri)
}

// URIToFilePath converts a file URI to a local file path, decoding
// percent escapes. Non-file URIs are returned unchanged.
func URIToFilePath(uri string) string {
	if !strings.HasPrefix(uri, fileScheme) {
		if strings.Contains(uri, "://") {
			return uri
		}
		return filepath.FromSlash(uri)
	}

	path := strings.TrimPrefix(uri, fileScheme)
	if decoded, err := url.PathUnescape(path); err == nil {
		path = decoded
	}

	// file:///C:/src -> C:/src
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path)
}

// FilePathToURI converts a local file path to a file URI
func FilePathToURI(path string) string {
	if strings.HasPrefix(path, fileScheme) {
		return path
	}

	if absPath, err := filepath.Abs(path); err == nil {
		path = absPath
	}

	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return fileScheme + (&url.URL{Path: path}).EscapedPath()
}
