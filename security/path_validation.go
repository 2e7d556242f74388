package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// GetCleanAbsPath validates and returns a clean absolute path
func GetCleanAbsPath(path string) (string, error) {
	if path == "" || path == "." {
		return "", errors.New("path cannot be empty or current directory")
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("invalid file path: %w", err)
	}
	return absPath, nil
}

// IsWithinAllowedDirectory checks if a path is within an allowed base directory.
// A parent is never considered within its child.
func IsWithinAllowedDirectory(path, baseDir string) bool {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	cleanBase := filepath.Clean(absBase)
	cleanPath := filepath.Clean(absPath)

	if cleanPath == cleanBase {
		return true
	}

	return strings.HasPrefix(cleanPath, cleanBase+string(filepath.Separator))
}

// ValidateConfigPath validates a configuration file path against allowed
// directories. The current directory is always allowed.
func ValidateConfigPath(path string, allowedDirectories []string) (string, error) {
	cleanPath, err := GetCleanAbsPath(path)
	if err != nil {
		return "", fmt.Errorf("invalid config path: %w", err)
	}

	if !slices.Contains(allowedDirectories, ".") {
		allowedDirectories = append(allowedDirectories, ".")
	}

	for _, allowedDir := range allowedDirectories {
		if IsWithinAllowedDirectory(cleanPath, allowedDir) {
			return cleanPath, nil
		}
	}

	return "", fmt.Errorf("file path is not allowed: %s", cleanPath)
}

// ValidateSourcePath checks that a source file exists, is a regular file,
// and sits under one of the allowed directories. An empty allow list
// accepts any location.
func ValidateSourcePath(path string, allowedDirectories []string) (string, error) {
	cleanPath, err := GetCleanAbsPath(path)
	if err != nil {
		return "", fmt.Errorf("invalid source path: %w", err)
	}

	if len(allowedDirectories) > 0 && !slices.ContainsFunc(allowedDirectories, func(dir string) bool {
		return IsWithinAllowedDirectory(cleanPath, dir)
	}) {
		return "", fmt.Errorf("file path is not allowed: %s", cleanPath)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return "", fmt.Errorf("cannot access source file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("not a regular file: %s", cleanPath)
	}

	return cleanPath, nil
}

// GetConfigAllowedDirectories returns the list of directories where config files are allowed
func GetConfigAllowedDirectories(configDir, workingDir string) []string {
	allowedDirs := []string{}

	if configDir != "" {
		allowedDirs = append(allowedDirs, configDir)
	}

	if workingDir != "" {
		allowedDirs = append(allowedDirs, workingDir)
	}

	return append(allowedDirs, ".")
}
