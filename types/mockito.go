package types

import "time"

const (
	DefaultUnresolvedType = "void"
	DefaultRequestTimeout = 10 * time.Second
)

// MockitoConfig controls how generated statements are delivered
type MockitoConfig struct {
	CopyToClipboard  *bool  `json:"copy_to_clipboard,omitempty"`
	UnresolvedType   string `json:"unresolved_type,omitempty"`
	RequestTimeoutMs int    `json:"request_timeout_ms,omitempty"`
}

// ShouldCopy reports whether statements go to the clipboard. Defaults to true.
func (c MockitoConfig) ShouldCopy() bool {
	return c.CopyToClipboard == nil || *c.CopyToClipboard
}

// Placeholder is the type name used when the language server cannot
// resolve a return or parameter type.
func (c MockitoConfig) Placeholder() string {
	if c.UnresolvedType == "" {
		return DefaultUnresolvedType
	}
	return c.UnresolvedType
}

func (c MockitoConfig) RequestTimeout() time.Duration {
	if c.RequestTimeoutMs <= 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}
