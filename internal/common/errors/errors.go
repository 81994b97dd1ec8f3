// Package errors provides standardized error handling for the template
// normalization tool. These codes only appear at the I/O boundary
// (loading, saving, fetching); the normalization passes themselves never
// fail, malformed metadata degrades to a logged per-resource no-op.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeTemplateReadFailed  ErrorCode = "TEMPLATE_READ_FAILED"
	ErrCodeTemplateParseFailed ErrorCode = "TEMPLATE_PARSE_FAILED"
	ErrCodeTemplateWriteFailed ErrorCode = "TEMPLATE_WRITE_FAILED"
	ErrCodeTemplateFetchFailed ErrorCode = "TEMPLATE_FETCH_FAILED"
	ErrCodeManifestWriteFailed ErrorCode = "MANIFEST_WRITE_FAILED"
	ErrCodeConfigInvalid       ErrorCode = "CONFIG_INVALID"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewTemplateReadFailedError creates a non-retryable read error.
func NewTemplateReadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateReadFailed,
		Message:   "Failed to read template file",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateParseFailedError creates a non-retryable parse error.
func NewTemplateParseFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateParseFailed,
		Message:   "Failed to parse template document",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateWriteFailedError creates a retryable write error.
func NewTemplateWriteFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateWriteFailed,
		Message:   "Failed to write normalized template",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateFetchFailedError creates a retryable remote fetch error.
func NewTemplateFetchFailedError(uri string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateFetchFailed,
		Message:   "Failed to fetch remote template",
		Details:   fmt.Sprintf("uri: %s, error: %s", uri, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewManifestWriteFailedError creates a retryable manifest write error.
func NewManifestWriteFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeManifestWriteFailed,
		Message:   "Failed to write build manifest",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigInvalidError creates a non-retryable configuration error.
func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsRetryable reports whether err carries a retryable StandardError code.
func IsRetryable(err error) bool {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Retryable
	}
	return false
}
