package errors

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrorType defines distinct categories for errors originating from the
// generation and delivery pipeline.
type ErrorType string

const (
	// ValidationError represents errors caused by invalid input parameters,
	// such as an empty frame sequence or a non-positive duration.
	ValidationError ErrorType = "validation_error"
	// GenerationError represents errors occurring while running the external
	// text-to-video inference pipeline.
	GenerationError ErrorType = "generation_error"
	// EncodingError represents errors occurring during video encoding
	// (FFmpeg execution).
	EncodingError ErrorType = "encoding_error"
	// SystemError represents underlying system issues, such as file I/O
	// errors or command execution problems outside the encoding itself.
	SystemError ErrorType = "system_error"
)

// StructuredError represents a detailed error originating from pipeline
// operations. It includes a type, message, optional details, timestamp, and
// a specific error code. It implements the standard Go `error` interface.
type StructuredError struct {
	// Type categorizes the error (e.g., TransferError, ValidationError).
	Type ErrorType `json:"type"`
	// Message provides a concise, human-readable description of the error.
	Message string `json:"message"`
	// Details offers additional context or the underlying error message, if available.
	Details string `json:"details,omitempty"`
	// Timestamp marks when the error occurred in RFC3339 format.
	Timestamp string `json:"timestamp"`
	// Code provides a specific integer code unique to the error source within its type.
	Code int `json:"code"`
}

// Error implements the standard `error` interface for StructuredError.
// It returns a formatted string including the error type, message, and details.
func (e *StructuredError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Message, e.Details)
}

// JSON returns the StructuredError serialized as a JSON string.
// Returns an empty string and an error if marshalling fails.
func (e *StructuredError) JSON() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// New creates a new StructuredError instance.
// It automatically sets the Timestamp to the current time.
func New(errorType ErrorType, message, details string, code int) *StructuredError {
	return &StructuredError{
		Type:      errorType,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().Format(time.RFC3339),
		Code:      code,
	}
}

// Wrap creates a new StructuredError, using the message from an existing
// standard Go error as the Details field.
// If the input error `err` is nil, Details will be empty.
func Wrap(err error, errorType ErrorType, message string, code int) *StructuredError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return New(errorType, message, details, code)
}

// IsType reports whether err is a StructuredError of the given type.
func IsType(err error, errorType ErrorType) bool {
	se, ok := err.(*StructuredError)
	return ok && se.Type == errorType
}
