package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptySource     = errors.New("source for decoding is empty")
	ErrTargetUndefined = errors.New("target file undefined")
	ErrTargetExists    = errors.New("target already exists")
	ErrNotRegularFile  = errors.New("not a regular file")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe JSONX data to stdin")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeFile        ErrorType = "file"
	ErrorTypeEmptySource ErrorType = "empty source"
	ErrorTypeDecode      ErrorType = "decode"
	ErrorTypeInput       ErrorType = "input"
	ErrorTypeOutput      ErrorType = "output"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// AppError is an application-specific error with context. Path is set for
// file errors so the offending path always travels with the failure.
type AppError struct {
	Type    ErrorType
	Path    string
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %s: %v", e.Type, e.Path, e.Message, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Path, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	// Check if target is also an *AppError and if the types match
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewFileError creates a new error for a source or target file problem.
// The message names the specific violated condition.
func NewFileError(path, message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFile,
		Path:    path,
		Message: message,
		Err:     err,
	}
}

// NewEmptySourceError creates the error for decoding with no source text.
func NewEmptySourceError() *AppError {
	return &AppError{
		Type:    ErrorTypeEmptySource,
		Message: "source for decoding is empty",
		Err:     ErrEmptySource,
	}
}

// NewDecodeError creates a new error for a failed JSON decode
func NewDecodeError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeDecode,
		Message: message,
		Err:     err,
	}
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeFile:
			if appErr.Path != "" {
				return fmt.Sprintf("File error: %s: %s", appErr.Path, appErr.Message)
			}
			return fmt.Sprintf("File error: %s", appErr.Message)
		case ErrorTypeEmptySource:
			return fmt.Sprintf("Empty source: %s", appErr.Message)
		case ErrorTypeDecode:
			return fmt.Sprintf("Decode error: %s", appErr.Message)
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptySource) {
		return "Error: The source is empty. Please load JSONX text before decoding."
	}
	if errors.Is(err, ErrTargetUndefined) {
		return "Error: No target file given and none can be derived. Please specify an output path."
	}
	if errors.Is(err, ErrTargetExists) {
		return "Error: The target file already exists. Pass --overwrite to replace it."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe JSONX data to stdin."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
