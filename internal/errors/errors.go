package errors

import (
	"errors"
	"fmt"
	"syscall"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrMultipleJSON    = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrUnexpectedEOF   = errors.New("unexpected end of input")
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrNoInput         = errors.New("no input provided: pass a file or pipe JSON data to stdin")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrOutputClosed    = errors.New("output closed by reader")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to reading input
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to the configuration file
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to writing output
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// IsOutputClosed reports whether err means the reader of our output went
// away, e.g. stdout piped into head. Such errors are never reported.
func IsOutputClosed(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrOutputClosed) || errors.Is(err, syscall.EPIPE)
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			if appErr.Err != nil && !isSentinel(appErr.Err) {
				return fmt.Sprintf("Input error: %s: %v", appErr.Message, appErr.Err)
			}
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("parse error: %s", appErr.Message)
		case ErrorTypeConfig:
			if appErr.Err != nil && !isSentinel(appErr.Err) {
				return fmt.Sprintf("Configuration error: %s: %v", appErr.Message, appErr.Err)
			}
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "parse error: input is empty"
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "parse error: the input contains invalid JSON"
	}
	if errors.Is(err, ErrMultipleJSON) {
		return "parse error: multiple JSON values found, only one document is allowed"
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Input error: the specified file could not be found"
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Input error: invalid file path"
	}
	if errors.Is(err, ErrNoInput) {
		return "Input error: no input provided. Pass a file or pipe JSON data to stdin."
	}

	return fmt.Sprintf("Error: %v", err)
}

func isSentinel(err error) bool {
	switch err {
	case ErrEmptyInput, ErrInvalidJSON, ErrMultipleJSON, ErrUnexpectedEOF,
		ErrFileNotFound, ErrInvalidFilePath, ErrNoInput, ErrInvalidConfig, ErrOutputClosed:
		return true
	}
	return false
}
