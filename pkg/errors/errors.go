// Package errors provides custom error types for the enbyscan system.
// These errors enable programmatic error checking and carry enough
// context to explain which external source or file an operation failed on.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the enbyscan system
var (
	// ErrTransport indicates a network-level failure (DNS, connect, timeout)
	ErrTransport = errors.New("transport failure")

	// ErrBadResponse indicates a non-success status or malformed payload
	ErrBadResponse = errors.New("bad response")

	// ErrMalformedIdentity indicates an identity key that could not be derived
	ErrMalformedIdentity = errors.New("malformed identity")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")
)

// APIError represents an error from an external source API.
// A zero StatusCode with a non-nil Err is a transport failure;
// a non-2xx StatusCode is a bad response.
type APIError struct {
	Source     string // Source ID as string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Source, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Source, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 0 {
		return target == ErrTransport
	}
	if e.StatusCode < 200 || e.StatusCode >= 300 {
		return target == ErrBadResponse
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(source string, statusCode int, message string) *APIError {
	return &APIError{
		Source:     source,
		StatusCode: statusCode,
		Message:    message,
	}
}

// MalformedIdentityError represents a failure to derive a stable join key
// from a source record, most commonly an entity URL that does not carry
// a well-formed QID.
type MalformedIdentityError struct {
	Source string
	Value  string // the raw value the key was derived from
	Err    error
}

// Error implements the error interface
func (e *MalformedIdentityError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("malformed identity from %s: %q", e.Source, e.Value)
	}
	return fmt.Sprintf("malformed identity: %q", e.Value)
}

// Unwrap implements errors.Unwrap
func (e *MalformedIdentityError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *MalformedIdentityError) Is(target error) bool {
	return target == ErrMalformedIdentity
}

// NewMalformedIdentityError creates a new MalformedIdentityError
func NewMalformedIdentityError(source, value string) *MalformedIdentityError {
	return &MalformedIdentityError{Source: source, Value: value}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "sparql-json", etc.
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parse error in %s from %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrBadResponse
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsTransport checks if an error is a transport failure
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsBadResponse checks if an error is a bad response error
func IsBadResponse(err error) bool {
	return errors.Is(err, ErrBadResponse)
}

// IsMalformedIdentity checks if an error is a malformed identity error
func IsMalformedIdentity(err error) bool {
	return errors.Is(err, ErrMalformedIdentity)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Source: source, Message: err.Error(), Err: err}
}

// WrapAPI wraps an error as an APIError
func WrapAPI(source string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Source:     source,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}
