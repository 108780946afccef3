package errors

import (
	"errors"
	"fmt"
)

// Codes attached to upstream failures. The feed controller switches on them.
const (
	CodeMissingCredential = "missing_credential"
	CodeAuthRejected      = "auth_rejected"
	CodeUpstream          = "upstream_error"
	CodeNetwork           = "network_failure"
)

// ErrUnauthorized is the cause attached to a rejected API key.
var ErrUnauthorized = errors.New("unauthorized")

// Error represents a custom error type
type Error struct {
	Code    string
	Message string
	// Status is the upstream HTTP status, zero when no response was received.
	Status int
	Err    error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// NewWithCode creates an error carrying a code and no cause.
func NewWithCode(code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WrapWithCode wraps an error with a code and message
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Upstream builds an error for a non-success HTTP response.
func Upstream(code string, status int, message string, cause error) error {
	return &Error{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     cause,
	}
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetStatus returns the upstream HTTP status if one was recorded.
func GetStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// GetMessage returns the error message
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsUnauthorized returns true if the error is an unauthorized error
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || GetCode(err) == CodeAuthRejected
}
