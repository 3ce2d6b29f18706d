package core

import (
	"errors"
	"fmt"
)

// FieldError is used to indicate an error with a specific input field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err *ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// APIError is returned by the HTTP client for any non-2xx response.
// Message carries the server-supplied message when the body had one,
// otherwise a generic status-coded message. Payload keeps the raw body
// for callers that need to branch on it.
type APIError struct {
	Status  int
	Message string
	Payload []byte
}

func NewAPIError(status int, message string, payload []byte) *APIError {
	if message == "" {
		message = fmt.Sprintf("HTTP error, status %d", status)
	}
	return &APIError{Status: status, Message: message, Payload: payload}
}

func (e *APIError) Error() string { return e.Message }

// StatusCode returns the HTTP status carried by err, or 0 when err is
// not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
