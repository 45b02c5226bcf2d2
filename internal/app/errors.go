package app

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

// ValidationError indicates missing or malformed request fields
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// PreconditionError indicates the session is not in the state an operation needs
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// NotFoundError indicates a named resource does not exist
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ExternalOperationError wraps a failed call into WhatsApp or a media host
type ExternalOperationError struct {
	Op    string
	Err   error
	Stack []byte
}

// NewExternalOperationError captures the current stack alongside err
func NewExternalOperationError(op string, err error) *ExternalOperationError {
	return &ExternalOperationError{Op: op, Err: err, Stack: debug.Stack()}
}

func (e *ExternalOperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalOperationError) Unwrap() error {
	return e.Err
}

// ErrNotConnected is returned by operations that need a connected session
var ErrNotConnected = &PreconditionError{Message: "WhatsApp client is not connected"}

// StatusCode maps an error to its HTTP status
func StatusCode(err error) int {
	var validation *ValidationError
	var precondition *PreconditionError
	var notFound *NotFoundError

	switch {
	case errors.As(err, &validation), errors.As(err, &precondition):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody builds the JSON error payload. Stack traces are included only when showStack is set.
func ErrorBody(err error, showStack bool) map[string]any {
	body := map[string]any{"error": err.Error()}

	var external *ExternalOperationError
	if showStack && errors.As(err, &external) && len(external.Stack) > 0 {
		body["stack"] = string(external.Stack)
	}
	return body
}
