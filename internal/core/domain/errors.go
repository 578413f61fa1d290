package domain

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the service boundary. Stable values: the mobile
// client branches on them to decide how an error is rendered.
const (
	CodeAuthInvalid    = "AUTH_INVALID"
	CodeAuthExpired    = "AUTH_EXPIRED"
	CodeNetworkError   = "NETWORK_ERROR"
	CodeNotImplemented = "NOT_IMPLEMENTED"
)

var ErrNotAuthenticated = errors.New("not authenticated")
var ErrNotificationNotFound = errors.New("notification not found")
var ErrRequestNotFound = errors.New("service request not found")
var ErrFlowFinished = errors.New("flow already finished")

// APIError is the error envelope returned by the SKY service boundary.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAPIError builds an APIError with the given code and user-facing message.
func NewAPIError(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// ErrNotImplemented marks a boundary operation that has not been wired to the
// real backend yet. It must stay a distinct, recognizable condition so
// integration status is observable.
var ErrNotImplemented = &APIError{Code: CodeNotImplemented, Message: "API real não configurada."}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// ErrorCode returns the boundary code carried by err, or "" for plain errors.
func ErrorCode(err error) string {
	if ae, ok := AsAPIError(err); ok {
		return ae.Code
	}
	return ""
}

// ValidationError is a local, synchronous input failure. It blocks the
// current operation and is rendered inline; it never reaches the cache's
// shared error field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
