package client

import (
	"errors"
	"fmt"
)

// User-facing messages.
const (
	MsgEmptyText     = "Please enter some text to analyze"
	MsgRequestFailed = "Failed to analyze sentiment"
)

// ValidationError is returned when the text is empty after trimming. No
// request is made.
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// RequestError covers transport failures and non-2xx responses.
type RequestError struct {
	// StatusCode is 0 when no response was received
	StatusCode int

	// Detail is the backend's "detail" field, when it sent one
	Detail string

	Cause error
}

// Error implements the error interface
func (e *RequestError) Error() string {
	switch {
	case e.StatusCode > 0 && e.Detail != "":
		return fmt.Sprintf("analyze request failed: status=%d: %s", e.StatusCode, e.Detail)
	case e.StatusCode > 0:
		return fmt.Sprintf("analyze request failed: status=%d", e.StatusCode)
	case e.Cause != nil:
		return fmt.Sprintf("analyze request failed: %v", e.Cause)
	default:
		return "analyze request failed"
	}
}

// Unwrap returns the underlying error
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// Message is what a user should see: the backend detail if present,
// otherwise the generic failure text.
func (e *RequestError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return MsgRequestFailed
}

func newValidationError() *ValidationError {
	return &ValidationError{Message: MsgEmptyText}
}

// UserMessage maps any error returned by this package to the text shown in
// the error slot. Unknown errors get the generic failure text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}

	var re *RequestError
	if errors.As(err, &re) {
		return re.Message()
	}

	return MsgRequestFailed
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
