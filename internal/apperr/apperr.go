// Package apperr is the gateway's error taxonomy. Every failure raised by
// a pipeline stage or handler is an *Error carrying a Code; the server's
// error normalizer is the only place codes are translated to HTTP statuses
// and wire envelopes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a failure.
type Code string

const (
	CodeValidation      Code = "validation_error"
	CodeAuth            Code = "auth_error"
	CodePayload         Code = "payload_error"
	CodePayloadTooLarge Code = "payload_too_large"
	CodeRateLimit       Code = "rate_limit_exceeded"
	CodeNotFound        Code = "not_found"
	CodeTimeout         Code = "timeout"
	CodeInternal        Code = "internal_error"
)

var statusByCode = map[Code]int{
	CodeValidation:      http.StatusBadRequest,
	CodeAuth:            http.StatusUnauthorized,
	CodePayload:         http.StatusBadRequest,
	CodePayloadTooLarge: http.StatusRequestEntityTooLarge,
	CodeRateLimit:       http.StatusTooManyRequests,
	CodeNotFound:        http.StatusNotFound,
	CodeTimeout:         http.StatusGatewayTimeout,
	CodeInternal:        http.StatusInternalServerError,
}

// Error is a classified gateway failure.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error with a client-visible message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Newf creates a classified error with a formatted client-visible message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error. The wrapped error is kept for
// logging but never written to the wire.
func Wrap(code Code, msg string, err error) *Error {
	return &Error{Code: code, Msg: msg, Err: err}
}

// CodeOf extracts the code from err; unrecognized errors are internal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// StatusOf maps err to its HTTP status. Unrecognized failure kinds
// default to 500.
func StatusOf(err error) int {
	if status, ok := statusByCode[CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-visible message for err. Unrecognized
// errors get a generic message so internals never leak by default.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return "Internal Server Error"
}
