package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the single error shape route handlers know how to map to HTTP.
// Services wrap their failures in one of the constructors below; anything
// else surfaces as a 500.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

func Auth(code string, err error) *Error {
	return New(http.StatusUnauthorized, code, err)
}

func NotFound(code string, err error) *Error {
	return New(http.StatusNotFound, code, err)
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "internal_error", err)
}

// StatusOf resolves the HTTP status for an arbitrary error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

// CodeOf resolves the machine-readable code for an arbitrary error.
func CodeOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Code != "" {
		return apiErr.Code
	}
	return "internal_error"
}
