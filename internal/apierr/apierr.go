package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes surfaced to API clients. The handlers map these straight onto
// HTTP statuses, so services can signal outcomes without importing gin.
const (
	CodeNotFound           = "not_found"
	CodeInvalidArgument    = "invalid_argument"
	CodeUnprocessableValue = "unprocessable_value"
	CodeConflict           = "conflict"
	CodeUnauthorized       = "unauthorized"
)

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

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func InvalidArgument(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeInvalidArgument, fmt.Errorf(format, args...))
}

// UnprocessableArgument keeps the invalid_argument code but surfaces
// it as 422, for payloads that decode fine yet fail semantic checks.
func UnprocessableArgument(format string, args ...interface{}) *Error {
	return New(http.StatusUnprocessableEntity, CodeInvalidArgument, fmt.Errorf(format, args...))
}

func UnprocessableValue(format string, args ...interface{}) *Error {
	return New(http.StatusUnprocessableEntity, CodeUnprocessableValue, fmt.Errorf(format, args...))
}

func Conflict(format string, args ...interface{}) *Error {
	return New(http.StatusConflict, CodeConflict, fmt.Errorf(format, args...))
}

func Unauthorized(format string, args ...interface{}) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf(format, args...))
}

// AsError unwraps err into an *Error if one is anywhere in its chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
