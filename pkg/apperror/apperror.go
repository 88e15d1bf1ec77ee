package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a failure so the HTTP layer can pick a status code
// without parsing error strings.
type Code string

const (
	CodeBadRequest    Code = "BAD_REQUEST"
	CodeMissingField  Code = "MISSING_FIELD"
	CodeInvalidStatus Code = "INVALID_STATUS"
	CodeInvalidQuery  Code = "INVALID_QUERY"
	CodeNotFound      Code = "NOT_FOUND"
	CodeForbidden     Code = "FORBIDDEN"
	CodeInternal      Code = "INTERNAL"
)

// Error is the failure type returned by services. Message is safe to show
// to the client as-is.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func MissingField(field string) *Error {
	return &Error{
		Code:    CodeMissingField,
		Message: fmt.Sprintf("%s is required for individual target", field),
	}
}

func InvalidStatus(msg string) *Error {
	return &Error{Code: CodeInvalidStatus, Message: msg}
}

func InvalidQuery(msg string) *Error {
	return &Error{Code: CodeInvalidQuery, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

func BadRequest(msg string) *Error {
	return &Error{Code: CodeBadRequest, Message: msg}
}

// HTTPStatus maps an error to the status code the routing layer should send.
// Unknown errors are treated as internal failures.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeBadRequest, CodeMissingField, CodeInvalidStatus, CodeInvalidQuery:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}
