package service

import (
	"errors"
	"net/http"
)

// ErrorKind classifies service failures so the HTTP layer can map them to a
// status code without inspecting messages.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindInvalidState
	KindLimitExceeded
	KindPermissionDenied
	KindUnauthorized
	KindValidation
	KindInternal
)

// Error is a service-level failure with a stable wire code.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func notFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func invalidState(code, message string) *Error {
	return &Error{Kind: KindInvalidState, Code: code, Message: message}
}

func limitExceeded(code, message string) *Error {
	return &Error{Kind: KindLimitExceeded, Code: code, Message: message}
}

func permissionDenied(code, message string) *Error {
	return &Error{Kind: KindPermissionDenied, Code: code, Message: message}
}

func unauthorized(code, message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: message}
}

func validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

// HTTPStatus maps a service error to its response status. Unrecognized
// errors are treated as internal.
func HTTPStatus(err error) int {
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		return http.StatusInternalServerError
	}
	switch svcErr.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidState:
		return http.StatusConflict
	case KindLimitExceeded:
		return http.StatusForbidden
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Code extracts the wire code from a service error, if any.
func Code(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return "INTERNAL_ERROR"
}
