package errors

import "net/http"

// Shorthands for the codes the fetch stack produces itself.

func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return New(http.StatusForbidden, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(http.StatusConflict, format, args...)
}

func UnprocessableEntity(format string, args ...any) *Error {
	return New(http.StatusUnprocessableEntity, format, args...)
}

func TooManyRequests(format string, args ...any) *Error {
	return New(http.StatusTooManyRequests, format, args...)
}

func Internal(format string, args ...any) *Error {
	return New(http.StatusInternalServerError, format, args...)
}

func BadGateway(format string, args ...any) *Error {
	return New(http.StatusBadGateway, format, args...)
}

func ServiceUnavailable(format string, args ...any) *Error {
	return New(http.StatusServiceUnavailable, format, args...)
}

// IsClientError reports whether err carries a 4xx code.
func IsClientError(err error) bool {
	code := Code(err)
	return code >= 400 && code < 500
}

// IsServerError reports whether err carries a 5xx code.
func IsServerError(err error) bool {
	return Code(err) >= 500
}
