package fetch

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/kochabx/fetch/errors"
)

var (
	// ErrNilTransport is returned by New without a transport.
	ErrNilTransport = stderrors.New("fetch: transport is required")
	// ErrNoTokenProvider is returned for authenticated methods when the
	// dispatcher has no token provider.
	ErrNoTokenProvider = stderrors.New("fetch: authenticated method without token provider")
)

// StatusError is built from a response whose status is outside [200, 300).
type StatusError struct {
	// StatusCode is the response status.
	StatusCode int
	// Message is the "message" field of the decoded body, empty when absent.
	Message string
	// Body is the decoded body.
	Body any
	// Errors is the "errors" field of the decoded body, nil when absent.
	Errors any
}

func newStatusError(status int, body any) *StatusError {
	e := &StatusError{StatusCode: status, Body: body}
	if obj, ok := body.(map[string]any); ok {
		e.Errors = obj["errors"]
		switch msg := obj["message"].(type) {
		case nil:
		case string:
			e.Message = msg
		default:
			e.Message = fmt.Sprint(msg)
		}
	}
	return e
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("fetch: status %d: %s", e.StatusCode, msg)
}

// Unwrap exposes the status as a coded error so errors.Code and
// errors.FromError see the response status.
func (e *StatusError) Unwrap() error {
	return errors.New(e.StatusCode, "%s", e.Message)
}

// AsStatusError returns the *StatusError in err's chain.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// ErrorHandler receives every transport, decoding and status error of a
// call. Whatever it returns is what Dispatch returns, so a handler may
// recover by returning a value and a nil error.
type ErrorHandler func(err error) (any, error)

// Rethrow is the default ErrorHandler: it hands the error back unchanged.
func Rethrow(err error) (any, error) {
	return nil, err
}
