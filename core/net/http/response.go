package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrTrailingData is returned by Response.JSON when the body holds more
// than one JSON value.
var ErrTrailingData = errors.New("trailing data after JSON value")

// Response wraps an *http.Response whose body is still unread.
type Response struct {
	raw *http.Response
}

// Raw returns the underlying response.
func (r *Response) Raw() *http.Response {
	return r.raw
}

func (r *Response) StatusCode() int {
	return r.raw.StatusCode
}

// JSON decodes the body into a generic value and closes it. The body must
// hold exactly one JSON value; an empty body or trailing data is a decode
// error.
func (r *Response) JSON() (any, error) {
	defer r.raw.Body.Close()

	dec := json.NewDecoder(r.raw.Body)
	var v any
	if err := dec.Decode(&v); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("decode %d response: %w", r.raw.StatusCode, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode %d response: %w", r.raw.StatusCode, ErrTrailingData)
	}
	return v, nil
}

// Close discards the body.
func (r *Response) Close() error {
	return r.raw.Body.Close()
}
