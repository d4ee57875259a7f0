package fetch

import (
	"context"
	"time"
)

// Transport sends one request. It is the fetch primitive the dispatcher
// wraps; github.com/kochabx/fetch/core/net/http provides one over net/http.
type Transport interface {
	Fetch(ctx context.Context, url string, opts OptionSet) (Response, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, url string, opts OptionSet) (Response, error)

func (f TransportFunc) Fetch(ctx context.Context, url string, opts OptionSet) (Response, error) {
	return f(ctx, url, opts)
}

// Response is a received response whose body has not been read yet.
type Response interface {
	StatusCode() int
	// JSON decodes the body and closes it.
	JSON() (any, error)
	// Close releases the body without reading it.
	Close() error
}

// TokenProvider supplies the bearer token for authenticated methods. It is
// asked once per authenticated call.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenProvider.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// Observer is told about every round trip. status is 0 when the transport
// failed before a response arrived.
type Observer interface {
	Observe(method Method, status int, err error, elapsed time.Duration)
}
