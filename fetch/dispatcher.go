package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kochabx/fetch/log"
	"github.com/kochabx/fetch/log/desensitize"
)

// Dispatcher sends JSON requests relative to an API root. It holds no
// per-call state and is safe for concurrent use.
type Dispatcher struct {
	root      string
	transport Transport
	tokens    TokenProvider
	logger    *log.Logger
	observer  Observer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRoot sets the API root prefixed to non-external URLs. The two are
// concatenated as is, so the root should not end in "/" when paths start
// with one.
func WithRoot(root string) Option {
	return func(d *Dispatcher) {
		d.root = root
	}
}

// WithTokenProvider sets the bearer token source for authenticated methods.
func WithTokenProvider(tp TokenProvider) Option {
	return func(d *Dispatcher) {
		d.tokens = tp
	}
}

// WithLogger sets the logger; log.G is used otherwise.
func WithLogger(logger *log.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithObserver reports every round trip to o.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		d.observer = o
	}
}

// New creates a Dispatcher sending through transport.
func New(transport Transport, opts ...Option) (*Dispatcher, error) {
	if transport == nil {
		return nil, ErrNilTransport
	}

	d := &Dispatcher{transport: transport}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.G
	}

	return d, nil
}

// Root returns the API root.
func (d *Dispatcher) Root() string {
	return d.root
}

// Dispatch parses method with ParseMethod and calls Do.
func (d *Dispatcher) Dispatch(ctx context.Context, url, method string, opts ...CallOption) (any, error) {
	return d.Do(ctx, url, ParseMethod(method), opts...)
}

// Do sends one request and classifies its response.
//
// A failure to obtain the bearer token is returned directly; the error
// handler only sees errors from the round trip itself.
func (d *Dispatcher) Do(ctx context.Context, url string, method Method, opts ...CallOption) (any, error) {
	c := &call{handler: Rethrow}
	for _, opt := range opts {
		opt(c)
	}
	if c.handler == nil {
		c.handler = Rethrow
	}

	target := url
	if !c.external {
		target = d.root + url
	}

	base, err := d.baseOptions(ctx, method)
	if err != nil {
		return nil, err
	}
	set := base.Merge(c.options)

	if e := d.logger.Debug(); e.Enabled() {
		e.Stringer("method", method).
			Str("verb", set.Method).
			Str("url", target).
			Interface("headers", redact(set.Headers)).
			Msg("dispatching request")
	}

	result, err := d.roundTrip(ctx, target, method, set)
	if err != nil {
		d.logger.Warn().Err(err).Stringer("method", method).Str("url", target).Msg("request failed")
		return c.handler(err)
	}
	return result, nil
}

// baseOptions picks the option set strategy of method: a fresh copy of a
// static set, or a set built around a bearer token fetched now.
func (d *Dispatcher) baseOptions(ctx context.Context, method Method) (OptionSet, error) {
	if !method.Authenticated() {
		return BaseOptions(method), nil
	}

	if d.tokens == nil {
		return OptionSet{}, ErrNoTokenProvider
	}
	token, err := d.tokens.Token(ctx)
	if err != nil {
		return OptionSet{}, fmt.Errorf("fetch: get token for %s: %w", method, err)
	}
	return AuthOptions(method, token), nil
}

func (d *Dispatcher) roundTrip(ctx context.Context, url string, method Method, set OptionSet) (any, error) {
	start := time.Now()
	resp, err := d.transport.Fetch(ctx, url, set)
	if err != nil {
		d.observe(method, 0, err, start)
		return nil, err
	}

	status := resp.StatusCode()
	result, err := classify(resp)
	d.observe(method, status, err, start)

	d.logger.Debug().
		Stringer("method", method).
		Str("url", url).
		Int("status", status).
		Dur("elapsed", time.Since(start)).
		Msg("response received")

	return result, err
}

func (d *Dispatcher) observe(method Method, status int, err error, start time.Time) {
	if d.observer != nil {
		d.observer.Observe(method, status, err, time.Since(start))
	}
}

// classify maps a response to its result. 204 never reads the body.
func classify(resp Response) (any, error) {
	status := resp.StatusCode()
	if status == http.StatusNoContent {
		_ = resp.Close()
		return map[string]any{}, nil
	}

	body, err := resp.JSON()
	if err != nil {
		return nil, err
	}

	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return body, nil
	}
	return nil, newStatusError(status, body)
}

// redact masks bearer credentials in a copy of headers for logging.
func redact(headers map[string]string) map[string]string {
	if headers == nil {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		out[k] = desensitize.BearerRule.Process(v)
	}
	return out
}
