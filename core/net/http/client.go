package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/kochabx/fetch/fetch"
)

const (
	// Buffer pool constants
	defaultBufferSize = 4096
	maxBufferSize     = 1024 * 1024 // 1MB
)

// Client is a fetch.Transport over net/http.
type Client struct {
	client          *http.Client
	header          map[string]string
	followRedirects bool
	bufferPool      sync.Pool
}

var _ fetch.Transport = (*Client)(nil)

// Option configures the HTTP client
type Option func(*Client)

// WithClient sets the underlying HTTP client. It is copied, so New never
// changes the redirect policy of the caller's client. A nil client is
// ignored.
func WithClient(client *http.Client) Option {
	return func(h *Client) {
		if client != nil {
			h.client = client
		}
	}
}

// WithHeader sets headers sent with every request. Headers of the option
// set win on conflict.
func WithHeader(header map[string]string) Option {
	return func(h *Client) {
		h.header = header
	}
}

// WithFollowRedirects makes the client follow 3xx responses the way
// http.Client does by default.
func WithFollowRedirects() Option {
	return func(h *Client) {
		h.followRedirects = true
	}
}

// New creates a client. Redirects are not followed unless
// WithFollowRedirects is given, so 3xx responses reach the dispatcher.
func New(opts ...Option) *Client {
	h := &Client{
		client: &http.Client{},
		bufferPool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, defaultBufferSize))
			},
		},
	}

	for _, opt := range opts {
		opt(h)
	}

	c := *h.client
	if !h.followRedirects {
		c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	h.client = &c

	return h
}

// Fetch sends one request described by opts. An empty method means GET.
func (cli *Client) Fetch(ctx context.Context, url string, opts fetch.OptionSet) (fetch.Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := cli.createRequest(ctx, method, url, opts.Body)
	if err != nil {
		return nil, err
	}
	cli.setRequestHeaders(req, cli.header)
	cli.setRequestHeaders(req, opts.Headers)

	resp, err := cli.client.Do(req)
	if err != nil {
		return nil, err
	}
	return &Response{raw: resp}, nil
}

// createRequest creates an HTTP request with the appropriate body
func (cli *Client) createRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	switch v := body.(type) {
	case nil:
		return http.NewRequestWithContext(ctx, method, url, nil)
	case io.Reader:
		return http.NewRequestWithContext(ctx, method, url, v)
	case []byte:
		return http.NewRequestWithContext(ctx, method, url, bytes.NewReader(v))
	case string:
		return http.NewRequestWithContext(ctx, method, url, bytes.NewBufferString(v))
	default:
		return cli.createJSONRequest(ctx, method, url, v)
	}
}

// createJSONRequest encodes body through a pooled buffer. The encoded bytes
// are copied out since the buffer goes back to the pool before the request
// is sent.
func (cli *Client) createJSONRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	buf := cli.getBuffer()
	defer cli.putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return nil, err
	}

	return http.NewRequestWithContext(ctx, method, url, bytes.NewReader(bytes.Clone(buf.Bytes())))
}

func (cli *Client) setRequestHeaders(req *http.Request, headers map[string]string) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}

func (cli *Client) getBuffer() *bytes.Buffer {
	buf := cli.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns a buffer to the pool, with size check to prevent memory leaks
func (cli *Client) putBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= maxBufferSize {
		cli.bufferPool.Put(buf)
	}
}
