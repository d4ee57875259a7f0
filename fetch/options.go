package fetch

import (
	"maps"
)

// Header values sent with every JSON method.
const (
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	ContentTypeJSON     = "application/json"
)

// OptionSet is what the Transport receives for one request.
//
// When used as caller options, a field is present when it is non-zero:
// Method != "", Headers != nil, Body != nil. A non-nil empty Headers map is
// present and clears every base header.
type OptionSet struct {
	Method  string
	Headers map[string]string
	Body    any
}

// Merge returns s with every present field of over replacing its
// counterpart. Headers are replaced wholesale, never merged key by key.
func (s OptionSet) Merge(over OptionSet) OptionSet {
	if over.Method != "" {
		s.Method = over.Method
	}
	if over.Headers != nil {
		s.Headers = over.Headers
	}
	if over.Body != nil {
		s.Body = over.Body
	}
	return s
}

// Clone copies s, including the headers map.
func (s OptionSet) Clone() OptionSet {
	s.Headers = maps.Clone(s.Headers)
	return s
}

func jsonHeaders() map[string]string {
	return map[string]string{
		HeaderAccept:      ContentTypeJSON,
		HeaderContentType: ContentTypeJSON,
	}
}

// BaseOptions returns the static option set of m. Authenticated methods
// return their set without the Authorization header.
func BaseOptions(m Method) OptionSet {
	if m == MethodGet || !m.valid() {
		return OptionSet{Method: m.Verb()}
	}
	return OptionSet{Method: m.Verb(), Headers: jsonHeaders()}
}

// AuthOptions returns the option set of an authenticated method carrying
// the bearer token.
func AuthOptions(m Method, token string) OptionSet {
	headers := jsonHeaders()
	headers[HeaderAuthorization] = "Bearer " + token
	return OptionSet{Method: m.Verb(), Headers: headers}
}

// CallOption configures one Dispatch call.
type CallOption func(*call)

type call struct {
	options  OptionSet
	handler  ErrorHandler
	external bool
}

// WithOptions merges opts over the base option set of the call. It replaces
// any options set by earlier call options, WithBody included.
func WithOptions(opts OptionSet) CallOption {
	return func(c *call) {
		c.options = opts
	}
}

// WithBody is shorthand for WithOptions(OptionSet{Body: body}).
func WithBody(body any) CallOption {
	return func(c *call) {
		c.options.Body = body
	}
}

// WithErrorHandler routes every transport, decoding and status error of the
// call through h.
func WithErrorHandler(h ErrorHandler) CallOption {
	return func(c *call) {
		c.handler = h
	}
}

// External sends the URL verbatim instead of prefixing the API root.
func External() CallOption {
	return func(c *call) {
		c.external = true
	}
}
