// Package fetchtest provides a fake JSON API server for tests.
package fetchtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/fetch/errors"
)

// Request is a request received by the server.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	// Body is the decoded JSON body; nil when empty, the raw string when it
	// is not JSON.
	Body    any
	RawBody []byte
}

// Server is a gin engine served by httptest. Every request is recorded,
// including ones that hit no route.
type Server struct {
	*httptest.Server
	engine *gin.Engine

	mu       sync.Mutex
	requests []Request
}

// NewServer starts a server that is closed when t finishes. Unrouted
// requests get 404 {"message":"not found"}.
func NewServer(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{engine: gin.New()}
	s.engine.Use(s.record)
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	s.Server = httptest.NewServer(s.engine)
	t.Cleanup(s.Close)
	return s
}

// Handle registers a canned response. Strings and byte slices are written
// verbatim as the body, nil writes no body, anything else is JSON-encoded.
func (s *Server) Handle(method, path string, status int, body any) {
	s.HandleFunc(method, path, func(c *gin.Context) {
		switch v := body.(type) {
		case nil:
			c.Status(status)
		case string:
			c.Data(status, gin.MIMEJSON, []byte(v))
		case []byte:
			c.Data(status, gin.MIMEJSON, v)
		default:
			c.JSON(status, v)
		}
	})
}

// HandleError answers with err as a coded error: its code as the status,
// its message under "message" and its metadata under "errors". Errors
// without a code answer 500.
func (s *Server) HandleError(method, path string, err error) {
	e := errors.FromError(err)
	body := gin.H{"message": e.Message}
	if len(e.Metadata) > 0 {
		body["errors"] = e.Metadata
	}
	s.Handle(method, path, e.Code, body)
}

// HandleFunc registers gin handlers for method and path.
func (s *Server) HandleFunc(method, path string, handlers ...gin.HandlerFunc) {
	s.engine.Handle(method, path, handlers...)
}

// Requests returns the recorded requests in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// Last returns the most recent request; ok is false when none arrived.
func (s *Server) Last() (r Request, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Reset forgets the recorded requests.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (s *Server) record(c *gin.Context) {
	raw, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	r := Request{
		Method:  c.Request.Method,
		Path:    c.Request.URL.Path,
		Query:   c.Request.URL.Query(),
		Header:  c.Request.Header.Clone(),
		RawBody: raw,
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &r.Body); err != nil {
			r.Body = string(raw)
		}
	}

	s.mu.Lock()
	s.requests = append(s.requests, r)
	s.mu.Unlock()

	c.Next()
}
