package metrics

import (
	"bytes"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/fetch/fetch"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg, "fetch")
	require.NoError(t, err)

	c.Observe(fetch.MethodGet, 200, nil, 10*time.Millisecond)
	c.Observe(fetch.MethodGet, 200, nil, 20*time.Millisecond)
	c.Observe(fetch.MethodPostAuth, 404, stderrors.New("fetch: status 404"), time.Millisecond)
	c.Observe(fetch.MethodDeleteAuth, 0, stderrors.New("dial"), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("POST_AUTH", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("DELETE_AUTH", CodeError)))
	assert.Equal(t, 3, testutil.CollectAndCount(c.duration))

	err = testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP fetch_requests_total Dispatched requests by method token and status code.
# TYPE fetch_requests_total counter
fetch_requests_total{code="200",method="GET"} 2
fetch_requests_total{code="404",method="POST_AUTH"} 1
fetch_requests_total{code="error",method="DELETE_AUTH"} 1
`), "fetch_requests_total")
	assert.NoError(t, err)
}

func TestDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg, "fetch")
	require.NoError(t, err)

	_, err = New(reg, "fetch")
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}

func TestHandler(t *testing.T) {
	reg := NewRegistry()
	c, err := New(reg, "api")
	require.NoError(t, err)
	c.Observe(fetch.MethodPut, 204, nil, time.Millisecond)

	srv := httptest.NewServer(Handler(reg))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `api_requests_total{code="204",method="PUT"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestWrite(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg, "cli")
	require.NoError(t, err)
	c.Observe(fetch.MethodGetAuth, 200, nil, time.Millisecond)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, reg))
	assert.Contains(t, buf.String(), "# TYPE cli_requests_total counter")
	assert.Contains(t, buf.String(), `cli_requests_total{code="200",method="GET_AUTH"} 1`)
	assert.Contains(t, buf.String(), `cli_request_duration_seconds_count{method="GET_AUTH"} 1`)
}
