// Package metrics reports dispatches to Prometheus.
package metrics

import (
	"io"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/kochabx/fetch/fetch"
)

// CodeError is the code label of round trips that got no response.
const CodeError = "error"

// Collector is a fetch.Observer counting requests by method token and
// status code and timing them by method token.
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ fetch.Observer = (*Collector)(nil)

// New registers the collector's metrics with reg under namespace.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Dispatched requests by method token and status code.",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Round trip latency by method token.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	for _, col := range []prometheus.Collector{c.requests, c.duration} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) Observe(method fetch.Method, status int, _ error, elapsed time.Duration) {
	code := CodeError
	if status > 0 {
		code = strconv.Itoa(status)
	}
	c.requests.WithLabelValues(method.String(), code).Inc()
	c.duration.WithLabelValues(method.String()).Observe(elapsed.Seconds())
}

// NewRegistry returns a registry carrying the Go runtime and build info
// collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.GoRuntimeMetricsRule{Matcher: regexp.MustCompile("/.*")}),
		),
		collectors.NewBuildInfoCollector(),
	)
	return reg
}

// Handler exposes the metrics of g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Write renders the metrics of g in the text exposition format.
func Write(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
