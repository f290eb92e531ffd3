package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors exported on /metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	operations   *prometheus.CounterVec
	layoutNodes  prometheus.Histogram
	requests     *prometheus.CounterVec
	requestTimes *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callflow_routing_operations_total",
				Help: "Routing configuration changes by operation and result",
			},
			[]string{"operation", "result"},
		),
		layoutNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "callflow_layout_nodes",
			Help:    "Number of nodes in each generated call-flow diagram",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callflow_http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "path", "status"},
		),
		requestTimes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "callflow_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
	m.registry.MustRegister(m.operations, m.layoutNodes, m.requests, m.requestTimes)
	return m
}

// ObserveOperation counts one change; result is "ok" or "error".
func (m *Metrics) ObserveOperation(operation string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) ObserveLayout(nodes int) {
	if m == nil {
		return
	}
	m.layoutNodes.Observe(float64(nodes))
}

// Middleware records request counts and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestTimes.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
