// Package metrics exposes the Prometheus instrumentation shared by the HTTP
// transport and the collection watcher.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks total HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// SnapshotPushesTotal counts collection snapshots delivered by the
	// document store listeners
	SnapshotPushesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collection_snapshot_pushes_total",
			Help: "Total number of pushed collection snapshots",
		},
		[]string{"collection"},
	)

	// StreamClients tracks currently connected live-update stream clients
	StreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stream_clients",
			Help: "Number of connected SSE clients",
		},
	)

	// LedgerActionsTotal counts reducer steps by action type
	LedgerActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_actions_total",
			Help: "Total number of applied booking ledger actions",
		},
		[]string{"action"},
	)
)

// PrometheusMiddleware creates a Gin middleware for automatic metrics collection
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		RequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}
