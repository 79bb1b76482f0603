// Package metrics exposes the portal's Prometheus metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "HTTP requests handled by the portal.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "Duration of HTTP requests handled by the portal.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// SubmissionsTotal counts submission attempts by outcome.
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_complaint_submissions_total",
			Help: "Complaint submissions by outcome (created, invalid, failed).",
		},
		[]string{"outcome"},
	)

	// LookupsTotal counts tracker lookups by outcome.
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_complaint_lookups_total",
			Help: "Complaint lookups by outcome (found, not_found, failed).",
		},
		[]string{"outcome"},
	)
)

// Outcome labels.
const (
	OutcomeCreated  = "created"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
)

// Middleware records request counts and durations. The route pattern is used
// as the path label so that complaint identifiers do not become labels.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
