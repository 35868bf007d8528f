// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "urbanfix",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "urbanfix",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	offersSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "urbanfix",
		Name:      "offers_submitted_total",
		Help:      "Offer submissions by outcome (ok, validation, denied, not_found, closed, error).",
	}, []string{"outcome"})
)

// CountOffer records one offer-submission outcome.
func CountOffer(outcome string) {
	offersSubmitted.WithLabelValues(outcome).Inc()
}

// Middleware instruments every request with a counter and a latency
// histogram, labeled by the registered route pattern (not the raw path, to
// keep cardinality bounded).
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
