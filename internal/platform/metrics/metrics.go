// Package metrics holds the Prometheus collectors exposed at GET /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "futbol_http_requests_total",
	Help: "Total HTTP requests handled.",
}, []string{"method", "route", "status"})

var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "futbol_http_request_duration_seconds",
	Help:    "HTTP request latency in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

// UpstreamRequests counts calls to scraped or third-party sources by endpoint and outcome.
var UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "futbol_upstream_requests_total",
	Help: "Upstream requests by source, endpoint and outcome.",
}, []string{"source", "endpoint", "outcome"})

var UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "futbol_upstream_request_duration_seconds",
	Help:    "Upstream request latency in seconds.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20},
}, []string{"source", "endpoint"})

// CacheLookups counts freshness decisions: hit means served from storage, refresh means a scrape ran.
var CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "futbol_cache_lookups_total",
	Help: "Freshness gate decisions by resource and result.",
}, []string{"resource", "result"})

var UsecaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "futbol_usecase_duration_seconds",
	Help:    "Use case latency in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"operation", "outcome"})

func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveUpstream records one upstream call.
func ObserveUpstream(source, endpoint, outcome string, started time.Time) {
	UpstreamRequests.WithLabelValues(source, endpoint, outcome).Inc()
	UpstreamDuration.WithLabelValues(source, endpoint).Observe(time.Since(started).Seconds())
}

// Middleware records request counts and latency labelled by the matched mux pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
