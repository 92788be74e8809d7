// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oyonews_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oyonews_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "oyonews_http_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// CMS client

	CMSRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oyonews_cms_requests_total",
			Help: "Total number of requests sent to the CMS by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	CMSRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oyonews_cms_request_duration_seconds",
			Help:    "CMS request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"operation"},
	)

	// Circuit breaker

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "oyonews_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oyonews_circuit_breaker_requests_total",
			Help: "Requests passing through the circuit breaker by result",
		},
		[]string{"name", "result"},
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "oyonews_circuit_breaker_consecutive_failures",
			Help: "Current run of consecutive failures seen by the circuit breaker",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oyonews_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Cache

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oyonews_cache_hits_total",
			Help: "Cache hits by cache",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oyonews_cache_misses_total",
			Help: "Cache misses by cache",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "oyonews_cache_entries",
			Help: "Entries currently held by cache",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oyonews_cache_evictions_total",
			Help: "Expired entries removed by cache",
		},
		[]string{"cache_type"},
	)

	// Feed

	FeedPassesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oyonews_feed_passes_total",
			Help: "Feed fetch passes by result (ok, partial, skipped)",
		},
		[]string{"result"},
	)

	FeedCategoryFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oyonews_feed_category_fetches_total",
			Help: "Per-category fetches inside feed passes by outcome (fetched, gated, exhausted, error)",
		},
		[]string{"outcome"},
	)

	FeedPassDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "oyonews_feed_pass_duration_seconds",
			Help:    "Wall time of one feed fetch pass",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	FeedActiveViews = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "oyonews_feed_active_views",
			Help: "Feed views currently held in memory",
		},
	)

	// WebSocket

	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "oyonews_websocket_connections_active",
			Help: "Open feed WebSocket connections",
		},
	)

	WSMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oyonews_websocket_messages_total",
			Help: "Feed WebSocket messages by direction",
		},
		[]string{"direction"},
	)

	// Maintenance

	JanitorRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oyonews_janitor_removed_total",
			Help: "Expired items removed by the janitor by task",
		},
		[]string{"task"},
	)

	JanitorErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oyonews_janitor_errors_total",
			Help: "Failed janitor task runs by task",
		},
		[]string{"task"},
	)

	// Sessions

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "oyonews_sessions_active",
			Help: "Sessions held by the session store after the last cleanup",
		},
	)

	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oyonews_auth_attempts_total",
			Help: "Login, signup and revalidation attempts by result",
		},
		[]string{"action", "result"},
	)
)

// RecordAPIRequest records one served HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCMSRequest records one CMS call. status is the HTTP status or 0 when
// the request never got a response.
func RecordCMSRequest(operation string, status int, duration time.Duration) {
	var outcome string
	switch {
	case status == 0:
		outcome = "transport_error"
	case status >= 200 && status < 300:
		outcome = "ok"
	default:
		outcome = strconv.Itoa(status/100) + "xx"
	}
	CMSRequestsTotal.WithLabelValues(operation, outcome).Inc()
	CMSRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordFeedPass records a completed or skipped feed pass.
func RecordFeedPass(result string, duration time.Duration) {
	FeedPassesTotal.WithLabelValues(result).Inc()
	if duration > 0 {
		FeedPassDuration.Observe(duration.Seconds())
	}
}

// RecordAuthAttempt counts an authentication action.
func RecordAuthAttempt(action string, ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	AuthAttempts.WithLabelValues(action, result).Inc()
}
