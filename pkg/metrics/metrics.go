package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuditLogWriteFailures counts access-log rows that could not be
	// persisted. The authorization decision is still returned to the
	// caller, so this counter is the only durable signal of audit loss.
	AuditLogWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visitdesk_audit_log_write_failures_total",
		Help: "Total number of access-log writes that failed and were swallowed",
	})

	AccessChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "visitdesk_access_checks_total",
		Help: "Total number of access authorization decisions by outcome",
	}, []string{"outcome"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "visitdesk_http_requests_total",
		Help: "Total number of HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "visitdesk_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)
