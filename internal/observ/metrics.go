package observ

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for LifecycleOps.
const (
	OutcomeChanged = "changed"
	OutcomeNoop    = "noop"
	OutcomeError   = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propmaster",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "propmaster",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	LifecycleOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propmaster",
			Subsystem: "lifecycle",
			Name:      "operations_total",
			Help:      "Lifecycle operations by op, entity kind and outcome",
		},
		[]string{"op", "kind", "outcome"}, // outcome: changed/noop/error
	)

	PersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "propmaster",
			Subsystem: "store",
			Name:      "persist_failures_total",
			Help:      "Write-through snapshot saves that failed",
		},
	)

	ActivitySubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "propmaster",
			Subsystem: "activity",
			Name:      "subscribers",
			Help:      "Open websocket connections on the activity feed",
		},
	)
)
