package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ca_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ca_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CascadeUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ca_cascade_updates_total",
			Help: "Dependent entities touched by process status propagation",
			// kind: sop or service_category; outcome: updated or failed
		},
		[]string{"kind", "outcome"},
	)
)
