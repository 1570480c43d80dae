package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP surface
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edubase_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "edubase_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// Domain operations
	BulkMarkRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "edubase_bulk_mark_rows",
			Help:    "Row counts of bulk mark submissions",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	DuplicateConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edubase_duplicate_conflicts_total",
			Help: "Total uniqueness conflicts rejected by the store",
		},
		[]string{"entity"},
	)
)
