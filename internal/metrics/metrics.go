// Package metrics provides Prometheus instruments for the sync engine, the platform client and the API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crm_sync"

var (
	// UnitsTotal tracks sync units by direction, category and outcome
	UnitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "units_total",
			Help:      "Total number of sync units by outcome",
		},
		[]string{"direction", "category", "outcome"},
	)

	// UnitDuration tracks how long a sync unit takes
	UnitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "unit_duration_seconds",
			Help:      "Duration of sync units in seconds",
			Buckets:   []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"direction", "category"},
	)

	// RecordsTotal tracks records at each stage of a unit: fetched, new, uploaded, stored
	RecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "records_total",
			Help:      "Total number of records by stage",
		},
		[]string{"direction", "category", "stage"},
	)

	// RotationsTotal tracks archive rotations by outcome
	RotationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rotation",
			Name:      "rotations_total",
			Help:      "Total number of archive rotations by outcome",
		},
		[]string{"category", "outcome"},
	)

	// PlatformRequestsTotal tracks bulk API operations against the marketing platform
	PlatformRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "platform",
			Name:      "operations_total",
			Help:      "Total number of bulk export and import operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	// PlatformRequestDuration tracks bulk API operation duration
	PlatformRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "platform",
			Name:      "operation_duration_seconds",
			Help:      "Duration of bulk export and import operations in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 300, 900},
		},
		[]string{"operation"},
	)

	// RateLimitWaitsTotal tracks requests that had to wait for a rate limit token
	RateLimitWaitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ratelimit",
			Name:      "waits_total",
			Help:      "Total number of rate limit waits by backend",
		},
		[]string{"backend"},
	)

	// HTTPRequestsTotal tracks inbound API requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration tracks inbound API request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of API requests in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route"},
	)
)

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Outcome maps an error to its outcome label
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
