// Package metrics exposes Prometheus instrumentation for the dashboard's
// external calls, adapter caches, and prediction pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExternalCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartnav_external_calls_total",
			Help: "External API calls by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartnav_cache_lookups_total",
			Help: "Adapter cache lookups by cache name and result",
		},
		[]string{"cache", "result"},
	)

	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartnav_predictions_total",
			Help: "Completed predictions by mode",
		},
		[]string{"mode"},
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartnav_prediction_duration_seconds",
			Help:    "End-to-end prediction latency by mode",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)
)
