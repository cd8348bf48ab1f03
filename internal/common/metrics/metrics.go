// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_pipeline_runs_total",
			Help: "Total number of recommendation pipeline runs",
		},
		[]string{"outcome"},
	)

	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "recommendation_pipeline_duration_seconds",
			Help: "Duration of a full recommendation pipeline run in seconds",
		},
		[]string{"mode"},
	)

	ProviderQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_queries_total",
			Help: "Total number of provider queries by source and status",
		},
		[]string{"source", "status"},
	)

	CacheOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_cache_ops_total",
			Help: "Query cache operations by data kind and result",
		},
		[]string{"kind", "result"},
	)

	CandidatesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "candidates_scored_total",
			Help: "Total number of candidates passed through the scoring engine",
		},
	)
)
