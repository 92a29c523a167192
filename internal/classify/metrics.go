package classify

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// classifyTotal counts classifications by the tier that produced
	// the returned primary result.
	classifyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classify_requests_total",
			Help: "Total classifications by result source.",
		},
		[]string{"source"},
	)

	// classifyCacheTotal counts cache lookups by outcome.
	classifyCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classify_cache_lookups_total",
			Help: "Cache lookups by outcome (hit/miss).",
		},
		[]string{"outcome"},
	)

	// classifyDuration tracks end-to-end pipeline latency. Buckets
	// span sub-millisecond dictionary hits up to slow AI calls.
	classifyDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "classify_duration_seconds",
			Help:    "End-to-end classification latency in seconds.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
	)

	// classifyAIFailures counts AI-tier degradations by reason.
	classifyAIFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classify_ai_failures_total",
			Help: "AI adapter failures degraded to fallback, by reason.",
		},
		[]string{"reason"},
	)

	// classifyCandidates observes how many candidates ambiguous
	// inputs produce.
	classifyCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "classify_candidates_count",
			Help:    "Number of candidates returned per ambiguous classification.",
			Buckets: []float64{1, 2, 3, 4, 5},
		},
	)
)

func init() {
	prometheus.MustRegister(
		classifyTotal,
		classifyCacheTotal,
		classifyDuration,
		classifyAIFailures,
		classifyCandidates,
	)
}
