package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and embedding Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notedex",
			Name:      "search_requests_total",
			Help:      "Total number of search attempts by outcome method",
		},
		[]string{"method"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notedex",
			Name:      "search_duration_seconds",
			Help:      "Search attempt duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method"},
	)

	SearchDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notedex",
			Name:      "search_degraded_total",
			Help:      "Searches that fell back to a degraded tier",
		},
		[]string{"tier"}, // "lexical" / "document"
	)

	SessionCoalescedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "notedex",
			Name:      "session_coalesced_total",
			Help:      "Debounced submissions coalesced before execution",
		},
	)

	SessionSuppressedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "notedex",
			Name:      "session_suppressed_total",
			Help:      "Completed attempts suppressed as stale",
		},
	)

	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notedex",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notedex",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	EmbeddingErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notedex",
			Name:      "embedding_errors_total",
			Help:      "Total embedding errors",
		},
		[]string{"provider", "model", "error_type"},
	)
)

// RegisterSearchMetrics registers search, session, and embedding
// collectors explicitly (no init side effects).
func RegisterSearchMetrics() {
	prometheus.MustRegister(
		SearchRequestsTotal,
		SearchDuration,
		SearchDegradedTotal,
		SessionCoalescedTotal,
		SessionSuppressedTotal,
		EmbeddingRequestsTotal,
		EmbeddingRequestDuration,
		EmbeddingErrorsTotal,
	)
}
