package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SuggestionsTotal counts returned title candidates by generation method.
	SuggestionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "titlegen",
			Name:      "suggestions_total",
			Help:      "Title candidates returned, labeled by generation method.",
		},
		[]string{"method"},
	)

	// ModelAttemptFailures counts model sampling attempts that were skipped.
	ModelAttemptFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "titlegen",
			Name:      "model_attempt_failures_total",
			Help:      "Model sampling attempts that failed and were skipped.",
		},
	)

	// RequestDuration observes end-to-end request time per endpoint.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "titlegen",
			Name:      "request_duration_seconds",
			Help:      "End-to-end request duration.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(SuggestionsTotal, ModelAttemptFailures, RequestDuration)
}

// Handler exposes the Prometheus metrics endpoint as a gin handler.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
