package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Translation outcomes recorded in metrics.
const (
	ResultOK              = "ok"
	ResultFallback        = "fallback"
	ResultDecodeError     = "decode_error"
	ResultGenerationError = "generation_error"
)

// Metrics are the pipeline's Prometheus collectors.
type Metrics struct {
	Translations  *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	Labels        *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Translations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jungla",
			Name:      "translations_total",
			Help:      "Translations by result.",
		}, []string{"result"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jungla",
			Name:      "stage_duration_seconds",
			Help:      "Time spent in each pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"stage"}),
		Labels: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jungla",
			Name:      "labels_total",
			Help:      "Species labels produced by the classifier.",
		}, []string{"label"}),
	}
}
