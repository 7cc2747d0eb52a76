package metrics

import (
	"TrendGate/internal/domain/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	evaluations  *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	cacheEntries prometheus.Gauge
}

// New registers the trend filter collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		evaluations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "trendgate",
				Name:      "evaluations_total",
				Help:      "Trend filter evaluations by outcome state and computed trend",
			},
			[]string{"state", "trend"},
		),
		fetchLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "trendgate",
				Name:      "candle_fetch_duration_seconds",
				Help:      "Duration of candle fetches in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		cacheEntries: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "trendgate",
			Name:      "cache_entries",
			Help:      "Symbols currently held in the positive result cache",
		}),
	}
}

// RecordEvaluation counts one decision. An empty trend is labelled "none".
func (r *Recorder) RecordEvaluation(state models.EvalState, trend models.Trend) {
	label := string(trend)
	if label == "" {
		label = "none"
	}
	r.evaluations.WithLabelValues(string(state), label).Inc()
}

// RecordFetchLatency records candle fetch latency in seconds.
func (r *Recorder) RecordFetchLatency(source string, seconds float64) {
	r.fetchLatency.WithLabelValues(source).Observe(seconds)
}

// RecordCacheSize sets the cache entries gauge.
func (r *Recorder) RecordCacheSize(n int) {
	r.cacheEntries.Set(float64(n))
}
