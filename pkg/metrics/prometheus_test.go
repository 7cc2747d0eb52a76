package metrics

import (
	"testing"

	"TrendGate/internal/domain/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordEvaluation(models.StateClassified, models.TrendBull)
	r.RecordEvaluation(models.StateClassified, models.TrendBull)
	r.RecordEvaluation(models.StateNoData, "")
	r.RecordCacheSize(3)
	r.RecordFetchLatency("rest", 0.12)

	if got := testutil.ToFloat64(r.evaluations.WithLabelValues("classified", "bull")); got != 2 {
		t.Fatalf("classified/bull = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.evaluations.WithLabelValues("no_data", "none")); got != 1 {
		t.Fatalf("no_data/none = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.cacheEntries); got != 3 {
		t.Fatalf("cache gauge = %v, want 3", got)
	}
	if n := testutil.CollectAndCount(r.fetchLatency); n != 1 {
		t.Fatalf("expected one fetch latency series, got %d", n)
	}
}
