package di

import (
	"context"
	"testing"
	"time"

	"TrendGate/pkg/config"
	applogger "TrendGate/pkg/logger"
	"TrendGate/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

func TestProvideCandleSourceSkipsBackendWhenDisabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.TrendFilter.Trend = "any"
	cfg.Source.Type = "clickhouse"
	cfg.Source.ClickHouse.Host = "127.0.0.1"
	cfg.Source.ClickHouse.Port = 1
	cfg.Source.ClickHouse.DialTimeout = 50 * time.Millisecond

	src, cleanup, err := ProvideCandleSource(context.Background(), cfg, applogger.Nop())
	if err != nil {
		t.Fatalf("disabled filter must not dial the backend: %v", err)
	}
	if src != nil {
		t.Fatalf("expected no candle source, got %T", src)
	}
	if cleanup == nil {
		t.Fatal("cleanup must be callable")
	}
	cleanup()

	f, err := ProvideTrendFilter(cfg, src, nil, metrics.New(prometheus.NewRegistry()), applogger.Nop())
	if err != nil {
		t.Fatalf("trend filter: %v", err)
	}
	if f.Enabled() {
		t.Fatal("filter with trend any must be disabled")
	}
	if !f.Evaluate(context.Background(), "BTCUSDT", time.Now()) {
		t.Fatal("disabled filter must keep every symbol")
	}
}

func TestProvideCandleSourceRejectsUnknownType(t *testing.T) {
	cfg := &config.Config{}
	cfg.TrendFilter.Trend = "bull"
	cfg.Source.Type = "ftp"

	if _, _, err := ProvideCandleSource(context.Background(), cfg, applogger.Nop()); err == nil {
		t.Fatal("expected error for unknown source type")
	}
}
