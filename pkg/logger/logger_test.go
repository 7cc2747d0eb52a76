package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, zerolog.InfoLevel).With("trend_filter")

	l.Info("symbol trend computed",
		String("symbol", "BTC/USDT"),
		Int("candles", 125),
		Float64("end_rel", 87.5),
		Bool("cached", true),
		Duration("duration_ms", 1500*time.Millisecond),
		Error(errors.New("boom")),
	)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	want := map[string]any{
		"level":       "info",
		"message":     "symbol trend computed",
		"component":   "trend_filter",
		"symbol":      "BTC/USDT",
		"candles":     float64(125),
		"end_rel":     87.5,
		"cached":      true,
		"duration_ms": float64(1500),
		"error":       "boom",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("field %s = %v, want %v", k, got[k], v)
		}
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, zerolog.WarnLevel)
	l.Info("hidden")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	l.Warn("shown")
	if buf.Len() == 0 {
		t.Fatalf("expected warn line")
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(&Config{Level: "loud", Format: "json"}); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestNopDiscards(t *testing.T) {
	Nop().With("x").Error("nothing", String("k", "v"))
}
