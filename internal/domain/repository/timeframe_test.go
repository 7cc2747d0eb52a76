package repository

import (
	"errors"
	"testing"
	"time"

	"TrendGate/internal/domain/models"
)

func TestParseTimeframe(t *testing.T) {
	cases := []struct {
		in    string
		value int
		unit  TimeUnit
		dur   time.Duration
	}{
		{"30s", 30, UnitSecond, 30 * time.Second},
		{"5m", 5, UnitMinute, 5 * time.Minute},
		{"2h", 2, UnitHour, 2 * time.Hour},
		{"4h", 4, UnitHour, 4 * time.Hour},
		{"1d", 1, UnitDay, 24 * time.Hour},
	}
	for _, tc := range cases {
		tf, err := ParseTimeframe(tc.in)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.in, err)
		}
		if tf.Value != tc.value || tf.Unit != tc.unit {
			t.Fatalf("%s: got %d/%v", tc.in, tf.Value, tf.Unit)
		}
		if tf.Duration() != tc.dur {
			t.Fatalf("%s: duration %v", tc.in, tf.Duration())
		}
		if tf.String() != tc.in {
			t.Fatalf("%s: round trip %q", tc.in, tf.String())
		}
	}
}

func TestParseTimeframeInvalid(t *testing.T) {
	for _, in := range []string{"x", "", "m", "5w", "0m", "-1m", "+5m", "1.5h", "m5"} {
		_, err := ParseTimeframe(in)
		if err == nil {
			t.Fatalf("%q: expected error", in)
		}
		if !errors.Is(err, models.ErrConfiguration) {
			t.Fatalf("%q: expected configuration error, got %v", in, err)
		}
	}
}

func TestTimeframeSinceFloorsToUnit(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 3, 42, 500, time.UTC)

	tf, _ := ParseTimeframe("5m")
	got := tf.Since(now, 125)
	want := time.Date(2024, 3, 1, 12, 3, 0, 0, time.UTC).Add(-625 * time.Minute)
	if !got.Equal(want) {
		t.Fatalf("5m since: got %v want %v", got, want)
	}

	tf, _ = ParseTimeframe("1d")
	got = tf.Since(now, 2)
	want = time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("1d since: got %v want %v", got, want)
	}
}
