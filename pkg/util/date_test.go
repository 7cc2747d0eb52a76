package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	got, ok := ParseTime("2024-10-10T12:10:10+02:00")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Format(time.RFC3339) != "2024-10-10T10:10:10Z" {
		t.Fatalf("expected UTC time, got %v", got)
	}
	if _, ok := ParseTime("2024-10-10T10:10:10.123456Z"); !ok {
		t.Fatalf("fractional seconds should parse")
	}
}

func TestParseTimeUnix(t *testing.T) {
	want := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got, ok := ParseTime(strconv.FormatInt(want.Unix(), 10))
	if !ok || !got.Equal(want) {
		t.Fatalf("unix seconds: got %v ok=%v", got, ok)
	}
	got, ok = ParseTime(strconv.FormatInt(want.UnixMilli(), 10))
	if !ok || !got.Equal(want) {
		t.Fatalf("unix millis: got %v ok=%v", got, ok)
	}
}

func TestParseTimeInvalid(t *testing.T) {
	for _, s := range []string{"", "yesterday", "-5", "0"} {
		if _, ok := ParseTime(s); ok {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	if got := ParseTimeDefault("", def); !got.Equal(def) {
		t.Fatalf("expected default")
	}
}
