package repository

import (
	"fmt"
	"strconv"
	"time"

	"TrendGate/internal/domain/models"
)

// TimeUnit is the unit suffix of a compact timeframe string.
type TimeUnit int

const (
	UnitSecond TimeUnit = iota + 1
	UnitMinute
	UnitHour
	UnitDay
)

// Duration returns the length of one unit.
func (u TimeUnit) Duration() time.Duration {
	switch u {
	case UnitSecond:
		return time.Second
	case UnitMinute:
		return time.Minute
	case UnitHour:
		return time.Hour
	case UnitDay:
		return 24 * time.Hour
	default:
		return 0
	}
}

// Suffix returns the single-letter unit used in timeframe strings.
func (u TimeUnit) Suffix() string {
	switch u {
	case UnitSecond:
		return "s"
	case UnitMinute:
		return "m"
	case UnitHour:
		return "h"
	case UnitDay:
		return "d"
	default:
		return "?"
	}
}

func unitFromSuffix(b byte) (TimeUnit, bool) {
	switch b {
	case 's':
		return UnitSecond, true
	case 'm':
		return UnitMinute, true
	case 'h':
		return UnitHour, true
	case 'd':
		return UnitDay, true
	default:
		return 0, false
	}
}

// Timeframe is a candle resolution such as 5m or 4h.
type Timeframe struct {
	Value int
	Unit  TimeUnit
}

// ParseTimeframe parses "30s", "5m", "4h", "1d". The prefix must be a
// positive integer and the suffix one of s, m, h, d.
func ParseTimeframe(s string) (Timeframe, error) {
	if len(s) < 2 {
		return Timeframe{}, invalidTimeframe(s)
	}
	unit, ok := unitFromSuffix(s[len(s)-1])
	if !ok {
		return Timeframe{}, &models.ConfigurationError{
			Field:  "timeframe",
			Reason: fmt.Sprintf("%q not valid, provide a timeframe in seconds, minutes, hours or days", s),
		}
	}
	prefix := s[:len(s)-1]
	for i := 0; i < len(prefix); i++ {
		if prefix[i] < '0' || prefix[i] > '9' {
			return Timeframe{}, invalidTimeframe(s)
		}
	}
	v, err := strconv.Atoi(prefix)
	if err != nil || v <= 0 {
		return Timeframe{}, invalidTimeframe(s)
	}
	return Timeframe{Value: v, Unit: unit}, nil
}

func invalidTimeframe(s string) error {
	return &models.ConfigurationError{
		Field:  "timeframe",
		Reason: fmt.Sprintf("%q must be a positive integer followed by s, m, h or d", s),
	}
}

// String renders the timeframe back into its compact form.
func (tf Timeframe) String() string {
	return strconv.Itoa(tf.Value) + tf.Unit.Suffix()
}

// Duration is the span covered by one candle.
func (tf Timeframe) Duration() time.Duration {
	return time.Duration(tf.Value) * tf.Unit.Duration()
}

// Since returns the start of a lookback of the given number of periods:
// now floored to the timeframe unit, minus periods candles.
func (tf Timeframe) Since(now time.Time, periods int) time.Time {
	floored := now.UTC().Truncate(tf.Unit.Duration())
	return floored.Add(-time.Duration(periods) * tf.Duration())
}
