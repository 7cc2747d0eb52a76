package models

import (
	"fmt"
	"time"
)

// Trend is a market direction label. TrendAny disables filtering.
type Trend string

const (
	TrendAny      Trend = "any"
	TrendBull     Trend = "bull"
	TrendBear     Trend = "bear"
	TrendSideways Trend = "sideways"
)

// ParseTrend validates a configured trend value.
func ParseTrend(s string) (Trend, error) {
	switch t := Trend(s); t {
	case TrendAny, TrendBull, TrendBear, TrendSideways:
		return t, nil
	default:
		return "", &ConfigurationError{
			Field:  "trend",
			Reason: fmt.Sprintf("requires trend to be any of: any, bull, bear, sideways (got %q)", s),
		}
	}
}

// TrendReading is the classifier output together with the figures behind it.
type TrendReading struct {
	Trend    Trend   `json:"trend"`
	StartRel float64 `json:"start_rel"` // EMA position at window start, % of range
	EndRel   float64 `json:"end_rel"`   // EMA position at window end, % of range
	MaxPrice float64 `json:"max_price"`
	MinPrice float64 `json:"min_price"`
}

// EvalState tells how a filter decision was reached.
type EvalState string

const (
	StateDisabled         EvalState = "disabled"
	StateCacheHit         EvalState = "cache_hit"
	StateNoData           EvalState = "no_data"
	StateInsufficientData EvalState = "insufficient_data"
	StateClassified       EvalState = "classified"
)

// Decision is the outcome of evaluating one symbol.
type Decision struct {
	Symbol string    `json:"symbol"`
	Result bool      `json:"result"`
	State  EvalState `json:"state"`
	Trend  Trend     `json:"trend,omitempty"` // set only when State is classified
	At     time.Time `json:"at"`
}

// CacheEntry is the memoized outcome for one symbol.
type CacheEntry struct {
	Symbol      string    `json:"symbol"`
	LastRefresh time.Time `json:"last_refresh"`
	Result      bool      `json:"result"`
}
