package models

import (
	"encoding/json"
	"time"
)

// Defaults of the trend filter options.
const (
	DefaultWindowPeriods    = 100
	DefaultSmoothingPeriods = 25
	DefaultSidewaysPct      = 10.0
	DefaultRefreshPeriod    = 180 * time.Second
)

// FilterConfig configures a trend filter. It is treated as immutable once a
// filter has been built from it.
type FilterConfig struct {
	Trend            string        `json:"trend"`
	Timeframe        string        `json:"timeframe"`
	WindowPeriods    int           `json:"window_periods"`
	SmoothingPeriods int           `json:"smooth_ema"`
	SidewaysPct      float64       `json:"sideways_pct"`
	RefreshPeriod    time.Duration `json:"refresh_period"`
}

// DefaultFilterConfig returns a config for trend with every numeric option
// at its default.
func DefaultFilterConfig(trend, timeframe string) FilterConfig {
	return FilterConfig{
		Trend:            trend,
		Timeframe:        timeframe,
		WindowPeriods:    DefaultWindowPeriods,
		SmoothingPeriods: DefaultSmoothingPeriods,
		SidewaysPct:      DefaultSidewaysPct,
		RefreshPeriod:    DefaultRefreshPeriod,
	}
}

// TotalPeriods is the number of candles needed for one classification.
func (c FilterConfig) TotalPeriods() int {
	return c.WindowPeriods + c.SmoothingPeriods
}

// MarshalJSON reports refresh_period in whole seconds, the unit it is
// configured in.
func (c FilterConfig) MarshalJSON() ([]byte, error) {
	type plain FilterConfig
	return json.Marshal(struct {
		plain
		RefreshPeriod int64 `json:"refresh_period"`
	}{plain: plain(c), RefreshPeriod: int64(c.RefreshPeriod / time.Second)})
}
