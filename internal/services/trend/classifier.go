// Package trend classifies the market direction of a candle series.
//
// The close price is smoothed with an EMA. The EMA value at the first and last
// candle of the lookback window is placed inside the window's high/low range
// (0-100%); the displacement between the two positions, compared against a
// tolerance band, gives bull, bear or sideways.
package trend

import (
	"errors"
	"fmt"
	"slices"

	"TrendGate/internal/domain/models"

	"github.com/markcheno/go-talib"
)

// ErrInsufficientCandles is returned when the series is shorter than
// WindowPeriods + SmoothingPeriods.
var ErrInsufficientCandles = errors.New("insufficient candles")

// Params controls one classification.
type Params struct {
	WindowPeriods    int
	SmoothingPeriods int
	SidewaysPct      float64
}

// TotalPeriods is the minimal series length.
func (p Params) TotalPeriods() int {
	return p.WindowPeriods + p.SmoothingPeriods
}

// Classify returns only the trend label of Analyze.
func Classify(series models.CandleSeries, p Params) (models.Trend, error) {
	r, err := Analyze(series, p)
	if err != nil {
		return "", err
	}
	return r.Trend, nil
}

// Analyze computes the trend of the last WindowPeriods candles.
// A flat window (zero high/low range) is reported as sideways.
func Analyze(series models.CandleSeries, p Params) (models.TrendReading, error) {
	if p.WindowPeriods < 1 || p.SmoothingPeriods < 1 {
		return models.TrendReading{}, fmt.Errorf("window %d and smoothing %d must be >= 1", p.WindowPeriods, p.SmoothingPeriods)
	}
	n := len(series)
	if n < p.TotalPeriods() {
		return models.TrendReading{}, fmt.Errorf("%w: have %d, need %d", ErrInsufficientCandles, n, p.TotalPeriods())
	}

	// first SmoothingPeriods-1 values are warm-up; the window starts after them
	ema := talib.Ema(series.Closes(), p.SmoothingPeriods)

	first := n - p.WindowPeriods
	last := n - 1
	window := series[first:]

	maxPrice := slices.Max(window.Highs())
	minPrice := slices.Min(window.Lows())

	reading := models.TrendReading{
		Trend:    models.TrendSideways,
		MaxPrice: maxPrice,
		MinPrice: minPrice,
	}
	rng := maxPrice - minPrice
	if rng == 0 {
		return reading, nil
	}

	reading.StartRel = (ema[first] - minPrice) * 100 / rng
	reading.EndRel = (ema[last] - minPrice) * 100 / rng

	switch {
	case reading.StartRel > reading.EndRel+p.SidewaysPct:
		reading.Trend = models.TrendBear
	case reading.StartRel < reading.EndRel-p.SidewaysPct:
		reading.Trend = models.TrendBull
	}
	return reading, nil
}
