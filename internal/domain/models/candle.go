package models

import (
	"fmt"
	"time"
)

// Candle represents one OHLCV interval. Values are never mutated once produced.
type Candle struct {
	OpenTime time.Time `json:"open_time"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`
}

// CandleSeries is an ordered run of candles of one timeframe, oldest first.
type CandleSeries []Candle

// Closes extracts close prices in series order.
func (s CandleSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Close
	}
	return out
}

// Highs extracts high prices in series order.
func (s CandleSeries) Highs() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.High
	}
	return out
}

// Lows extracts low prices in series order.
func (s CandleSeries) Lows() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Low
	}
	return out
}

// Validate checks that open times are strictly increasing.
func (s CandleSeries) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i].OpenTime.After(s[i-1].OpenTime) {
			return fmt.Errorf("candle %d open_time %s not after %s", i, s[i].OpenTime, s[i-1].OpenTime)
		}
	}
	return nil
}
