package repository

import (
	"context"
	"errors"
	"time"

	"TrendGate/internal/domain/models"
)

// ErrUnsupportedTimeframe is returned by sources that cannot serve a timeframe.
var ErrUnsupportedTimeframe = errors.New("unsupported timeframe")

// CandleSource provides read-only access to historical candles.
// An empty result with a nil error means no data is available.
type CandleSource interface {
	FetchCandles(ctx context.Context, symbol string, tf Timeframe, since time.Time) ([]models.Candle, error)
}
