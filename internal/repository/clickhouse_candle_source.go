package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"TrendGate/internal/domain/models"
	domrepo "TrendGate/internal/domain/repository"
	pkgch "TrendGate/pkg/clickhouse"
	applogger "TrendGate/pkg/logger"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// CHCandleSource reads pre-aggregated candles from ClickHouse tables named
// <database>.candles_<timeframe>, e.g. market.candles_5m.
type CHCandleSource struct {
	db       *sql.DB
	database string
	l        *applogger.Logger
}

func NewCHCandleSource(ch *pkgch.Client, l *applogger.Logger) *CHCandleSource {
	if l == nil {
		l = applogger.Nop()
	}
	return &CHCandleSource{db: ch.DB(), database: ch.Database(), l: l}
}

// FetchCandles returns candles with bucket >= since, oldest first.
func (s *CHCandleSource) FetchCandles(ctx context.Context, symbol string, tf domrepo.Timeframe, since time.Time) ([]models.Candle, error) {
	start := time.Now()
	table, err := candleTable(s.database, tf)
	if err != nil {
		return nil, err
	}

	const qtpl = `
        SELECT bucket, open, high, low, close, vol
        FROM %s
        WHERE symbol = ? AND bucket >= ?
        ORDER BY bucket ASC
    `
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(qtpl, table), symbol, since.UTC())
	if err != nil {
		s.l.Error("clickhouse fetch_candles query error",
			applogger.String("table", table),
			applogger.String("symbol", symbol),
			applogger.Error(err),
		)
		return nil, fmt.Errorf("query candles: %w", err)
	}
	defer rows.Close()

	out := make([]models.Candle, 0, 256)
	for rows.Next() {
		var c models.Candle
		if err := rows.Scan(&c.OpenTime, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, fmt.Errorf("scan candle: %w", err)
		}
		c.OpenTime = c.OpenTime.UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	s.l.Debug("clickhouse fetch_candles ok",
		applogger.String("table", table),
		applogger.String("symbol", symbol),
		applogger.Int("rows", len(out)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return out, nil
}

func candleTable(database string, tf domrepo.Timeframe) (string, error) {
	if tf.Value <= 0 || tf.Unit.Duration() == 0 {
		return "", fmt.Errorf("%w: %s", domrepo.ErrUnsupportedTimeframe, tf)
	}
	if !identRe.MatchString(database) {
		return "", fmt.Errorf("invalid clickhouse database name %q", database)
	}
	return fmt.Sprintf("%s.candles_%s", database, tf.String()), nil
}

var _ domrepo.CandleSource = (*CHCandleSource)(nil)
