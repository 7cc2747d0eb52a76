// Package exchange fetches candles from a Binance-compatible klines endpoint.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"TrendGate/internal/domain/models"
	domrepo "TrendGate/internal/domain/repository"
	pkghttp "TrendGate/pkg/http"
	applogger "TrendGate/pkg/logger"
)

const (
	klinesPath = "/api/v3/klines"
	// maxKlines is the page size cap of the endpoint.
	maxKlines = 1000
)

var supportedIntervals = map[string]struct{}{
	"1s": {}, "1m": {}, "3m": {}, "5m": {}, "15m": {}, "30m": {},
	"1h": {}, "2h": {}, "4h": {}, "6h": {}, "8h": {}, "12h": {},
	"1d": {}, "3d": {},
}

// Client implements CandleSource over the REST klines API.
type Client struct {
	baseURL string
	http    *pkghttp.Client
	l       *applogger.Logger
}

func NewClient(baseURL string, hc *pkghttp.Client, l *applogger.Logger) *Client {
	if l == nil {
		l = applogger.Nop()
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc, l: l}
}

// FetchCandles pages through klines from since until the endpoint returns a
// short page.
func (c *Client) FetchCandles(ctx context.Context, symbol string, tf domrepo.Timeframe, since time.Time) ([]models.Candle, error) {
	interval := tf.String()
	if _, ok := supportedIntervals[interval]; !ok {
		return nil, fmt.Errorf("%w: %s", domrepo.ErrUnsupportedTimeframe, interval)
	}
	market := MarketSymbol(symbol)

	var out []models.Candle
	start := since.UnixMilli()
	for {
		q := url.Values{}
		q.Set("symbol", market)
		q.Set("interval", interval)
		q.Set("startTime", strconv.FormatInt(start, 10))
		q.Set("limit", strconv.Itoa(maxKlines))

		var rows [][]json.RawMessage
		if err := c.http.GetJSON(ctx, c.baseURL+klinesPath, q, &rows); err != nil {
			return nil, fmt.Errorf("klines %s %s: %w", market, interval, err)
		}
		page, err := parseKlines(rows)
		if err != nil {
			return nil, fmt.Errorf("klines %s %s: %w", market, interval, err)
		}
		out = append(out, page...)
		if len(page) < maxKlines {
			break
		}
		start = page[len(page)-1].OpenTime.UnixMilli() + 1
	}

	c.l.Debug("exchange klines fetched",
		applogger.String("symbol", market),
		applogger.String("interval", interval),
		applogger.Int("rows", len(out)),
	)
	return out, nil
}

// MarketSymbol turns a pair like BTC/USDT (or BTC/USDT:USDT) into BTCUSDT.
func MarketSymbol(pair string) string {
	if i := strings.IndexByte(pair, ':'); i >= 0 {
		pair = pair[:i]
	}
	return strings.ToUpper(strings.ReplaceAll(pair, "/", ""))
}

// parseKlines decodes [openTime, "open", "high", "low", "close", "volume", ...] rows.
func parseKlines(rows [][]json.RawMessage) ([]models.Candle, error) {
	out := make([]models.Candle, 0, len(rows))
	for i, r := range rows {
		if len(r) < 6 {
			return nil, fmt.Errorf("row %d: expected at least 6 fields, got %d", i, len(r))
		}
		var openMs int64
		if err := json.Unmarshal(r[0], &openMs); err != nil {
			return nil, fmt.Errorf("row %d open time: %w", i, err)
		}
		var vals [5]float64
		for j := range vals {
			v, err := decimalField(r[j+1])
			if err != nil {
				return nil, fmt.Errorf("row %d field %d: %w", i, j+1, err)
			}
			vals[j] = v
		}
		out = append(out, models.Candle{
			OpenTime: time.UnixMilli(openMs).UTC(),
			Open:     vals[0],
			High:     vals[1],
			Low:      vals[2],
			Close:    vals[3],
			Volume:   vals[4],
		})
	}
	return out, nil
}

// decimalField accepts both "123.45" and 123.45.
func decimalField(raw json.RawMessage) (float64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strconv.ParseFloat(s, 64)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, err
	}
	return f, nil
}

var _ domrepo.CandleSource = (*Client)(nil)
