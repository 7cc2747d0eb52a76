package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"TrendGate/internal/domain/models"
	domrepo "TrendGate/internal/domain/repository"
	"TrendGate/internal/usecase"
	xlogger "TrendGate/pkg/logger"

	"github.com/labstack/echo/v4"
)

type bySymbolSource map[string][]models.Candle

func (s bySymbolSource) FetchCandles(_ context.Context, symbol string, _ domrepo.Timeframe, _ time.Time) ([]models.Candle, error) {
	return s[symbol], nil
}

func candles(n int, start, step float64) []models.Candle {
	t0 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.Candle, n)
	for i := range out {
		c := start + float64(i)*step
		out[i] = models.Candle{OpenTime: t0.Add(time.Duration(i) * time.Hour), Open: c, High: c + 1, Low: c - 1, Close: c}
	}
	return out
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	src := bySymbolSource{
		"BTC/USDT": candles(125, 100, 1),
		"ETH/USDT": candles(125, 300, -1),
	}
	f, err := usecase.NewTrendFilter(models.DefaultFilterConfig("bull", "1h"), src)
	if err != nil {
		t.Fatalf("new filter: %v", err)
	}
	h := NewTrendEchoHandler(xlogger.Nop(), f, usecase.NewPairlistUseCase(f))
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func do(t *testing.T, e *echo.Echo, method, target, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return rec.Code, env
}

func TestEvaluateEndpoint(t *testing.T) {
	e := newTestServer(t)
	code, env := do(t, e, http.MethodGet, "/api/trend/evaluate?symbol=BTC/USDT&at=2024-06-06T06:00:00Z", "")
	if code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}
	var d models.Decision
	if err := json.Unmarshal(env.Data, &d); err != nil {
		t.Fatalf("decode decision: %v", err)
	}
	if !d.Result || d.State != models.StateClassified || d.Trend != models.TrendBull {
		t.Fatalf("unexpected decision %+v", d)
	}
}

func TestEvaluateEndpointValidation(t *testing.T) {
	e := newTestServer(t)
	if code, _ := do(t, e, http.MethodGet, "/api/trend/evaluate", ""); code != http.StatusBadRequest {
		t.Fatalf("missing symbol: got %d", code)
	}
	if code, _ := do(t, e, http.MethodGet, "/api/trend/evaluate?symbol=BTC/USDT&at=tomorrow", ""); code != http.StatusBadRequest {
		t.Fatalf("bad at: got %d", code)
	}
}

func TestPairlistEndpoint(t *testing.T) {
	e := newTestServer(t)
	code, env := do(t, e, http.MethodPost, "/api/pairlist/filter",
		`{"symbols":["ETH/USDT","BTC/USDT","XRP/USDT"],"at":"1717653600"}`)
	if code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}
	var res models.PairlistResponse
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Kept) != 1 || res.Kept[0] != "BTC/USDT" {
		t.Fatalf("unexpected kept %v", res.Kept)
	}
	if len(res.Removed) != 2 || res.Removed[0] != "ETH/USDT" || res.Removed[1] != "XRP/USDT" {
		t.Fatalf("unexpected removed %v", res.Removed)
	}

	if code, _ := do(t, e, http.MethodPost, "/api/pairlist/filter", `{"symbols":[]}`); code != http.StatusBadRequest {
		t.Fatalf("empty symbols: got %d", code)
	}
}

func TestStatusEndpoint(t *testing.T) {
	e := newTestServer(t)
	do(t, e, http.MethodGet, "/api/trend/evaluate?symbol=BTC/USDT", "")

	code, env := do(t, e, http.MethodGet, "/api/trend/status", "")
	if code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}
	var st struct {
		Description string `json:"description"`
		Enabled     bool   `json:"enabled"`
		CacheSize   int    `json:"cache_size"`
		Config      struct {
			Trend         string `json:"trend"`
			RefreshPeriod int64  `json:"refresh_period"`
		} `json:"config"`
	}
	if err := json.Unmarshal(env.Data, &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Description != "TrendFilter - Filtering pairs with bull trend." || !st.Enabled {
		t.Fatalf("unexpected status %+v", st)
	}
	if st.CacheSize != 1 || st.Config.Trend != "bull" || st.Config.RefreshPeriod != 180 {
		t.Fatalf("unexpected status %+v", st)
	}
}
