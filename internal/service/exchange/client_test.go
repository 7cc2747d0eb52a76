package exchange

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	domrepo "TrendGate/internal/domain/repository"
	pkghttp "TrendGate/pkg/http"
)

func TestMarketSymbol(t *testing.T) {
	cases := map[string]string{
		"BTC/USDT":      "BTCUSDT",
		"eth/usdt":      "ETHUSDT",
		"BTC/USDT:USDT": "BTCUSDT",
		"SOLUSDT":       "SOLUSDT",
	}
	for in, want := range cases {
		if got := MarketSymbol(in); got != want {
			t.Fatalf("MarketSymbol(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFetchCandlesParsesKlines(t *testing.T) {
	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != klinesPath || q.Get("symbol") != "BTCUSDT" || q.Get("interval") != "5m" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if q.Get("startTime") != strconv.FormatInt(since.UnixMilli(), 10) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		ms := since.UnixMilli()
		fmt.Fprintf(w, `[[%d,"100.0","101.5","99.5","101.0","12.3",%d,"0",1,"0","0","0"],[%d,"101.0","102.0","100.5","101.8","7.0",%d,"0",1,"0","0","0"]]`,
			ms, ms+299999, ms+300000, ms+599999)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", pkghttp.NewClient(pkghttp.WithRateLimit(1000, 10)), nil)
	tf, _ := domrepo.ParseTimeframe("5m")
	got, err := c.FetchCandles(context.Background(), "BTC/USDT", tf, since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candles, got %d", len(got))
	}
	if !got[0].OpenTime.Equal(since) || got[0].High != 101.5 || got[0].Volume != 12.3 {
		t.Fatalf("unexpected first candle %+v", got[0])
	}
	if got[1].Close != 101.8 {
		t.Fatalf("unexpected second candle %+v", got[1])
	}
}

func TestFetchCandlesPaginates(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		start, _ := strconv.ParseInt(r.URL.Query().Get("startTime"), 10, 64)
		n := maxKlines
		if calls > 1 {
			n = 3
		}
		rows := make([]string, n)
		for i := range rows {
			ot := start + int64(i)*60000
			rows[i] = fmt.Sprintf(`[%d,"1","2","0.5","1.5","1"]`, ot)
		}
		fmt.Fprintf(w, "[%s]", strings.Join(rows, ","))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, pkghttp.NewClient(pkghttp.WithRateLimit(1000, 10)), nil)
	tf, _ := domrepo.ParseTimeframe("1m")
	got, err := c.FetchCandles(context.Background(), "ETH/USDT", tf, since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 || len(got) != maxKlines+3 {
		t.Fatalf("expected 2 pages with %d candles, got calls=%d candles=%d", maxKlines+3, calls, len(got))
	}
	for i := 1; i < len(got); i++ {
		if !got[i].OpenTime.After(got[i-1].OpenTime) {
			t.Fatalf("candles out of order at %d", i)
		}
	}
}

func TestFetchCandlesUnsupportedInterval(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", pkghttp.NewClient(), nil)
	tf, _ := domrepo.ParseTimeframe("7m")
	_, err := c.FetchCandles(context.Background(), "BTC/USDT", tf, time.Now())
	if !errors.Is(err, domrepo.ErrUnsupportedTimeframe) {
		t.Fatalf("expected ErrUnsupportedTimeframe, got %v", err)
	}
}

func TestParseKlinesRejectsShortRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[1717200000000,"1","2"]]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, pkghttp.NewClient(pkghttp.WithRateLimit(1000, 10)), nil)
	tf, _ := domrepo.ParseTimeframe("1h")
	if _, err := c.FetchCandles(context.Background(), "BTC/USDT", tf, time.Now()); err == nil {
		t.Fatalf("expected parse error")
	}
}
