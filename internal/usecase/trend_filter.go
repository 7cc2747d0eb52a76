package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"TrendGate/internal/domain/models"
	domrepo "TrendGate/internal/domain/repository"
	domsvc "TrendGate/internal/domain/service"
	"TrendGate/internal/service/cache"
	"TrendGate/internal/services/trend"
	applogger "TrendGate/pkg/logger"
)

// FilterOption configures TrendFilter.
type FilterOption func(*TrendFilter)

// WithLogger injects a structured logger.
func WithLogger(l *applogger.Logger) FilterOption {
	return func(f *TrendFilter) {
		if l != nil {
			f.l = l
		}
	}
}

// WithMetrics injects a metrics recorder.
func WithMetrics(m domrepo.Metrics) FilterOption {
	return func(f *TrendFilter) {
		if m != nil {
			f.metrics = m
		}
	}
}

// WithPublisher ships every decision taken on an enabled filter.
func WithPublisher(p domrepo.DecisionPublisher) FilterOption {
	return func(f *TrendFilter) {
		f.pub = p
	}
}

// WithFetchTimeout bounds each candle fetch. Zero leaves the caller's context as is.
func WithFetchTimeout(d time.Duration) FilterOption {
	return func(f *TrendFilter) {
		f.fetchTimeout = d
	}
}

// WithSourceName labels fetch latency metrics.
func WithSourceName(name string) FilterOption {
	return func(f *TrendFilter) {
		f.sourceName = name
	}
}

// TrendFilter keeps symbols whose recent candles show the configured trend.
// Only positive matches are cached; misses, empty data and negative
// classifications are fetched again on the next call.
type TrendFilter struct {
	cfg     models.FilterConfig
	target  models.Trend
	enabled bool
	tf      domrepo.Timeframe
	params  trend.Params

	cache        *cache.ResultCache
	source       domrepo.CandleSource
	sourceName   string
	fetchTimeout time.Duration

	l       *applogger.Logger
	metrics domrepo.Metrics
	pub     domrepo.DecisionPublisher
}

// NewTrendFilter validates cfg and builds a filter. Every returned error is a
// *models.ConfigurationError.
func NewTrendFilter(cfg models.FilterConfig, source domrepo.CandleSource, opts ...FilterOption) (*TrendFilter, error) {
	target, err := models.ParseTrend(cfg.Trend)
	if err != nil {
		return nil, err
	}

	f := &TrendFilter{
		cfg:        cfg,
		target:     target,
		enabled:    target != models.TrendAny,
		source:     source,
		sourceName: "default",
		l:          applogger.Nop(),
		metrics:    noopMetrics{},
	}
	for _, opt := range opts {
		opt(f)
	}
	if !f.enabled {
		return f, nil
	}

	if cfg.Timeframe == "" {
		return nil, &models.ConfigurationError{
			Field:  "timeframe",
			Reason: "TrendFilter can only work with timeframe defined",
		}
	}
	f.tf, err = domrepo.ParseTimeframe(cfg.Timeframe)
	if err != nil {
		return nil, err
	}
	if cfg.WindowPeriods < 1 {
		return nil, &models.ConfigurationError{Field: "window_periods", Reason: fmt.Sprintf("must be >= 1, got %d", cfg.WindowPeriods)}
	}
	if cfg.SmoothingPeriods < 1 {
		return nil, &models.ConfigurationError{Field: "smooth_ema", Reason: fmt.Sprintf("must be >= 1, got %d", cfg.SmoothingPeriods)}
	}
	if cfg.RefreshPeriod < 0 {
		return nil, &models.ConfigurationError{Field: "refresh_period", Reason: fmt.Sprintf("must not be negative, got %s", cfg.RefreshPeriod)}
	}
	if source == nil {
		return nil, &models.ConfigurationError{Field: "source", Reason: "a candle source is required when trend is not any"}
	}

	f.params = trend.Params{
		WindowPeriods:    cfg.WindowPeriods,
		SmoothingPeriods: cfg.SmoothingPeriods,
		SidewaysPct:      cfg.SidewaysPct,
	}
	f.cache = cache.NewResultCache(cfg.RefreshPeriod)
	return f, nil
}

// Evaluate reports whether symbol stays in the pair list.
func (f *TrendFilter) Evaluate(ctx context.Context, symbol string, now time.Time) bool {
	return f.Decide(ctx, symbol, now).Result
}

// Decide evaluates symbol and tells how the result was reached. It never
// fails: collaborator errors degrade to a negative, uncached result.
func (f *TrendFilter) Decide(ctx context.Context, symbol string, now time.Time) models.Decision {
	d := models.Decision{Symbol: symbol, At: now}
	if !f.enabled {
		d.Result = true
		d.State = models.StateDisabled
		f.metrics.RecordEvaluation(d.State, "")
		return d
	}

	if res, ok := f.cache.Get(symbol, now); ok {
		d.Result = res
		d.State = models.StateCacheHit
		f.finish(ctx, d)
		return d
	}

	f.l.Info("filtering symbol from whitelist",
		applogger.String("symbol", symbol),
		applogger.String("trend", string(f.target)),
	)

	since := f.tf.Since(now, f.cfg.TotalPeriods())
	candles, err := f.fetch(ctx, symbol, since)
	if err != nil {
		f.l.Warn("could not get candles",
			applogger.String("symbol", symbol),
			applogger.String("timeframe", f.tf.String()),
			applogger.Error(err),
		)
		d.State = models.StateNoData
		f.finish(ctx, d)
		return d
	}
	if len(candles) == 0 {
		f.l.Info("could not get data", applogger.String("symbol", symbol))
		d.State = models.StateNoData
		f.finish(ctx, d)
		return d
	}

	series := models.CandleSeries(candles)
	if err := series.Validate(); err != nil {
		f.l.Warn("invalid candle series", applogger.String("symbol", symbol), applogger.Error(err))
		d.State = models.StateNoData
		f.finish(ctx, d)
		return d
	}

	// The last candle may still be forming; it stays in the window so a
	// fetch of exactly TotalPeriods candles can be classified.
	reading, err := trend.Analyze(series, f.params)
	if err != nil {
		if !errors.Is(err, trend.ErrInsufficientCandles) {
			f.l.Error("trend analysis failed", applogger.String("symbol", symbol), applogger.Error(err))
		} else {
			f.l.Info("not enough candles for trend",
				applogger.String("symbol", symbol),
				applogger.Int("candles", len(series)),
				applogger.Int("required", f.cfg.TotalPeriods()),
			)
		}
		d.State = models.StateInsufficientData
		f.finish(ctx, d)
		return d
	}

	f.l.Info("symbol trend computed",
		applogger.String("symbol", symbol),
		applogger.String("trend", string(reading.Trend)),
		applogger.Float64("start_rel", reading.StartRel),
		applogger.Float64("end_rel", reading.EndRel),
	)

	d.State = models.StateClassified
	d.Trend = reading.Trend
	if reading.Trend == f.target {
		d.Result = true
		f.cache.Put(symbol, true, now)
	}
	f.finish(ctx, d)
	return d
}

func (f *TrendFilter) fetch(ctx context.Context, symbol string, since time.Time) ([]models.Candle, error) {
	if f.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.fetchTimeout)
		defer cancel()
	}
	start := time.Now()
	candles, err := f.source.FetchCandles(ctx, symbol, f.tf, since)
	f.metrics.RecordFetchLatency(f.sourceName, time.Since(start).Seconds())
	return candles, err
}

func (f *TrendFilter) finish(ctx context.Context, d models.Decision) {
	f.metrics.RecordEvaluation(d.State, d.Trend)
	f.metrics.RecordCacheSize(f.cache.Len())
	if f.pub == nil {
		return
	}
	if err := f.pub.PublishDecision(ctx, d); err != nil {
		f.l.Warn("publish decision failed", applogger.String("symbol", d.Symbol), applogger.Error(err))
	}
}

// Description is a short summary for startup and status messages.
func (f *TrendFilter) Description() string {
	return fmt.Sprintf("TrendFilter - Filtering pairs with %s trend.", f.target)
}

// NeedsTickers is always true: the filter runs per ticker symbol.
func (f *TrendFilter) NeedsTickers() bool { return true }

// Enabled is false when the configured trend is any.
func (f *TrendFilter) Enabled() bool { return f.enabled }

// Config returns the configuration the filter was built with.
func (f *TrendFilter) Config() models.FilterConfig { return f.cfg }

// CacheSize reports the number of cached symbols.
func (f *TrendFilter) CacheSize() int {
	if f.cache == nil {
		return 0
	}
	return f.cache.Len()
}

// CachedEntry exposes the cache entry for symbol, if any.
func (f *TrendFilter) CachedEntry(symbol string) (models.CacheEntry, bool) {
	if f.cache == nil {
		return models.CacheEntry{}, false
	}
	return f.cache.Peek(symbol)
}

type noopMetrics struct{}

func (noopMetrics) RecordEvaluation(models.EvalState, models.Trend) {}
func (noopMetrics) RecordFetchLatency(string, float64)             {}
func (noopMetrics) RecordCacheSize(int)                            {}

var _ domsvc.PairFilter = (*TrendFilter)(nil)
