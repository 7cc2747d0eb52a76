package di

import (
	"context"
	"fmt"

	"TrendGate/internal/domain/models"
	"TrendGate/internal/domain/repository"
	"TrendGate/internal/handler/api"
	internalrepo "TrendGate/internal/repository"
	"TrendGate/internal/service/exchange"
	"TrendGate/internal/usecase"
	pkgcache "TrendGate/pkg/cache"
	pkgch "TrendGate/pkg/clickhouse"
	"TrendGate/pkg/config"
	xhttp "TrendGate/pkg/http"
	pkgkafka "TrendGate/pkg/kafka"
	applogger "TrendGate/pkg/logger"
	"TrendGate/pkg/metrics"
	"TrendGate/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ProvideLogger builds the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideRegistry creates the Prometheus registry served on /metrics.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideCandleSource connects the configured candle backend. A disabled
// filter never fetches, so no backend is dialed when trend is any.
func ProvideCandleSource(ctx context.Context, cfg *config.Config, l *applogger.Logger) (repository.CandleSource, func(), error) {
	if cfg.TrendFilter.Trend == string(models.TrendAny) {
		l.Info("trend filter disabled, skipping candle source", applogger.String("type", cfg.Source.Type))
		return nil, func() {}, nil
	}
	src := cfg.Source
	switch src.Type {
	case "clickhouse":
		ch, err := pkgch.NewClient(ctx,
			pkgch.WithHost(src.ClickHouse.Host),
			pkgch.WithPort(src.ClickHouse.Port),
			pkgch.WithDatabase(src.ClickHouse.Database),
			pkgch.WithCredentials(src.ClickHouse.User, src.ClickHouse.Password),
			pkgch.WithTimeouts(src.ClickHouse.DialTimeout, src.ClickHouse.ReadTimeout),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("clickhouse client: %w", err)
		}
		cleanup := func() {
			if err := ch.Close(); err != nil {
				l.Warn("clickhouse close error", applogger.Error(err))
			}
		}
		return internalrepo.NewCHCandleSource(ch, l.With("clickhouse")), cleanup, nil

	case "redis":
		rc, err := pkgcache.NewRedisClient(ctx,
			pkgcache.WithRedisAddr(src.Redis.Addr),
			pkgcache.WithRedisPassword(src.Redis.Password),
			pkgcache.WithRedisDB(src.Redis.DB),
			pkgcache.WithRedisPrefix(src.Redis.KeyPrefix),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("redis client: %w", err)
		}
		cleanup := func() {
			if err := rc.Close(); err != nil {
				l.Warn("redis close error", applogger.Error(err))
			}
		}
		return internalrepo.NewRedisCandleSource(rc, l.With("redis")), cleanup, nil

	case "rest":
		hc := xhttp.NewClient(
			xhttp.WithTimeout(src.REST.Timeout),
			xhttp.WithRateLimit(src.REST.RequestsPerSec, 1),
			xhttp.WithMaxRetryTime(src.REST.MaxRetryTime),
		)
		return exchange.NewClient(src.REST.BaseURL, hc, l.With("exchange")), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown source type %q", src.Type)
	}
}

// ProvideDecisionPublisher returns a Kafka publisher, or nil when disabled.
func ProvideDecisionPublisher(cfg *config.Config, l *applogger.Logger) (repository.DecisionPublisher, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithTopic(cfg.Kafka.Topic),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithAsync(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	pub := internalrepo.NewKafkaDecisionPublisher(producer)
	cleanup := func() {
		if err := pub.Close(); err != nil {
			l.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	return pub, cleanup, nil
}

// ProvideTrendFilter builds the filter from the trend_filter section.
func ProvideTrendFilter(
	cfg *config.Config,
	src repository.CandleSource,
	pub repository.DecisionPublisher,
	m repository.Metrics,
	l *applogger.Logger,
) (*usecase.TrendFilter, error) {
	opts := []usecase.FilterOption{
		usecase.WithLogger(l.With("trend_filter")),
		usecase.WithMetrics(m),
		usecase.WithFetchTimeout(cfg.TrendFilter.FetchTimeout),
		usecase.WithSourceName(cfg.Source.Type),
	}
	if pub != nil {
		opts = append(opts, usecase.WithPublisher(pub))
	}
	f, err := usecase.NewTrendFilter(cfg.FilterConfig(), src, opts...)
	if err != nil {
		return nil, fmt.Errorf("trend filter: %w", err)
	}
	return f, nil
}

// ProvidePairlist applies the filter to whole whitelists.
func ProvidePairlist(cfg *config.Config, f *usecase.TrendFilter, l *applogger.Logger) *usecase.PairlistUseCase {
	return usecase.NewPairlistUseCase(f,
		usecase.WithWorkers(cfg.Pairlist.Workers),
		usecase.WithPairlistLogger(l.With("pairlist")),
	)
}

// ProvideHTTPHandler registers the trend API routes.
func ProvideHTTPHandler(l *applogger.Logger, f *usecase.TrendFilter, p *usecase.PairlistUseCase) xhttp.Handler {
	return api.NewTrendEchoHandler(l, f, p)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, reg *prometheus.Registry, l *applogger.Logger) *xhttp.Server {
	return xhttp.NewServer(h, l,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithServerTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithRegistry(reg),
	)
}

// ProvideApp creates the application.
func ProvideApp(cfg *config.Config, srv *xhttp.Server, f *usecase.TrendFilter, l *applogger.Logger) *server.App {
	return server.New(cfg, srv, f, l)
}
