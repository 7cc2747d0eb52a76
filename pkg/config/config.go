package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"TrendGate/internal/domain/models"
	pkghttp "TrendGate/pkg/http"
	applogger "TrendGate/pkg/logger"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string           `yaml:"environment" default:"dev" validate:"required"`
	Server      ServerConfig     `yaml:"server"`
	Log         applogger.Config `yaml:"log"`
	TrendFilter TrendConfig      `yaml:"trend_filter"`
	Pairlist    PairlistConfig   `yaml:"pairlist"`
	Source      SourceConfig     `yaml:"source"`
	Kafka       KafkaConfig      `yaml:"kafka"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
}

type TrendConfig struct {
	Trend         string        `yaml:"trend" validate:"required,oneof=any bull bear sideways"`
	Timeframe     string        `yaml:"timeframe"`
	WindowPeriods int           `yaml:"window_periods" default:"100" validate:"gte=1"`
	SmoothEMA     int           `yaml:"smooth_ema" default:"25" validate:"gte=1"`
	SidewaysPct   float64       `yaml:"sideways_pct" default:"10"`
	RefreshPeriod int           `yaml:"refresh_period" default:"180" validate:"gte=0"` // seconds
	FetchTimeout  time.Duration `yaml:"fetch_timeout" default:"10s"`
}

type PairlistConfig struct {
	Workers int `yaml:"workers" default:"8" validate:"gte=1"`
}

type SourceConfig struct {
	Type       string                 `yaml:"type" default:"rest" validate:"oneof=rest clickhouse redis"`
	REST       RESTSourceConfig       `yaml:"rest"`
	ClickHouse ClickHouseSourceConfig `yaml:"clickhouse"`
	Redis      RedisSourceConfig      `yaml:"redis"`
}

type RESTSourceConfig struct {
	BaseURL        string        `yaml:"base_url" default:"https://api.binance.com" validate:"url"`
	RequestsPerSec float64       `yaml:"requests_per_sec" default:"10" validate:"gt=0"`
	Timeout        time.Duration `yaml:"timeout" default:"10s"`
	MaxRetryTime   time.Duration `yaml:"max_retry_time" default:"30s"`
}

type ClickHouseSourceConfig struct {
	Host        string        `yaml:"host" default:"localhost"`
	Port        int           `yaml:"port" default:"9000"`
	Database    string        `yaml:"database" default:"market"`
	User        string        `yaml:"user" default:"default"`
	Password    string        `yaml:"password"`
	DialTimeout time.Duration `yaml:"dial_timeout" default:"5s"`
	ReadTimeout time.Duration `yaml:"read_timeout" default:"10s"`
}

type RedisSourceConfig struct {
	Addr      string `yaml:"addr" default:"localhost:6379"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix" default:"candles"`
}

type KafkaConfig struct {
	Enabled     bool     `yaml:"enabled"`
	Brokers     []string `yaml:"brokers" validate:"required_if=Enabled true"`
	Topic       string   `yaml:"topic" default:"trendgate.decisions"`
	Compression string   `yaml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
}

// Load reads and parses a YAML configuration file. Defaults are applied
// first so that explicit zero values in the file are kept.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := parse(b)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads .env (if present), the YAML file, then applies
// environment overrides before validating.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := parse(b)
	if err != nil {
		return nil, err
	}
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TREND"); v != "" {
		c.TrendFilter.Trend = v
	}
	if v := os.Getenv("TIMEFRAME"); v != "" {
		c.TrendFilter.Timeframe = v
	}
	if v := os.Getenv("SOURCE_TYPE"); v != "" {
		c.Source.Type = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Source.Redis.Addr = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.Source.ClickHouse.Host = v
	}
}

// Validate checks struct tags plus rules that span fields.
func (c *Config) Validate() error {
	if err := pkghttp.Validator().Struct(c); err != nil {
		details := pkghttp.ValidationErrors(err)
		msgs := make([]string, 0, len(details))
		for _, d := range details {
			msgs = append(msgs, d.Message)
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	if c.TrendFilter.Trend != string(models.TrendAny) && c.TrendFilter.Timeframe == "" {
		return fmt.Errorf("trend_filter.timeframe is required when trend is %s", c.TrendFilter.Trend)
	}
	return nil
}

// FilterConfig converts the trend_filter section.
func (c *Config) FilterConfig() models.FilterConfig {
	t := c.TrendFilter
	return models.FilterConfig{
		Trend:            t.Trend,
		Timeframe:        t.Timeframe,
		WindowPeriods:    t.WindowPeriods,
		SmoothingPeriods: t.SmoothEMA,
		SidewaysPct:      t.SidewaysPct,
		RefreshPeriod:    time.Duration(t.RefreshPeriod) * time.Second,
	}
}
