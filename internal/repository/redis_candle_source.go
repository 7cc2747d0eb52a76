package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"TrendGate/internal/domain/models"
	domrepo "TrendGate/internal/domain/repository"
	pkgcache "TrendGate/pkg/cache"
	applogger "TrendGate/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RedisCandleSource reads candles kept by an external collector in sorted
// sets <prefix>:<timeframe>:<symbol>, scored by open time in milliseconds.
type RedisCandleSource struct {
	rc *pkgcache.RedisClient
	l  *applogger.Logger
}

func NewRedisCandleSource(rc *pkgcache.RedisClient, l *applogger.Logger) *RedisCandleSource {
	if l == nil {
		l = applogger.Nop()
	}
	return &RedisCandleSource{rc: rc, l: l}
}

func (s *RedisCandleSource) FetchCandles(ctx context.Context, symbol string, tf domrepo.Timeframe, since time.Time) ([]models.Candle, error) {
	key := s.rc.Key(tf.String(), symbol)
	members, err := s.rc.Client().ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min: strconv.FormatInt(since.UnixMilli(), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		s.l.Error("redis fetch_candles error", applogger.String("key", key), applogger.Error(err))
		return nil, fmt.Errorf("zrangebyscore %s: %w", key, err)
	}
	candles, err := decodeCandleMembers(members)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	s.l.Debug("redis fetch_candles ok", applogger.String("key", key), applogger.Int("rows", len(candles)))
	return candles, nil
}

// redisCandle is the member layout written by the collector.
type redisCandle struct {
	OpenTime int64   `json:"t"`
	Open     float64 `json:"o"`
	High     float64 `json:"h"`
	Low      float64 `json:"l"`
	Close    float64 `json:"c"`
	Volume   float64 `json:"v"`
}

func decodeCandleMembers(members []string) ([]models.Candle, error) {
	out := make([]models.Candle, 0, len(members))
	for i, m := range members {
		var rc redisCandle
		if err := json.Unmarshal([]byte(m), &rc); err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
		out = append(out, models.Candle{
			OpenTime: time.UnixMilli(rc.OpenTime).UTC(),
			Open:     rc.Open,
			High:     rc.High,
			Low:      rc.Low,
			Close:    rc.Close,
			Volume:   rc.Volume,
		})
	}
	return out, nil
}

var _ domrepo.CandleSource = (*RedisCandleSource)(nil)
