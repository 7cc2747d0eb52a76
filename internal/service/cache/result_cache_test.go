package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestResultCacheHitWithinRefresh(t *testing.T) {
	c := NewResultCache(180 * time.Second)
	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c.Put("BTC/USD", true, t0)

	got, ok := c.Get("BTC/USD", t0.Add(179*time.Second))
	if !ok || !got {
		t.Fatalf("expected cached true, got %v ok=%v", got, ok)
	}
}

func TestResultCacheExpiresLazily(t *testing.T) {
	c := NewResultCache(180 * time.Second)
	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c.Put("ETH/USD", true, t0)

	if _, ok := c.Get("ETH/USD", t0.Add(180*time.Second)); ok {
		t.Fatalf("expected miss at exactly the refresh period")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry should be removed, len=%d", c.Len())
	}
	if _, ok := c.Peek("ETH/USD"); ok {
		t.Fatalf("peek should not find removed entry")
	}
}

func TestResultCachePutOverwrites(t *testing.T) {
	c := NewResultCache(time.Minute)
	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c.Put("SOL/USD", true, t0)
	c.Put("SOL/USD", false, t0.Add(30*time.Second))

	e, ok := c.Peek("SOL/USD")
	if !ok {
		t.Fatalf("expected entry")
	}
	if e.Result || !e.LastRefresh.Equal(t0.Add(30*time.Second)) || e.Symbol != "SOL/USD" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if c.Len() != 1 {
		t.Fatalf("one entry per symbol, len=%d", c.Len())
	}
}

func TestResultCacheMiss(t *testing.T) {
	c := NewResultCache(time.Minute)
	if _, ok := c.Get("nope", time.Now()); ok {
		t.Fatalf("expected miss")
	}
}

func TestResultCacheConcurrent(t *testing.T) {
	c := NewResultCache(time.Minute)
	now := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sym := fmt.Sprintf("S%d/USD", i%8)
			c.Put(sym, true, now)
			c.Get(sym, now.Add(time.Second))
			c.Get(sym, now.Add(2*time.Minute))
		}(i)
	}
	wg.Wait()
	if c.Len() > 8 {
		t.Fatalf("at most one entry per symbol, len=%d", c.Len())
	}
}
