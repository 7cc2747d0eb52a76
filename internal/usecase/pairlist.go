package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"TrendGate/internal/domain/models"
	domsvc "TrendGate/internal/domain/service"
	applogger "TrendGate/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const defaultPairlistWorkers = 8

// PairlistOption configures PairlistUseCase.
type PairlistOption func(*PairlistUseCase)

// WithWorkers bounds the number of symbols evaluated at once.
func WithWorkers(n int) PairlistOption {
	return func(uc *PairlistUseCase) {
		if n > 0 {
			uc.workers = n
		}
	}
}

// WithPairlistLogger injects a structured logger.
func WithPairlistLogger(l *applogger.Logger) PairlistOption {
	return func(uc *PairlistUseCase) {
		if l != nil {
			uc.l = l
		}
	}
}

// PairlistUseCase applies a PairFilter to a whole whitelist.
type PairlistUseCase struct {
	filter  domsvc.PairFilter
	workers int
	l       *applogger.Logger

	processed atomic.Int64
	passed    atomic.Int64
	removed   atomic.Int64
}

func NewPairlistUseCase(filter domsvc.PairFilter, opts ...PairlistOption) *PairlistUseCase {
	uc := &PairlistUseCase{
		filter:  filter,
		workers: defaultPairlistWorkers,
		l:       applogger.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type FilterParams struct {
	Symbols []string
	Now     time.Time
}

type FilterResult struct {
	Kept    []string
	Removed []string
}

// Filter evaluates every distinct symbol and splits them into kept and
// removed, both in input order. Duplicates are evaluated once.
func (uc *PairlistUseCase) Filter(ctx context.Context, p FilterParams) FilterResult {
	if p.Now.IsZero() {
		p.Now = time.Now().UTC()
	}

	symbols := dedupe(p.Symbols)
	keep := make([]bool, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i, sym := range symbols {
		g.Go(func() error {
			keep[i] = uc.filter.Evaluate(gctx, sym, p.Now)
			return nil
		})
	}
	_ = g.Wait()

	res := FilterResult{Kept: make([]string, 0, len(symbols)), Removed: []string{}}
	for i, sym := range symbols {
		if keep[i] {
			res.Kept = append(res.Kept, sym)
			continue
		}
		res.Removed = append(res.Removed, sym)
		uc.l.Info("removed symbol from whitelist",
			applogger.String("symbol", sym),
			applogger.String("filter", uc.filter.Description()),
		)
	}

	uc.processed.Add(int64(len(symbols)))
	uc.passed.Add(int64(len(res.Kept)))
	uc.removed.Add(int64(len(res.Removed)))
	return res
}

// Stats returns cumulative counters.
func (uc *PairlistUseCase) Stats() models.FilterStats {
	return models.FilterStats{
		TotalProcessed: uc.processed.Load(),
		PassedThrough:  uc.passed.Load(),
		FilteredOut:    uc.removed.Load(),
	}
}

// PairFilter exposes the underlying filter for status reporting.
func (uc *PairlistUseCase) PairFilter() domsvc.PairFilter { return uc.filter }

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
