package service

import (
	"context"
	"time"
)

// PairFilter decides whether a symbol stays in a pair list.
type PairFilter interface {
	Evaluate(ctx context.Context, symbol string, now time.Time) bool
	Description() string
	// NeedsTickers reports whether the pipeline must supply per-symbol ticker data.
	NeedsTickers() bool
}
