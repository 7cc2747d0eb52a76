package repository

import (
	"context"

	"TrendGate/internal/domain/models"
)

// DecisionPublisher ships filter decisions to downstream consumers.
type DecisionPublisher interface {
	PublishDecision(ctx context.Context, d models.Decision) error
	Close() error
}

type Metrics interface {
	RecordEvaluation(state models.EvalState, trend models.Trend)
	RecordFetchLatency(source string, seconds float64)
	RecordCacheSize(n int)
}
