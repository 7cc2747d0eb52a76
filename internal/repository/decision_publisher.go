package repository

import (
	"context"

	"TrendGate/internal/domain/models"
	domrepo "TrendGate/internal/domain/repository"
	pkgkafka "TrendGate/pkg/kafka"
)

// KafkaDecisionPublisher ships filter decisions keyed by symbol.
type KafkaDecisionPublisher struct {
	p *pkgkafka.Producer
}

func NewKafkaDecisionPublisher(p *pkgkafka.Producer) *KafkaDecisionPublisher {
	return &KafkaDecisionPublisher{p: p}
}

func (k *KafkaDecisionPublisher) PublishDecision(ctx context.Context, d models.Decision) error {
	return k.p.PublishJSON(ctx, d.Symbol, d)
}

func (k *KafkaDecisionPublisher) Close() error {
	return k.p.Close()
}

var _ domrepo.DecisionPublisher = (*KafkaDecisionPublisher)(nil)
