//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"TrendGate/pkg/config"
	"TrendGate/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(ctx context.Context, cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,

		// Infrastructure
		ProvideCandleSource,
		ProvideDecisionPublisher,

		// Use cases
		ProvideTrendFilter,
		ProvidePairlist,

		// Transport
		ProvideHTTPHandler,
		ProvideHTTPServer,
		ProvideApp,
	)
	return nil, nil, nil
}
