//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/weightvote/weightvote-cli/internal/adapters"
	"github.com/weightvote/weightvote-cli/internal/logging"
	"github.com/weightvote/weightvote-cli/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		ProvideRuntimeConfig,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Shared state
		usecase.NewStatusBoard,
		usecase.NewHistory,
		usecase.NewSession,
		usecase.NewSessionGate,
		usecase.NewExternalIDGenerator,

		// Use cases
		usecase.NewRefreshProposals,
		usecase.NewConnectSession,
		usecase.NewCreateProposal,
		usecase.NewRevealWeight,
		usecase.NewCheckAvailability,

		// App
		NewApp,
	)
	return nil, nil
}
