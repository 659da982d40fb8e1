package app

import (
	"log/slog"

	"github.com/weightvote/weightvote-cli/internal/adapters/interactive"
	"github.com/weightvote/weightvote-cli/internal/domain/config"
	"github.com/weightvote/weightvote-cli/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared state
	Session  *usecase.Session
	Gate     *usecase.SessionGate
	Status   *usecase.StatusBoard
	Selector *interactive.SelectorAdapter

	// Use cases
	ConnectSession    *usecase.ConnectSession
	RefreshProposals  *usecase.RefreshProposals
	CreateProposal    *usecase.CreateProposal
	RevealWeight      *usecase.RevealWeight
	CheckAvailability *usecase.CheckAvailability
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	session *usecase.Session,
	gate *usecase.SessionGate,
	status *usecase.StatusBoard,
	selector *interactive.SelectorAdapter,
	connectSession *usecase.ConnectSession,
	refreshProposals *usecase.RefreshProposals,
	createProposal *usecase.CreateProposal,
	revealWeight *usecase.RevealWeight,
	checkAvailability *usecase.CheckAvailability,
) (*App, error) {
	return &App{
		Config:            cfg,
		Log:               log,
		Session:           session,
		Gate:              gate,
		Status:            status,
		Selector:          selector,
		ConnectSession:    connectSession,
		RefreshProposals:  refreshProposals,
		CreateProposal:    createProposal,
		RevealWeight:      revealWeight,
		CheckAvailability: checkAvailability,
	}, nil
}
