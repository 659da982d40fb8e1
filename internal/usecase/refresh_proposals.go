package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/weightvote/weightvote-cli/internal/domain"
	"github.com/weightvote/weightvote-cli/internal/domain/config"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
	"golang.org/x/sync/semaphore"
)

// RefreshProposals loads the full proposal set from the ledger and recomputes
// the aggregate statistics. Refreshes never overlap: a second caller waits for
// the running one and then performs its own load.
type RefreshProposals struct {
	reader       LedgerReader
	gate         *SessionGate
	session      *Session
	status       *StatusBoard
	clock        clock.Clock
	recentWindow time.Duration
	log          *slog.Logger

	running *semaphore.Weighted
}

// NewRefreshProposals creates a new refresh use case
func NewRefreshProposals(
	reader LedgerReader,
	gate *SessionGate,
	session *Session,
	status *StatusBoard,
	clk clock.Clock,
	cfg *config.RuntimeConfig,
	log *slog.Logger,
) *RefreshProposals {
	return &RefreshProposals{
		reader:       reader,
		gate:         gate,
		session:      session,
		status:       status,
		clock:        clk,
		recentWindow: cfg.UI.RecentWindow,
		log:          log,
		running:      semaphore.NewWeighted(1),
	}
}

// RefreshOptions controls status reporting of a refresh
type RefreshOptions struct {
	// ReportStatus publishes loading and success statuses. Refreshes that run
	// inside another workflow stay quiet so they don't supersede its status.
	ReportStatus bool
}

// FailedRecord is a proposal whose record could not be fetched
type FailedRecord struct {
	ExternalID string
	Err        error
}

// RefreshResult contains the result of a refresh
type RefreshResult struct {
	Proposals []*models.Proposal
	Stats     models.Stats
	Failed    []FailedRecord
}

// Run performs one refresh
func (r *RefreshProposals) Run(ctx context.Context, opts RefreshOptions) (*RefreshResult, error) {
	if err := r.gate.RequireConnected("refresh"); err != nil {
		r.status.Fail(ctx, StageLoading, preconditionMessage(err))
		return nil, err
	}

	if err := r.running.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer r.running.Release(1)

	r.session.setRefreshing(true)
	defer r.session.setRefreshing(false)

	if opts.ReportStatus {
		r.status.Pending(ctx, StageLoading, "Loading votes...")
	}

	ids, err := r.reader.ProposalIDs(ctx)
	if err != nil {
		r.log.Error("failed to load proposal ids", "error", err)
		r.status.Fail(ctx, StageLoading, "Failed to load data")
		return nil, domain.ClassifyRemoteError("list proposals", err)
	}

	result := &RefreshResult{
		Proposals: make([]*models.Proposal, 0, len(ids)),
	}
	for _, id := range ids {
		proposal, err := r.reader.GetProposal(ctx, id)
		if err != nil {
			r.log.Warn("failed to load proposal", "external_id", id, "error", err)
			result.Failed = append(result.Failed, FailedRecord{ExternalID: id, Err: err})
			continue
		}
		result.Proposals = append(result.Proposals, proposal)
	}

	now := r.clock.Now()
	result.Proposals = r.session.replaceProposals(result.Proposals, func(ps []*models.Proposal) models.Stats {
		result.Stats = ComputeStats(ps, now, r.recentWindow)
		return result.Stats
	})
	r.session.Record(fmt.Sprintf("Refreshed vote data, found %d votes", len(result.Proposals)))

	r.log.Debug("refresh complete", "loaded", len(result.Proposals), "failed", len(result.Failed))
	if opts.ReportStatus {
		r.status.Success(ctx, StageDone, fmt.Sprintf("Loaded %d votes", len(result.Proposals)))
	}
	return result, nil
}
