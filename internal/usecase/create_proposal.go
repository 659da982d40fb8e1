package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/weightvote/weightvote-cli/internal/domain"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
)

// CreateProposal drives the encrypt, submit, confirm sequence for a new proposal
type CreateProposal struct {
	gate    *SessionGate
	wallet  Wallet
	engine  EncryptionEngine
	reader  LedgerReader
	writers WriteAccess
	refresh *RefreshProposals
	session *Session
	status  *StatusBoard
	ids     *ExternalIDGenerator
	log     *slog.Logger
}

// NewCreateProposal creates a new create proposal use case
func NewCreateProposal(
	gate *SessionGate,
	wallet Wallet,
	engine EncryptionEngine,
	reader LedgerReader,
	writers WriteAccess,
	refresh *RefreshProposals,
	session *Session,
	status *StatusBoard,
	ids *ExternalIDGenerator,
	log *slog.Logger,
) *CreateProposal {
	return &CreateProposal{
		gate:    gate,
		wallet:  wallet,
		engine:  engine,
		reader:  reader,
		writers: writers,
		refresh: refresh,
		session: session,
		status:  status,
		ids:     ids,
		log:     log,
	}
}

// CreateProposalParams contains the form inputs
type CreateProposalParams struct {
	Title       string
	Description string
	Weight      string // non-negative integer as entered
}

// CreateProposalResult contains the result of a successful creation
type CreateProposalResult struct {
	ExternalID string
	Title      string
	Weight     uint64
	TxHash     common.Hash
}

// Run executes the creation workflow. Every failure aborts the remaining steps
// and publishes exactly one error status.
func (uc *CreateProposal) Run(ctx context.Context, params CreateProposalParams) (*CreateProposalResult, error) {
	weight, err := uc.validate(params)
	if err != nil {
		uc.status.Fail(ctx, StageEncrypting, preconditionMessage(err))
		return nil, err
	}

	uc.session.setSubmitting(true)
	defer uc.session.setSubmitting(false)

	uc.status.Pending(ctx, StageEncrypting, "Creating vote with FHE encryption...")

	result, err := uc.submit(ctx, params, weight)
	if err != nil {
		wf := domain.ClassifyRemoteError("create proposal", err)
		uc.log.Error("proposal creation failed", "title", params.Title, "kind", wf.Kind, "error", err)
		uc.status.Fail(ctx, StageDone, submissionFailureMessage(wf))
		return nil, wf
	}

	uc.status.Success(ctx, StageDone, "Vote created successfully!")
	uc.session.Record("Created new vote: " + params.Title)

	if _, err := uc.refresh.Run(ctx, RefreshOptions{}); err != nil {
		uc.log.Warn("refresh after creation failed", "external_id", result.ExternalID, "error", err)
	}
	uc.session.closeForm()

	return result, nil
}

func (uc *CreateProposal) validate(params CreateProposalParams) (uint64, error) {
	if err := uc.gate.RequireReady("create proposal"); err != nil {
		return 0, err
	}
	if strings.TrimSpace(params.Title) == "" {
		return 0, domain.Precondition("create proposal", fmt.Errorf("%w: title", domain.ErrMissingField))
	}
	raw := strings.TrimSpace(params.Weight)
	if raw == "" {
		return 0, domain.Precondition("create proposal", fmt.Errorf("%w: weight", domain.ErrMissingField))
	}
	// the encrypted weight is a 32-bit unsigned integer on the ledger
	weight, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, domain.Precondition("create proposal",
			fmt.Errorf("%w: weight must be a non-negative integer, got %q", domain.ErrMissingField, params.Weight))
	}
	return weight, nil
}

func (uc *CreateProposal) submit(ctx context.Context, params CreateProposalParams, weight uint64) (*CreateProposalResult, error) {
	writer, err := uc.writers.Writer(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get contract with signer: %w", err)
	}

	externalID := uc.ids.Next()

	encrypted, err := uc.engine.Encrypt(ctx, uc.reader.ContractAddress(), uc.wallet.Account(), weight)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt weight: %w", err)
	}

	tx, err := writer.CreateProposal(ctx, models.NewProposalTx{
		ExternalID:       externalID,
		Title:            params.Title,
		Description:      params.Description,
		EncryptedPayload: encrypted.Payload,
		CorrectnessProof: encrypted.Proof,
		PlaintextWeight:  weight,
		SecondaryValue:   0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit proposal: %w", err)
	}

	uc.status.Pending(ctx, StageConfirming, "Waiting for transaction confirmation...")
	if err := tx.AwaitFinality(ctx); err != nil {
		return nil, fmt.Errorf("transaction %s failed: %w", tx.Hash().Hex(), err)
	}

	uc.log.Info("proposal created", "external_id", externalID, "tx", tx.Hash().Hex())
	return &CreateProposalResult{
		ExternalID: externalID,
		Title:      params.Title,
		Weight:     weight,
		TxHash:     tx.Hash(),
	}, nil
}

func submissionFailureMessage(err *domain.WorkflowError) string {
	if err.Kind == domain.KindUserCancelled {
		return "Transaction rejected by user"
	}
	return "Submission failed: " + domain.RootMessage(err)
}
