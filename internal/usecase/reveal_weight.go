package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/weightvote/weightvote-cli/internal/domain"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
)

// RevealWeight drives the fetch, decrypt, verify, reconcile sequence for an
// existing proposal. Decryption is two-phase: the engine produces clear values
// with a proof, then this use case submits the verification transaction itself.
type RevealWeight struct {
	gate    *SessionGate
	engine  EncryptionEngine
	reader  LedgerReader
	writers WriteAccess
	refresh *RefreshProposals
	session *Session
	status  *StatusBoard
	log     *slog.Logger

	inflight *keyedMutex
}

// NewRevealWeight creates a new reveal weight use case
func NewRevealWeight(
	gate *SessionGate,
	engine EncryptionEngine,
	reader LedgerReader,
	writers WriteAccess,
	refresh *RefreshProposals,
	session *Session,
	status *StatusBoard,
	log *slog.Logger,
) *RevealWeight {
	return &RevealWeight{
		gate:     gate,
		engine:   engine,
		reader:   reader,
		writers:  writers,
		refresh:  refresh,
		session:  session,
		status:   status,
		log:      log,
		inflight: newKeyedMutex(),
	}
}

// RevealResult contains the outcome of a reveal
type RevealResult struct {
	ExternalID string
	// Weight is nil when the proposal was verified concurrently by someone else
	Weight          *uint64
	AlreadyVerified bool
	TxHash          common.Hash
}

// Run reveals the weight of the proposal with the given external id
func (uc *RevealWeight) Run(ctx context.Context, externalID string) (*RevealResult, error) {
	if err := uc.gate.RequireReady("reveal weight"); err != nil {
		uc.status.Fail(ctx, StageVerifying, preconditionMessage(err))
		return nil, err
	}

	// a second reveal of the same proposal waits here and then sees it verified
	unlock := uc.inflight.Lock(externalID)
	defer unlock()

	result, err := uc.reveal(ctx, externalID)
	if err == nil {
		return result, nil
	}

	wf := domain.ClassifyRemoteError("reveal weight", err)
	if wf.Kind == domain.KindBenignRace {
		uc.log.Info("proposal verified concurrently", "external_id", externalID)
		uc.status.Success(ctx, StageDone, "Data is already verified on-chain")
		if _, err := uc.refresh.Run(ctx, RefreshOptions{}); err != nil {
			uc.log.Warn("refresh after concurrent verification failed", "external_id", externalID, "error", err)
		}
		return &RevealResult{ExternalID: externalID, AlreadyVerified: true}, nil
	}

	uc.log.Error("reveal failed", "external_id", externalID, "kind", wf.Kind, "error", err)
	uc.status.Fail(ctx, StageDone, "Decryption failed: "+domain.RootMessage(wf))
	return nil, wf
}

func (uc *RevealWeight) reveal(ctx context.Context, externalID string) (*RevealResult, error) {
	// always ledger-fresh: the cached record may carry a stale isVerified
	proposal, err := uc.reader.GetProposal(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch proposal %s: %w", externalID, err)
	}

	if proposal.IsVerified {
		weight := proposal.VerifiedWeight
		uc.status.Success(ctx, StageDone, "Data already verified on-chain")
		return &RevealResult{ExternalID: externalID, Weight: &weight, AlreadyVerified: true}, nil
	}

	writer, err := uc.writers.Writer(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get contract with signer: %w", err)
	}

	handle, err := uc.reader.EncryptedWeightHandle(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch encrypted value handle: %w", err)
	}

	uc.status.Pending(ctx, StageVerifying, "Verifying decryption on-chain...")

	contract := uc.reader.ContractAddress()
	decrypted, err := uc.engine.RequestDecryption(ctx, []models.Handle{handle}, contract)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	clear, ok := decrypted.ClearValues[handle]
	if !ok || clear == nil {
		return nil, fmt.Errorf("decryption result has no clear value for handle %s", handle.Hex())
	}
	if !clear.IsUint64() {
		return nil, fmt.Errorf("clear value %s out of range", clear.String())
	}

	tx, err := writer.SubmitVerifiedDecryption(ctx, externalID, decrypted.EncodedClearValues, decrypted.Proof)
	if err != nil {
		return nil, fmt.Errorf("failed to submit verification: %w", err)
	}
	if err := tx.AwaitFinality(ctx); err != nil {
		return nil, fmt.Errorf("verification transaction %s failed: %w", tx.Hash().Hex(), err)
	}

	weight := clear.Uint64()
	if _, err := uc.refresh.Run(ctx, RefreshOptions{}); err != nil {
		uc.log.Warn("refresh after verification failed", "external_id", externalID, "error", err)
	}
	uc.session.Record(fmt.Sprintf("Decrypted vote data: %d", weight))
	uc.status.Success(ctx, StageDone, "Data decrypted and verified successfully!")

	uc.log.Info("weight revealed", "external_id", externalID, "tx", tx.Hash().Hex())
	return &RevealResult{ExternalID: externalID, Weight: &weight, TxHash: tx.Hash()}, nil
}
