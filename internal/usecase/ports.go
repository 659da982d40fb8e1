package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
)

// Wallet exposes the connected account and its connection state
type Wallet interface {
	Account() common.Address
	Connected() bool
	// Subscribe registers fn for connection changes and returns an unsubscribe func
	Subscribe(fn func(connected bool)) func()
}

// SessionWallet is a wallet whose session can be opened and closed
type SessionWallet interface {
	Wallet
	Connect(ctx context.Context) error
	Disconnect()
}

// EncryptionEngine is the homomorphic-encryption coprocessor client
type EncryptionEngine interface {
	// Initialize is idempotent
	Initialize(ctx context.Context) error
	Encrypt(ctx context.Context, contract, caller common.Address, value uint64) (*models.EncryptedInput, error)
	// RequestDecryption performs the off-chain half of decryption-verification and
	// returns clear values with a proof the ledger can check.
	RequestDecryption(ctx context.Context, handles []models.Handle, contract common.Address) (*models.DecryptionProof, error)
}

// LedgerReader reads proposal state from the voting contract
type LedgerReader interface {
	ContractAddress() common.Address
	ProposalIDs(ctx context.Context) ([]string, error)
	GetProposal(ctx context.Context, externalID string) (*models.Proposal, error)
	EncryptedWeightHandle(ctx context.Context, externalID string) (models.Handle, error)
	IsAvailable(ctx context.Context) (bool, error)
}

// PendingTx is a submitted transaction that can be awaited until final
type PendingTx interface {
	Hash() common.Hash
	AwaitFinality(ctx context.Context) error
}

// LedgerWriter submits mutating transactions to the voting contract
type LedgerWriter interface {
	CreateProposal(ctx context.Context, tx models.NewProposalTx) (PendingTx, error)
	SubmitVerifiedDecryption(ctx context.Context, externalID string, encodedClearValues, proof []byte) (PendingTx, error)
}

// WriteAccess hands out a LedgerWriter bound to the session signer
type WriteAccess interface {
	// Writer fails with domain.ErrNoSigner when no signer is available
	Writer(ctx context.Context) (LedgerWriter, error)
}

// Progress tracking interfaces

// ProgressEvent represents one transition of the shared transaction status
type ProgressEvent struct {
	Seq     uint64
	Phase   models.TxPhase
	Stage   string
	Message string
	Spinner bool
	// Cleared marks the self-clearing of the status with the same Seq
	Cleared bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Stages of the shared transaction status
const (
	StageInitializing = "initializing"
	StageLoading      = "loading"
	StageEncrypting   = "encrypting"
	StageConfirming   = "confirming"
	StageVerifying    = "verifying"
	StageChecking     = "checking"
	StageDone         = "done"
)
