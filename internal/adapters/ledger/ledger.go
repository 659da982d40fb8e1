package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/weightvote/weightvote-cli/internal/adapters/abi/bindings"
	"github.com/weightvote/weightvote-cli/internal/domain"
	"github.com/weightvote/weightvote-cli/internal/domain/config"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
	"github.com/weightvote/weightvote-cli/internal/usecase"
)

// Backend is the subset of an RPC client the adapter needs
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// Signer hands out transaction options for the session account
type Signer interface {
	TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error)
}

// Adapter reads and writes the voting contract through go-ethereum bindings
type Adapter struct {
	backend       Backend
	signer        Signer
	contract      *bindings.WeightedVote
	instance      *bind.BoundContract
	address       common.Address
	confirmations uint64
	clock         clock.Clock
	log           *slog.Logger

	chainMu  sync.Mutex
	chainID  *big.Int
	chainErr error // sticky only for a mismatch
	expected uint64
}

// Dial connects to the configured RPC endpoint
func Dial(cfg *config.RuntimeConfig) (*ethclient.Client, error) {
	client, err := ethclient.Dial(cfg.Network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	return client, nil
}

// NewAdapter creates a ledger adapter for the configured voting contract
func NewAdapter(backend Backend, signer Signer, cfg *config.RuntimeConfig, clk clock.Clock, log *slog.Logger) *Adapter {
	contract := bindings.NewWeightedVote()
	address := cfg.Network.ContractAddress
	return &Adapter{
		backend:       backend,
		signer:        signer,
		contract:      contract,
		instance:      contract.Instance(backend, address),
		address:       address,
		confirmations: cfg.Network.Confirmations,
		expected:      cfg.Network.ChainID,
		clock:         clk,
		log:           log.With("component", "ledger"),
	}
}

// ContractAddress returns the voting contract address
func (a *Adapter) ContractAddress() common.Address {
	return a.address
}

// ProposalIDs returns every external id in ledger order
func (a *Adapter) ProposalIDs(ctx context.Context) ([]string, error) {
	ids, err := bind.Call(a.instance, &bind.CallOpts{Context: ctx}, a.contract.PackGetAllBusinessIds(), a.contract.UnpackGetAllBusinessIds)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposal ids: %w", err)
	}
	return ids, nil
}

// GetProposal reads one proposal record
func (a *Adapter) GetProposal(ctx context.Context, externalID string) (*models.Proposal, error) {
	out, err := bind.Call(a.instance, &bind.CallOpts{Context: ctx}, a.contract.PackGetBusinessData(externalID), a.contract.UnpackGetBusinessData)
	if err != nil {
		return nil, fmt.Errorf("failed to read proposal %s: %w", externalID, err)
	}
	// unknown ids read back as a zero record
	if out.Creator == (common.Address{}) {
		return nil, fmt.Errorf("proposal %s: %w", externalID, domain.ErrNotFound)
	}
	return &models.Proposal{
		ExternalID:     externalID,
		Title:          out.Name,
		Description:    out.Description,
		Creator:        out.Creator,
		CreatedAt:      bigToInt64(out.Timestamp),
		PublicWeight:   bigToUint64(out.PublicValue1),
		SecondaryValue: bigToUint64(out.PublicValue2),
		IsVerified:     out.IsVerified,
		VerifiedWeight: uint64(out.DecryptedValue),
	}, nil
}

// EncryptedWeightHandle reads the ciphertext handle of a proposal's weight
func (a *Adapter) EncryptedWeightHandle(ctx context.Context, externalID string) (models.Handle, error) {
	raw, err := bind.Call(a.instance, &bind.CallOpts{Context: ctx}, a.contract.PackGetEncryptedValue(externalID), a.contract.UnpackGetEncryptedValue)
	if err != nil {
		return models.Handle{}, fmt.Errorf("failed to read encrypted value of %s: %w", externalID, err)
	}
	return models.Handle(raw), nil
}

// IsAvailable calls the contract's liveness probe
func (a *Adapter) IsAvailable(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	code, err := a.backend.CodeAt(ctx, a.address, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}
	if len(code) == 0 {
		return false, fmt.Errorf("no contract code at %s", a.address.Hex())
	}

	ok, err := bind.Call(a.instance, &bind.CallOpts{Context: ctx}, a.contract.PackIsAvailable(), a.contract.UnpackIsAvailable)
	if err != nil {
		return false, fmt.Errorf("isAvailable call failed: %w", err)
	}
	return ok, nil
}

// Writer returns a writer bound to the session signer
func (a *Adapter) Writer(ctx context.Context) (usecase.LedgerWriter, error) {
	if a.signer == nil {
		return nil, domain.ErrNoSigner
	}
	chainID, err := a.resolveChainID(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := a.signer.TransactOpts(ctx, chainID)
	if err != nil {
		return nil, err
	}
	return &writer{adapter: a, opts: opts}, nil
}

// resolveChainID fetches the chain id and checks it against the configured one.
// A matching id is cached; a failed lookup is retried on the next call.
func (a *Adapter) resolveChainID(ctx context.Context) (*big.Int, error) {
	a.chainMu.Lock()
	defer a.chainMu.Unlock()
	if a.chainID != nil || a.chainErr != nil {
		return a.chainID, a.chainErr
	}

	id, err := a.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if a.expected != 0 && id.Uint64() != a.expected {
		a.chainErr = fmt.Errorf("%w: chain ID mismatch: expected %d, got %d", domain.ErrInvalidConfig, a.expected, id.Uint64())
		return nil, a.chainErr
	}
	a.chainID = id
	return id, nil
}

type writer struct {
	adapter *Adapter
	opts    *bind.TransactOpts
}

func (w *writer) CreateProposal(ctx context.Context, tx models.NewProposalTx) (usecase.PendingTx, error) {
	input, err := w.adapter.contract.TryPackCreateBusinessData(
		tx.ExternalID,
		tx.Title,
		tx.EncryptedPayload,
		tx.CorrectnessProof,
		new(big.Int).SetUint64(tx.PlaintextWeight),
		new(big.Int).SetUint64(tx.SecondaryValue),
		tx.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to pack createBusinessData: %w", err)
	}
	return w.transact(ctx, "createBusinessData", input)
}

func (w *writer) SubmitVerifiedDecryption(ctx context.Context, externalID string, encodedClearValues, proof []byte) (usecase.PendingTx, error) {
	input, err := w.adapter.contract.TryPackVerifyDecryption(externalID, encodedClearValues, proof)
	if err != nil {
		return nil, fmt.Errorf("failed to pack verifyDecryption: %w", err)
	}
	return w.transact(ctx, "verifyDecryption", input)
}

func (w *writer) transact(ctx context.Context, method string, input []byte) (usecase.PendingTx, error) {
	opts := *w.opts
	opts.Context = ctx

	tx, err := bind.Transact(w.adapter.instance, &opts, input)
	if err != nil {
		return nil, err
	}
	w.adapter.log.Debug("transaction sent", "method", method, "tx", tx.Hash().Hex(), "nonce", tx.Nonce())
	return &pendingTx{adapter: w.adapter, hash: tx.Hash()}, nil
}

// pendingTx waits for inclusion and the configured number of confirmations
type pendingTx struct {
	adapter *Adapter
	hash    common.Hash
}

func (p *pendingTx) Hash() common.Hash {
	return p.hash
}

func (p *pendingTx) AwaitFinality(ctx context.Context) error {
	receipt, err := bind.WaitMined(ctx, p.adapter.backend, p.hash)
	if err != nil {
		return fmt.Errorf("failed waiting for receipt: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return errors.New("transaction reverted")
	}
	if p.adapter.confirmations <= 1 || receipt.BlockNumber == nil {
		return nil
	}
	return p.waitConfirmations(ctx, receipt.BlockNumber.Uint64())
}

func (p *pendingTx) waitConfirmations(ctx context.Context, included uint64) error {
	target := included + p.adapter.confirmations - 1
	ticker := p.adapter.clock.Ticker(time.Second)
	defer ticker.Stop()

	for {
		head, err := p.adapter.backend.BlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to get block number: %w", err)
		}
		if head >= target {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func bigToUint64(v *big.Int) uint64 {
	if v == nil || !v.IsUint64() {
		return 0
	}
	return v.Uint64()
}

func bigToInt64(v *big.Int) int64 {
	if v == nil || !v.IsInt64() {
		return 0
	}
	return v.Int64()
}

// Ensure the adapter implements the interfaces
var (
	_ usecase.LedgerReader = (*Adapter)(nil)
	_ usecase.WriteAccess  = (*Adapter)(nil)
	_ Backend              = (*ethclient.Client)(nil)
)
