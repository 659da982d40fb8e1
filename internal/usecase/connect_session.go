package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/weightvote/weightvote-cli/internal/domain"
)

// ConnectSession opens the wallet session and performs the initial load once
// the gate reports Ready
type ConnectSession struct {
	wallet  SessionWallet
	gate    *SessionGate
	reader  LedgerReader
	refresh *RefreshProposals
	session *Session
	log     *slog.Logger

	startOnce sync.Once
	stop      func()

	mu      sync.Mutex
	initial *RefreshResult
}

// NewConnectSession creates the use case and registers the initial load with the gate
func NewConnectSession(
	wallet SessionWallet,
	gate *SessionGate,
	reader LedgerReader,
	refresh *RefreshProposals,
	session *Session,
	log *slog.Logger,
) *ConnectSession {
	uc := &ConnectSession{
		wallet:  wallet,
		gate:    gate,
		reader:  reader,
		refresh: refresh,
		session: session,
		log:     log,
	}
	gate.OnReady(uc.load)
	return uc
}

// Run connects the wallet and returns the result of the initial load. A load
// failure is reported through the status and leaves the result nil.
func (uc *ConnectSession) Run(ctx context.Context) (*RefreshResult, error) {
	uc.startOnce.Do(func() {
		uc.stop = uc.gate.Start(ctx)
	})

	if err := uc.wallet.Connect(ctx); err != nil {
		return nil, domain.Precondition("connect", err)
	}

	if uc.gate.State() != GateReady {
		return nil, &domain.WorkflowError{
			Kind: domain.KindRemoteCallFailed,
			Op:   "connect",
			Err:  errors.New("FHEVM initialization failed"),
		}
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.initial, nil
}

// Close disconnects the wallet and stops following connection changes
func (uc *ConnectSession) Close() {
	uc.wallet.Disconnect()
	if uc.stop != nil {
		uc.stop()
	}
}

func (uc *ConnectSession) load(ctx context.Context) {
	uc.session.SetContract(uc.reader.ContractAddress())

	result, err := uc.refresh.Run(ctx, RefreshOptions{ReportStatus: true})
	if err != nil {
		uc.log.Warn("initial load failed", "error", err)
	}

	uc.mu.Lock()
	uc.initial = result
	uc.mu.Unlock()
}
