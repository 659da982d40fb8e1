package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/weightvote/weightvote-cli/internal/domain"
)

const msgConnectWallet = "Please connect wallet first"

// SessionGate tracks wallet connection and encryption engine readiness and
// gates every other operation on them.
type SessionGate struct {
	wallet  Wallet
	engine  EncryptionEngine
	status  *StatusBoard
	session *Session
	log     *slog.Logger

	mu      sync.Mutex
	state   GateState
	gen     uint64 // bumped by every connect and disconnect
	onReady []func(ctx context.Context)
}

// NewSessionGate creates a gate in the Disconnected state
func NewSessionGate(wallet Wallet, engine EncryptionEngine, status *StatusBoard, session *Session, log *slog.Logger) *SessionGate {
	return &SessionGate{
		wallet:  wallet,
		engine:  engine,
		status:  status,
		session: session,
		log:     log,
	}
}

// OnReady registers fn to run every time the gate becomes Ready
func (g *SessionGate) OnReady(fn func(ctx context.Context)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onReady = append(g.onReady, fn)
}

// Start subscribes to wallet connection changes and processes the current state.
// The returned func stops the subscription.
func (g *SessionGate) Start(ctx context.Context) func() {
	unsubscribe := g.wallet.Subscribe(func(connected bool) {
		g.HandleConnectionChange(ctx, connected)
	})
	if g.wallet.Connected() {
		g.HandleConnectionChange(ctx, true)
	}
	return unsubscribe
}

// State returns the current gate state
func (g *SessionGate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// HandleConnectionChange drives the gate state machine. A connection starts
// engine initialization at most once; a failed initialization falls back to
// Disconnected so the next connection change retries it. Only the latest
// initialization may complete the gate.
func (g *SessionGate) HandleConnectionChange(ctx context.Context, connected bool) {
	g.mu.Lock()
	if !connected {
		g.state = GateDisconnected
		g.gen++
		g.mu.Unlock()
		g.session.setGate(GateDisconnected, g.wallet.Account())
		g.log.Debug("wallet disconnected")
		return
	}
	if g.state != GateDisconnected {
		g.mu.Unlock()
		return
	}
	g.state = GateConnectingEncryption
	g.gen++
	gen := g.gen
	g.mu.Unlock()

	account := g.wallet.Account()
	g.session.setGate(GateConnectingEncryption, account)
	g.log.Debug("wallet connected, initializing encryption engine", "account", account.Hex())

	err := g.engine.Initialize(ctx)

	g.mu.Lock()
	if gen != g.gen {
		g.mu.Unlock()
		g.log.Debug("superseded engine initialization ignored", "error", err)
		return
	}
	switch {
	case err != nil:
		g.state = GateDisconnected
	case !g.wallet.Connected():
		// disconnected while initializing
		g.state = GateDisconnected
	default:
		g.state = GateReady
	}
	state := g.state
	hooks := append([]func(context.Context){}, g.onReady...)
	g.mu.Unlock()

	g.session.setGate(state, account)

	if err != nil {
		g.log.Error("encryption engine initialization failed", "error", err)
		g.status.Fail(ctx, StageInitializing, "FHEVM initialization failed")
		return
	}
	if state != GateReady {
		return
	}
	g.log.Info("session ready", "account", account.Hex())
	for _, hook := range hooks {
		hook(ctx)
	}
}

// RequireConnected rejects operations while no wallet is connected
func (g *SessionGate) RequireConnected(op string) error {
	if g.State() == GateDisconnected && !g.wallet.Connected() {
		return domain.Precondition(op, domain.ErrNotConnected)
	}
	return nil
}

// RequireReady rejects operations until the wallet is connected and the engine is ready
func (g *SessionGate) RequireReady(op string) error {
	switch g.State() {
	case GateReady:
		return nil
	case GateConnectingEncryption:
		return domain.Precondition(op, domain.ErrEngineNotReady)
	default:
		return domain.Precondition(op, domain.ErrNotConnected)
	}
}

// preconditionMessage maps a precondition failure to the message shown to users
func preconditionMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrNotConnected):
		return msgConnectWallet
	case errors.Is(err, domain.ErrEngineNotReady):
		return "Encryption engine is still initializing"
	default:
		return domain.RootMessage(err)
	}
}
