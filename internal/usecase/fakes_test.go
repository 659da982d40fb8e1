package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/weightvote/weightvote-cli/internal/domain"
	"github.com/weightvote/weightvote-cli/internal/domain/config"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
)

var (
	testContract = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testAccount  = common.HexToAddress("0x2222222222222222222222222222222222222222")
	testStart    = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeWallet is a wallet whose connection state is driven by the test
type fakeWallet struct {
	mu        sync.Mutex
	connected bool
	subs      map[int]func(bool)
	next      int
}

func newFakeWallet() *fakeWallet {
	return &fakeWallet{subs: make(map[int]func(bool))}
}

func (w *fakeWallet) Account() common.Address { return testAccount }

func (w *fakeWallet) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connected
}

func (w *fakeWallet) Subscribe(fn func(bool)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.next
	w.next++
	w.subs[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs, id)
	}
}

func (w *fakeWallet) Connect(ctx context.Context) error {
	w.set(true)
	return nil
}

func (w *fakeWallet) Disconnect() {
	w.set(false)
}

func (w *fakeWallet) set(connected bool) {
	w.mu.Lock()
	w.connected = connected
	subs := make([]func(bool), 0, len(w.subs))
	for _, fn := range w.subs {
		subs = append(subs, fn)
	}
	w.mu.Unlock()
	for _, fn := range subs {
		fn(connected)
	}
}

// MockEngine is a mock implementation of EncryptionEngine
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Initialize(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockEngine) Encrypt(ctx context.Context, contract, caller common.Address, value uint64) (*models.EncryptedInput, error) {
	args := m.Called(ctx, contract, caller, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EncryptedInput), args.Error(1)
}

func (m *MockEngine) RequestDecryption(ctx context.Context, handles []models.Handle, contract common.Address) (*models.DecryptionProof, error) {
	args := m.Called(ctx, handles, contract)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DecryptionProof), args.Error(1)
}

func handleFor(externalID string) models.Handle {
	return models.Handle(common.BytesToHash([]byte(externalID)))
}

func decryptionOf(externalID string, value int64) *models.DecryptionProof {
	h := handleFor(externalID)
	return &models.DecryptionProof{
		ClearValues:        map[models.Handle]*big.Int{h: big.NewInt(value)},
		EncodedClearValues: common.LeftPadBytes(big.NewInt(value).Bytes(), 32),
		Proof:              []byte("kms-signatures"),
	}
}

// fakeTx applies its effect on the fake ledger when awaited
type fakeTx struct {
	hash     common.Hash
	finalize func() error
}

func (t *fakeTx) Hash() common.Hash { return t.hash }

func (t *fakeTx) AwaitFinality(ctx context.Context) error {
	if t.finalize == nil {
		return nil
	}
	return t.finalize()
}

// fakeLedger is an in-memory voting contract implementing the reader, the
// writer and write access ports
type fakeLedger struct {
	mu        sync.Mutex
	order     []string
	records   map[string]*models.Proposal
	getErrors map[string]error
	listErr   error
	signerErr error
	createErr error
	availErr  error
	now       func() int64

	// beforeSubmit runs when a verification is submitted, before it is checked
	beforeSubmit func()
	// listGate, when set, is received from at the start of every ProposalIDs call
	listGate chan struct{}

	listCalls   int
	listActive  int
	listMaxSeen int
	creates     []models.NewProposalTx
	submits     []string
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		records:   make(map[string]*models.Proposal),
		getErrors: make(map[string]error),
		now:       func() int64 { return testStart.Unix() },
	}
}

func (l *fakeLedger) put(p *models.Proposal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.records[p.ExternalID]; !ok {
		l.order = append(l.order, p.ExternalID)
	}
	l.records[p.ExternalID] = p.Clone()
}

func (l *fakeLedger) setVerified(externalID string, weight uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec := l.records[externalID]
	rec.IsVerified = true
	rec.VerifiedWeight = weight
}

func (l *fakeLedger) ContractAddress() common.Address { return testContract }

func (l *fakeLedger) ProposalIDs(ctx context.Context) ([]string, error) {
	l.mu.Lock()
	l.listCalls++
	l.listActive++
	if l.listActive > l.listMaxSeen {
		l.listMaxSeen = l.listActive
	}
	gate := l.listGate
	l.mu.Unlock()

	if gate != nil {
		<-gate
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.listActive--
	if l.listErr != nil {
		return nil, l.listErr
	}
	return append([]string(nil), l.order...), nil
}

func (l *fakeLedger) GetProposal(ctx context.Context, externalID string) (*models.Proposal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.getErrors[externalID]; err != nil {
		return nil, err
	}
	rec, ok := l.records[externalID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec.Clone(), nil
}

func (l *fakeLedger) EncryptedWeightHandle(ctx context.Context, externalID string) (models.Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.records[externalID]; !ok {
		return models.Handle{}, domain.ErrNotFound
	}
	return handleFor(externalID), nil
}

func (l *fakeLedger) IsAvailable(ctx context.Context) (bool, error) {
	if l.availErr != nil {
		return false, l.availErr
	}
	return true, nil
}

func (l *fakeLedger) Writer(ctx context.Context) (LedgerWriter, error) {
	if l.signerErr != nil {
		return nil, l.signerErr
	}
	return l, nil
}

func (l *fakeLedger) CreateProposal(ctx context.Context, tx models.NewProposalTx) (PendingTx, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.creates = append(l.creates, tx)
	if l.createErr != nil {
		return nil, l.createErr
	}
	return &fakeTx{
		hash: common.BytesToHash([]byte("create-" + tx.ExternalID)),
		finalize: func() error {
			l.put(&models.Proposal{
				ExternalID:     tx.ExternalID,
				Title:          tx.Title,
				Description:    tx.Description,
				Creator:        testAccount,
				CreatedAt:      l.now(),
				PublicWeight:   tx.PlaintextWeight,
				SecondaryValue: tx.SecondaryValue,
			})
			return nil
		},
	}, nil
}

func (l *fakeLedger) SubmitVerifiedDecryption(ctx context.Context, externalID string, encoded, proof []byte) (PendingTx, error) {
	if l.beforeSubmit != nil {
		l.beforeSubmit()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.submits = append(l.submits, externalID)
	rec, ok := l.records[externalID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if rec.IsVerified {
		return nil, errors.New("execution reverted: Data already verified")
	}
	weight := new(big.Int).SetBytes(encoded).Uint64()
	return &fakeTx{
		hash: common.BytesToHash([]byte("verify-" + externalID)),
		finalize: func() error {
			l.setVerified(externalID, weight)
			return nil
		},
	}, nil
}

func (l *fakeLedger) submitCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.submits)
}

func (l *fakeLedger) listCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.listCalls
}

// recordingSink collects progress events
type recordingSink struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (s *recordingSink) OnProgress(ctx context.Context, event ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) Info(string)  {}
func (s *recordingSink) Error(string) {}

func (s *recordingSink) all() []ProgressEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ProgressEvent(nil), s.events...)
}

// published returns non-clear events
func (s *recordingSink) published() []ProgressEvent {
	var out []ProgressEvent
	for _, e := range s.all() {
		if !e.Cleared {
			out = append(out, e)
		}
	}
	return out
}

func (s *recordingSink) last() ProgressEvent {
	pub := s.published()
	if len(pub) == 0 {
		return ProgressEvent{}
	}
	return pub[len(pub)-1]
}

func (s *recordingSink) count(phase models.TxPhase) int {
	n := 0
	for _, e := range s.published() {
		if e.Phase == phase {
			n++
		}
	}
	return n
}

func testConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		Network: &config.Network{
			Name:            "local",
			ChainID:         31337,
			RPCURL:          "http://127.0.0.1:8545",
			ContractAddress: testContract,
		},
		Relayer: &config.Relayer{URL: "http://127.0.0.1:3000"},
		UI:      config.DefaultUISettings(),
	}
}

type harness struct {
	clock   *clock.Mock
	cfg     *config.RuntimeConfig
	wallet  *fakeWallet
	engine  *MockEngine
	ledger  *fakeLedger
	sink    *recordingSink
	status  *StatusBoard
	history *History
	session *Session
	gate    *SessionGate
	refresh *RefreshProposals
	create  *CreateProposal
	reveal  *RevealWeight
	check   *CheckAvailability
	opener  *ConnectSession
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock:  clock.NewMock(),
		cfg:    testConfig(),
		wallet: newFakeWallet(),
		engine: new(MockEngine),
		ledger: newFakeLedger(),
		sink:   &recordingSink{},
	}
	h.clock.Set(testStart)
	log := discardLogger()

	h.status = NewStatusBoard(h.clock, h.cfg, h.sink)
	h.history = NewHistory(h.clock, h.cfg)
	h.session = NewSession(h.status, h.history, log)
	h.gate = NewSessionGate(h.wallet, h.engine, h.status, h.session, log)
	h.refresh = NewRefreshProposals(h.ledger, h.gate, h.session, h.status, h.clock, h.cfg, log)
	ids := NewExternalIDGenerator(h.clock)
	h.create = NewCreateProposal(h.gate, h.wallet, h.engine, h.ledger, h.ledger, h.refresh, h.session, h.status, ids, log)
	h.reveal = NewRevealWeight(h.gate, h.engine, h.ledger, h.ledger, h.refresh, h.session, h.status, log)
	h.check = NewCheckAvailability(h.ledger, h.session, h.status, log)
	return h
}

// newConnectedHarness also wires the initial load on Ready
func newConnectedHarness(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t)
	h.opener = NewConnectSession(h.wallet, h.gate, h.ledger, h.refresh, h.session, discardLogger())
	t.Cleanup(h.opener.Close)
	return h
}

// connect brings the gate to Ready with a succeeding engine
func (h *harness) connect(t *testing.T) {
	t.Helper()
	h.engine.On("Initialize", mock.Anything).Return(nil)
	stop := h.gate.Start(context.Background())
	t.Cleanup(stop)
	h.wallet.set(true)
	require.Equal(t, GateReady, h.gate.State())
}

func seedProposals(l *fakeLedger, n int) []string {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := "vote-" + big.NewInt(int64(1700000000000+i)).String()
		l.put(&models.Proposal{
			ExternalID:   id,
			Title:        "Proposal " + id,
			Creator:      testAccount,
			CreatedAt:    testStart.Unix() - int64(i)*86400,
			PublicWeight: uint64(10 * (i + 1)),
		})
		ids = append(ids, id)
	}
	return ids
}
