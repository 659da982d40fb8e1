package usecase

import (
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
)

// GateState is the state of the session gate
type GateState int

const (
	GateDisconnected GateState = iota
	GateConnectingEncryption
	GateReady
)

func (s GateState) String() string {
	switch s {
	case GateDisconnected:
		return "disconnected"
	case GateConnectingEncryption:
		return "connecting-encryption"
	case GateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// CreateForm is the state of the proposal creation form
type CreateForm struct {
	Open        bool
	Submitting  bool
	Title       string
	Description string
	Weight      string
}

// Snapshot is an immutable copy of the session state
type Snapshot struct {
	Gate       GateState
	Account    common.Address
	Contract   common.Address
	Proposals  []*models.Proposal
	Stats      models.Stats
	History    []models.HistoryEntry
	Status     *ProgressEvent
	Refreshing bool
	Form       CreateForm
}

// Proposal returns the loaded proposal with the given id
func (s Snapshot) Proposal(externalID string) (*models.Proposal, bool) {
	for _, p := range s.Proposals {
		if p.ExternalID == externalID {
			return p, true
		}
	}
	return nil, false
}

// Session is the explicit client state. Use cases mutate it; presentation
// layers subscribe to it. It holds nothing that outlives the process.
type Session struct {
	history *History
	log     *slog.Logger

	mu          sync.Mutex
	gate        GateState
	account     common.Address
	contract    common.Address
	proposals   []*models.Proposal
	stats       models.Stats
	status      *ProgressEvent
	lastSeq     uint64
	refreshing  bool
	form        CreateForm
	subscribers map[int]func(Snapshot)
	nextSub     int
}

// NewSession creates a session wired to the shared status board and history
func NewSession(board *StatusBoard, history *History, log *slog.Logger) *Session {
	s := &Session{
		history:     history,
		log:         log,
		subscribers: make(map[int]func(Snapshot)),
	}
	board.Observe(s.applyStatus)
	return s
}

// Subscribe registers fn to be called with a fresh snapshot after every change
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Snapshot returns a deep copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	proposals := make([]*models.Proposal, len(s.proposals))
	for i, p := range s.proposals {
		proposals[i] = p.Clone()
	}
	var status *ProgressEvent
	if s.status != nil {
		st := *s.status
		status = &st
	}
	return Snapshot{
		Gate:       s.gate,
		Account:    s.account,
		Contract:   s.contract,
		Proposals:  proposals,
		Stats:      s.stats,
		History:    s.history.Entries(),
		Status:     status,
		Refreshing: s.refreshing,
		Form:       s.form,
	}
}

// update applies fn under the lock and notifies subscribers
func (s *Session) update(fn func()) {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(s.subscribers))
	for i := 0; i < s.nextSub; i++ {
		if sub, ok := s.subscribers[i]; ok {
			subs = append(subs, sub)
		}
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

func (s *Session) applyStatus(event ProgressEvent) {
	s.update(func() {
		if event.Seq < s.lastSeq {
			return
		}
		s.lastSeq = event.Seq
		if event.Cleared {
			s.status = nil
			return
		}
		s.status = &event
	})
}

func (s *Session) setGate(state GateState, account common.Address) {
	s.update(func() {
		s.gate = state
		s.account = account
	})
}

// SetContract records the voting contract address in use
func (s *Session) SetContract(addr common.Address) {
	s.update(func() { s.contract = addr })
}

func (s *Session) setRefreshing(v bool) {
	s.update(func() { s.refreshing = v })
}

// Record appends an entry to the operation history
func (s *Session) Record(text string) models.HistoryEntry {
	var entry models.HistoryEntry
	s.update(func() { entry = s.history.Add(text) })
	return entry
}

// replaceProposals swaps in a freshly loaded proposal set and returns the set that
// was stored. A proposal already known as verified never regresses to unverified.
func (s *Session) replaceProposals(loaded []*models.Proposal, stats func([]*models.Proposal) models.Stats) []*models.Proposal {
	var stored []*models.Proposal
	s.update(func() {
		known := make(map[string]*models.Proposal, len(s.proposals))
		for _, p := range s.proposals {
			known[p.ExternalID] = p
		}
		merged := make([]*models.Proposal, 0, len(loaded))
		for _, p := range loaded {
			if prev, ok := known[p.ExternalID]; ok && prev.IsVerified && !p.IsVerified {
				s.log.Warn("ledger reported verified proposal as unverified, keeping verified record",
					"external_id", p.ExternalID)
				p = prev.Clone()
			}
			merged = append(merged, p)
		}
		s.proposals = merged
		s.stats = stats(merged)
		stored = make([]*models.Proposal, len(merged))
		for i, p := range merged {
			stored[i] = p.Clone()
		}
	})
	return stored
}

// OpenForm opens the creation form
func (s *Session) OpenForm() {
	s.update(func() { s.form.Open = true })
}

// UpdateForm replaces the form fields
func (s *Session) UpdateForm(title, description, weight string) {
	s.update(func() {
		s.form.Title = title
		s.form.Description = description
		s.form.Weight = weight
	})
}

func (s *Session) setSubmitting(v bool) {
	s.update(func() { s.form.Submitting = v })
}

// closeForm closes the creation form and resets its fields
func (s *Session) closeForm() {
	s.update(func() { s.form = CreateForm{} })
}
