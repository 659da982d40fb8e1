package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/weightvote/weightvote-cli/internal/domain/config"
	"github.com/weightvote/weightvote-cli/internal/domain/models"
)

// StatusBoard is the single shared transaction status slot. Every publish gets a
// strictly increasing sequence number; a terminal status clears itself after a
// delay unless a newer status supersedes it first.
type StatusBoard struct {
	clock        clock.Clock
	sink         ProgressSink
	successDelay time.Duration
	errorDelay   time.Duration

	mu        sync.Mutex
	seq       uint64
	current   *ProgressEvent
	clearTask *clock.Timer
	observers map[int]func(ProgressEvent)
	nextObs   int
}

// NewStatusBoard creates a status board
func NewStatusBoard(clk clock.Clock, cfg *config.RuntimeConfig, sink ProgressSink) *StatusBoard {
	if sink == nil {
		sink = NopProgress{}
	}
	return &StatusBoard{
		clock:        clk,
		sink:         sink,
		successDelay: cfg.UI.SuccessClearDelay,
		errorDelay:   cfg.UI.ErrorClearDelay,
		observers:    make(map[int]func(ProgressEvent)),
	}
}

// Observe registers fn for every status event and returns a cancel func.
// Observers may receive events out of order across goroutines and must
// discard events whose Seq is older than the last one they applied.
func (b *StatusBoard) Observe(fn func(ProgressEvent)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextObs
	b.nextObs++
	b.observers[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.observers, id)
	}
}

// Pending publishes an in-flight status
func (b *StatusBoard) Pending(ctx context.Context, stage, message string) ProgressEvent {
	return b.publish(ctx, models.TxPhasePending, stage, message)
}

// Success publishes a success status that clears after the success delay
func (b *StatusBoard) Success(ctx context.Context, stage, message string) ProgressEvent {
	return b.publish(ctx, models.TxPhaseSuccess, stage, message)
}

// Fail publishes an error status that clears after the error delay
func (b *StatusBoard) Fail(ctx context.Context, stage, message string) ProgressEvent {
	return b.publish(ctx, models.TxPhaseError, stage, message)
}

// Current returns the displayed status, if any
func (b *StatusBoard) Current() (ProgressEvent, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return ProgressEvent{}, false
	}
	return *b.current, true
}

func (b *StatusBoard) publish(ctx context.Context, phase models.TxPhase, stage, message string) ProgressEvent {
	b.mu.Lock()
	b.seq++
	event := ProgressEvent{
		Seq:     b.seq,
		Phase:   phase,
		Stage:   stage,
		Message: message,
		Spinner: phase == models.TxPhasePending,
	}
	if b.clearTask != nil {
		b.clearTask.Stop()
		b.clearTask = nil
	}
	b.current = &event
	if phase.IsTerminal() {
		delay := b.successDelay
		if phase == models.TxPhaseError {
			delay = b.errorDelay
		}
		seq := event.Seq
		b.clearTask = b.clock.AfterFunc(delay, func() { b.clear(seq) })
	}
	observers := b.snapshotObservers()
	b.mu.Unlock()

	b.emit(ctx, event, observers)
	return event
}

// clear drops the displayed status only if seq is still the latest
func (b *StatusBoard) clear(seq uint64) {
	b.mu.Lock()
	if b.current == nil || b.current.Seq != seq {
		b.mu.Unlock()
		return
	}
	event := ProgressEvent{Seq: seq, Phase: b.current.Phase, Stage: b.current.Stage, Cleared: true}
	b.current = nil
	b.clearTask = nil
	observers := b.snapshotObservers()
	b.mu.Unlock()

	b.emit(context.Background(), event, observers)
}

func (b *StatusBoard) snapshotObservers() []func(ProgressEvent) {
	out := make([]func(ProgressEvent), 0, len(b.observers))
	for i := 0; i < b.nextObs; i++ {
		if fn, ok := b.observers[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func (b *StatusBoard) emit(ctx context.Context, event ProgressEvent, observers []func(ProgressEvent)) {
	b.sink.OnProgress(ctx, event)
	for _, fn := range observers {
		fn(event)
	}
}
