package usecase

import (
	"context"
	"log/slog"
)

// CheckAvailability probes the voting contract for liveness
type CheckAvailability struct {
	reader  LedgerReader
	session *Session
	status  *StatusBoard
	log     *slog.Logger
}

// NewCheckAvailability creates a new availability check use case
func NewCheckAvailability(reader LedgerReader, session *Session, status *StatusBoard, log *slog.Logger) *CheckAvailability {
	return &CheckAvailability{reader: reader, session: session, status: status, log: log}
}

// Run calls the contract's side-effect free liveness probe
func (uc *CheckAvailability) Run(ctx context.Context) (bool, error) {
	uc.status.Pending(ctx, StageChecking, "Checking contract availability...")

	available, err := uc.reader.IsAvailable(ctx)
	if err != nil || !available {
		if err != nil {
			uc.log.Error("availability check failed", "error", err)
		}
		uc.status.Fail(ctx, StageDone, "Contract call failed")
		return false, err
	}

	uc.session.Record("Checked contract availability: Available")
	uc.status.Success(ctx, StageDone, "Contract is available and responsive!")
	return true, nil
}
