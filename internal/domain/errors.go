package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested proposal doesn't exist on the ledger
	ErrNotFound = errors.New("not found")

	// ErrNotConnected is returned when no wallet session is connected
	ErrNotConnected = errors.New("wallet not connected")

	// ErrEngineNotReady is returned while the encryption engine is still initializing
	ErrEngineNotReady = errors.New("encryption engine not ready")

	// ErrMissingField is returned when a required input is absent or malformed
	ErrMissingField = errors.New("missing required field")

	// ErrNoSigner is returned when write access to the ledger cannot be obtained
	ErrNoSigner = errors.New("no signer available")

	// ErrAlreadyVerified is returned when a proposal was verified by someone else first
	ErrAlreadyVerified = errors.New("data already verified")

	// ErrInvalidConfig is returned when runtime configuration is malformed
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ErrorKind classifies workflow failures
type ErrorKind string

const (
	KindPreconditionUnmet ErrorKind = "precondition_unmet"
	KindRemoteCallFailed  ErrorKind = "remote_call_failed"
	KindUserCancelled     ErrorKind = "user_cancelled"
	KindBenignRace        ErrorKind = "benign_race"
)

// WorkflowError wraps a failure of one workflow step
type WorkflowError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *WorkflowError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WorkflowError) Unwrap() error {
	return e.Err
}

// Precondition returns a PreconditionUnmet error
func Precondition(op string, err error) *WorkflowError {
	return &WorkflowError{Kind: KindPreconditionUnmet, Op: op, Err: err}
}

// KindOf returns the kind of a workflow error, or KindRemoteCallFailed for
// anything unclassified.
func KindOf(err error) ErrorKind {
	var wf *WorkflowError
	if errors.As(err, &wf) {
		return wf.Kind
	}
	return KindRemoteCallFailed
}

// IsBenign reports whether err is a benign race rather than a fault
func IsBenign(err error) bool {
	return err != nil && KindOf(err) == KindBenignRace
}

var userRejectionMarkers = []string{
	"user rejected",
	"user denied",
	"rejected by user",
}

var alreadyVerifiedMarkers = []string{
	"already verified",
}

// ClassifyRemoteError maps a failure of a remote call onto the workflow error taxonomy.
// Remote collaborators only expose message text, so classification is by content.
func ClassifyRemoteError(op string, err error) *WorkflowError {
	if err == nil {
		return nil
	}
	var wf *WorkflowError
	if errors.As(err, &wf) {
		return wf
	}
	if errors.Is(err, ErrAlreadyVerified) {
		return &WorkflowError{Kind: KindBenignRace, Op: op, Err: err}
	}
	msg := strings.ToLower(err.Error())
	for _, m := range userRejectionMarkers {
		if strings.Contains(msg, m) {
			return &WorkflowError{Kind: KindUserCancelled, Op: op, Err: err}
		}
	}
	for _, m := range alreadyVerifiedMarkers {
		if strings.Contains(msg, m) {
			return &WorkflowError{Kind: KindBenignRace, Op: op, Err: err}
		}
	}
	return &WorkflowError{Kind: KindRemoteCallFailed, Op: op, Err: err}
}

// RootMessage returns the innermost error message, which is what gets surfaced to users
func RootMessage(err error) string {
	if err == nil {
		return "Unknown error"
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Unknown error"
}
