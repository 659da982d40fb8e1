package models

import "time"

// TxPhase represents the phase of the shared transaction status
type TxPhase string

const (
	TxPhasePending TxPhase = "pending"
	TxPhaseSuccess TxPhase = "success"
	TxPhaseError   TxPhase = "error"
)

// IsTerminal reports whether the phase self-clears after a delay
func (p TxPhase) IsTerminal() bool {
	return p == TxPhaseSuccess || p == TxPhaseError
}

// HistoryEntry is one completed-action record in the operation history
type HistoryEntry struct {
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

func (e HistoryEntry) String() string {
	return e.At.Format("15:04:05") + ": " + e.Text
}

// Stats holds aggregate statistics over the current proposal set
type Stats struct {
	TotalVotes     int     `json:"totalVotes"`
	VerifiedVotes  int     `json:"verifiedVotes"`
	AvgWeight      float64 `json:"avgWeight"`
	RecentActivity int     `json:"recentActivity"`
}
