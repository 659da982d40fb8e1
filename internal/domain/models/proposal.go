package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ExternalIDPrefix prefixes every proposal key written to the ledger
const ExternalIDPrefix = "vote-"

// Proposal represents a votable item as recorded on the ledger
type Proposal struct {
	// Identification
	ExternalID string `json:"externalId"` // e.g., "vote-1718000000000"

	// Immutable details set at creation
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Creator     common.Address `json:"creator"`
	CreatedAt   int64          `json:"createdAt"` // seconds since epoch, set by the ledger

	// Plaintext mirrors (display only, not authoritative)
	PublicWeight   uint64 `json:"publicWeight"`
	SecondaryValue uint64 `json:"secondaryValue"`

	// Verification state
	IsVerified     bool   `json:"isVerified"`
	VerifiedWeight uint64 `json:"verifiedWeight,omitempty"` // only meaningful when IsVerified
}

// CreatedTime returns the creation time as a time.Time
func (p *Proposal) CreatedTime() time.Time {
	return time.Unix(p.CreatedAt, 0)
}

// Weight returns the best known weight: the verified value once revealed,
// the public mirror otherwise.
func (p *Proposal) Weight() uint64 {
	if p.IsVerified {
		return p.VerifiedWeight
	}
	return p.PublicWeight
}

// Clone returns a copy of the proposal
func (p *Proposal) Clone() *Proposal {
	c := *p
	return &c
}

// NewProposalTx carries the arguments of a proposal creation transaction
type NewProposalTx struct {
	ExternalID       string
	Title            string
	Description      string
	EncryptedPayload Handle
	CorrectnessProof []byte
	PlaintextWeight  uint64
	SecondaryValue   uint64
}
