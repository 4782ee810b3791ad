package domain

import "time"

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusHold      TransactionStatus = "HOLD"
	StatusPaid      TransactionStatus = "PAID"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusCancelled TransactionStatus = "CANCELLED"
	StatusRefunded  TransactionStatus = "REFUNDED"
)

// IsTerminal reports whether the status has no outgoing automatic transitions.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRefunded
}

type Provenance string

const (
	ProvenanceAuthoritative  Provenance = "AUTHORITATIVE"
	ProvenanceCachedCheckout Provenance = "CACHED_CHECKOUT"
	ProvenanceCachedCart     Provenance = "CACHED_CART"
	ProvenanceCachedSession  Provenance = "CACHED_SESSION"
)

// Priority orders provenances for merge tie-breaking. Higher wins.
func (p Provenance) Priority() int {
	switch p {
	case ProvenanceAuthoritative:
		return 4
	case ProvenanceCachedCheckout:
		return 3
	case ProvenanceCachedCart:
		return 2
	case ProvenanceCachedSession:
		return 1
	}
	return 0
}

type VerificationEntry struct {
	ID        string
	TxID      string
	Action    string
	ActorID   string
	Note      string
	Timestamp time.Time
}

// Transaction is the canonical merged record, one per id after reconciliation.
type Transaction struct {
	ID                  string
	UserID              string
	ActivityID          string
	Amount              int64
	Quantity            int
	Status              TransactionStatus
	PaymentProofRef     string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Provenance          Provenance
	NeedsVerification   bool
	AdminNotes          string
	Degraded            bool
	Evidence            ProofEvidence
	VerificationHistory []VerificationEntry
}

// CandidateRecord is an unmerged view of a transaction as seen from one source.
type CandidateRecord struct {
	ID              string
	UserID          string
	ActivityID      string
	Amount          int64
	Quantity        int
	Status          TransactionStatus
	PaymentProofRef string
	ProofUploaded   bool
	NeedsVerification bool

	// Administrative fields, only ever populated by the authoritative store.
	StatusOverride  TransactionStatus
	Processed       bool
	ProcessedAction string
	AdminNotes      string

	CreatedAt  time.Time
	UpdatedAt  time.Time
	Source     Provenance
	ObservedAt time.Time
	Degraded   bool
}
