package domain

import (
	"context"
	"time"
)

// TransactionRepository mirrors the last reconciled snapshot locally so reads
// survive authoritative-store outages.
type TransactionRepository interface {
	SaveSnapshot(ctx context.Context, txs []*Transaction, observedAt time.Time) error
	GetByID(ctx context.Context, txID string) (*Transaction, error)
	List(ctx context.Context, userID string) ([]*Transaction, error)
	// LastSnapshot returns the mirrored records as degraded candidates for
	// fallback collection, along with the snapshot time.
	LastSnapshot(ctx context.Context) ([]CandidateRecord, time.Time, error)
}

// AuditRepository stores the append-only verification history.
type AuditRepository interface {
	Append(ctx context.Context, entry VerificationEntry) error
	ListByTransaction(ctx context.Context, txID string) ([]VerificationEntry, error)
}
