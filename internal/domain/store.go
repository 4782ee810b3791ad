package domain

import "context"

type ListScope string

const (
	ScopeMine ListScope = "mine"
	ScopeAll  ListScope = "all"
)

// ProofRegistry parks proof blobs locally when the write-through to the
// authoritative store fails. Entries surface as matched-cache evidence on the
// next reconciliation run.
type ProofRegistry interface {
	PutLocal(ctx context.Context, txID, handle string, blob []byte) error
}

// AuthoritativeStore is the remote backend owning transaction state.
// All mutations write through here first.
type AuthoritativeStore interface {
	ListTransactions(ctx context.Context, scope ListScope) ([]CandidateRecord, error)
	GetTransaction(ctx context.Context, txID string) (*CandidateRecord, error)
	UpdateStatus(ctx context.Context, txID string, status TransactionStatus, note string) error
	UploadProof(ctx context.Context, txID string, blob []byte) (string, error)
	Cancel(ctx context.Context, txID, reason string) error
}
