package usecase

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
	"github.com/LavaJover/shvark-recon-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-recon-service/internal/notifier"
	"github.com/LavaJover/shvark-recon-service/internal/usecase/recon"
)

// Swapped out in tests.
var timeNow = time.Now

type TransactionUsecase interface {
	Cancel(ctx context.Context, txID, actorID, reason string) (*domain.Transaction, error)
	UploadProof(ctx context.Context, txID, actorID string, blob []byte) (*domain.Transaction, error)
	Verify(ctx context.Context, txID, actorID, note string) (*domain.Transaction, error)
	Hold(ctx context.Context, txID, actorID, note string) (*domain.Transaction, error)
	Refund(ctx context.Context, txID, actorID, note string) (*domain.Transaction, error)

	Refresh(ctx context.Context, trigger string) ([]*domain.Transaction, error)
	GetByID(ctx context.Context, txID string) (*domain.Transaction, error)
	List(ctx context.Context, userID string) ([]*domain.Transaction, error)
}

type DefaultTransactionUsecase struct {
	Store     domain.AuthoritativeStore
	Repo      domain.TransactionRepository
	AuditRepo domain.AuditRepository
	Proofs    domain.ProofRegistry
	Runner    *recon.Runner
	Publisher domain.PublisherPort
	Notifier  *notifier.Notifier
	Metrics   *metrics.ReconMetrics
	Topic     string
}

func NewDefaultTransactionUsecase(
	store domain.AuthoritativeStore,
	repo domain.TransactionRepository,
	auditRepo domain.AuditRepository,
	proofs domain.ProofRegistry,
	runner *recon.Runner,
	pub domain.PublisherPort,
	n *notifier.Notifier,
	m *metrics.ReconMetrics,
	topic string) *DefaultTransactionUsecase {

	return &DefaultTransactionUsecase{
		Store:     store,
		Repo:      repo,
		AuditRepo: auditRepo,
		Proofs:    proofs,
		Runner:    runner,
		Publisher: pub,
		Notifier:  n,
		Metrics:   m,
		Topic:     topic,
	}
}
