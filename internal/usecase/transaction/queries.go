package usecase

import (
	"context"
	"log/slog"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
	"github.com/LavaJover/shvark-recon-service/internal/usecase/recon"
)

// Refresh runs the full pipeline and persists the result unless a newer run
// already applied. Safe to run redundantly and concurrently.
func (uc *DefaultTransactionUsecase) Refresh(ctx context.Context, trigger string) ([]*domain.Transaction, error) {
	res := uc.Runner.Run(ctx, trigger)

	if !uc.Runner.Apply(res) {
		slog.Debug("stale reconciliation run discarded", "trigger", trigger, "observed_at", res.ObservedAt)
		return res.Transactions, nil
	}

	if err := uc.Repo.SaveSnapshot(ctx, res.Transactions, res.ObservedAt); err != nil {
		return nil, err
	}

	uc.updateExpiryGauge(res.Transactions)

	if uc.Notifier != nil {
		uc.Notifier.Invalidate()
	}

	return res.Transactions, nil
}

func (uc *DefaultTransactionUsecase) GetByID(ctx context.Context, txID string) (*domain.Transaction, error) {
	tx, err := uc.Repo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}

	history, err := uc.AuditRepo.ListByTransaction(ctx, txID)
	if err != nil {
		slog.Warn("failed to load verification history", "tx_id", txID, "error", err.Error())
	} else {
		tx.VerificationHistory = history
	}

	return tx, nil
}

func (uc *DefaultTransactionUsecase) List(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	return uc.Repo.List(ctx, userID)
}

func (uc *DefaultTransactionUsecase) updateExpiryGauge(txs []*domain.Transaction) {
	if uc.Metrics == nil {
		return
	}
	now := timeNow()
	expired := 0
	for _, tx := range txs {
		if tx.Status == domain.StatusPending && recon.IsExpired(tx, now) {
			expired++
		}
	}
	uc.Metrics.ExpiredPendingGauge.Set(float64(expired))
}
