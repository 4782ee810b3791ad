package usecase

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
)

// Cancel moves a transaction to CANCELLED. Allowed only from PENDING or HOLD
// and always requires a reason.
func (uc *DefaultTransactionUsecase) Cancel(ctx context.Context, txID, actorID, reason string) (*domain.Transaction, error) {
	started := timeNow()

	if reason == "" {
		return nil, uc.rejectCommand("cancel", domain.ErrReasonRequired)
	}

	tx, err := uc.currentState(ctx, txID)
	if err != nil {
		return nil, uc.rejectCommand("cancel", err)
	}

	if tx.Status.IsTerminal() {
		return nil, uc.rejectCommand("cancel", domain.ErrTerminalStatus)
	}
	if tx.Status != domain.StatusPending && tx.Status != domain.StatusHold {
		return nil, uc.rejectCommand("cancel", domain.ErrInvalidTransition)
	}

	if err := uc.Store.Cancel(ctx, txID, reason); err != nil {
		if uc.Metrics != nil {
			uc.Metrics.RecordCommand("cancel", "store_error", timeNow().Sub(started).Seconds())
		}
		return nil, fmt.Errorf("cancel write-through failed: %w", err)
	}

	uc.appendAudit(ctx, txID, "cancel", actorID, reason)

	return uc.finishCommand(ctx, txID, "cancel", started)
}
