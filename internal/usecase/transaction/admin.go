package usecase

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
)

// Administrator-only commands. All three are allowed only from PAID or HOLD
// and append an audit entry before the pipeline re-runs.

func (uc *DefaultTransactionUsecase) Verify(ctx context.Context, txID, actorID, note string) (*domain.Transaction, error) {
	return uc.adminTransition(ctx, "verify", txID, actorID, note, domain.StatusCompleted)
}

func (uc *DefaultTransactionUsecase) Hold(ctx context.Context, txID, actorID, note string) (*domain.Transaction, error) {
	return uc.adminTransition(ctx, "hold", txID, actorID, note, domain.StatusHold)
}

func (uc *DefaultTransactionUsecase) Refund(ctx context.Context, txID, actorID, note string) (*domain.Transaction, error) {
	return uc.adminTransition(ctx, "refund", txID, actorID, note, domain.StatusRefunded)
}

func (uc *DefaultTransactionUsecase) adminTransition(ctx context.Context, command, txID, actorID, note string, target domain.TransactionStatus) (*domain.Transaction, error) {
	started := timeNow()

	tx, err := uc.currentState(ctx, txID)
	if err != nil {
		return nil, uc.rejectCommand(command, err)
	}

	if tx.Status.IsTerminal() {
		return nil, uc.rejectCommand(command, domain.ErrTerminalStatus)
	}
	if tx.Status != domain.StatusPaid && tx.Status != domain.StatusHold {
		return nil, uc.rejectCommand(command, domain.ErrInvalidTransition)
	}

	if err := uc.Store.UpdateStatus(ctx, txID, target, note); err != nil {
		if uc.Metrics != nil {
			uc.Metrics.RecordCommand(command, "store_error", timeNow().Sub(started).Seconds())
		}
		return nil, fmt.Errorf("%s write-through failed: %w", command, err)
	}

	uc.appendAudit(ctx, txID, command, actorID, note)

	return uc.finishCommand(ctx, txID, command, started)
}
