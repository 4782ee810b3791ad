package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
	publisher "github.com/LavaJover/shvark-recon-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-recon-service/internal/usecase/recon"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// currentState returns the canonical view used for command validation. The
// local mirror is checked first; on a miss the authoritative store is asked
// directly and the single candidate is reconciled on the spot.
func (uc *DefaultTransactionUsecase) currentState(ctx context.Context, txID string) (*domain.Transaction, error) {
	tx, err := uc.Repo.GetByID(ctx, txID)
	if err == nil {
		return tx, nil
	}
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		return nil, err
	}

	candidate, err := uc.Store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, domain.ErrTransactionNotFound
	}
	txs := recon.Reconcile([]domain.CandidateRecord{*candidate})
	if len(txs) == 0 {
		return nil, domain.ErrTransactionNotFound
	}
	return txs[0], nil
}

func (uc *DefaultTransactionUsecase) appendAudit(ctx context.Context, txID, action, actorID, note string) {
	entry := domain.VerificationEntry{
		ID:        uuid.NewString(),
		TxID:      txID,
		Action:    action,
		ActorID:   actorID,
		Note:      note,
		Timestamp: time.Now(),
	}
	if err := uc.AuditRepo.Append(ctx, entry); err != nil {
		slog.Error("failed to append audit entry", "tx_id", txID, "action", action, "error", err.Error())
	}
}

func (uc *DefaultTransactionUsecase) publishInvalidation(txID, command string) {
	if uc.Publisher == nil {
		return
	}
	event := publisher.InvalidationEvent{
		TxID:    txID,
		Command: command,
		Origin:  "command",
		At:      time.Now(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal invalidation event", "error", err.Error())
		return
	}
	go func() {
		if err := uc.Publisher.Publish(uc.Topic, domain.Message{Key: []byte(txID), Value: value}); err != nil {
			slog.Error("failed to publish invalidation event", "tx_id", txID, "error", err.Error())
		}
	}()
}

// finishCommand re-runs the pipeline so the caller observes the freshly
// reconciled record, then fans the change signal out.
func (uc *DefaultTransactionUsecase) finishCommand(ctx context.Context, txID, command string, started time.Time) (*domain.Transaction, error) {
	if _, err := uc.Refresh(ctx, command); err != nil {
		return nil, status.Errorf(codes.Internal, "reconciliation after %s failed: %v", command, err)
	}

	uc.publishInvalidation(txID, command)
	if uc.Metrics != nil {
		uc.Metrics.RecordCommand(command, "ok", time.Since(started).Seconds())
	}

	tx, err := uc.Repo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (uc *DefaultTransactionUsecase) rejectCommand(command string, err error) error {
	if uc.Metrics != nil {
		uc.Metrics.RecordCommand(command, "rejected", 0)
	}
	return err
}
