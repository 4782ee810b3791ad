package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
	"github.com/jaevor/go-nanoid"
)

// UploadProof attaches a payment proof to a non-terminal transaction. The
// blob writes through to the authoritative store; if that fails, the proof is
// parked in the local registry under a transient handle so the flow stays
// usable during outages. The locally parked proof is a known consistency gap:
// it is never durably stored until a later write-through succeeds.
func (uc *DefaultTransactionUsecase) UploadProof(ctx context.Context, txID, actorID string, blob []byte) (*domain.Transaction, error) {
	started := timeNow()

	tx, err := uc.currentState(ctx, txID)
	if err != nil {
		return nil, uc.rejectCommand("upload_proof", err)
	}
	if tx.Status.IsTerminal() {
		return nil, uc.rejectCommand("upload_proof", domain.ErrTerminalStatus)
	}

	proofRef, err := uc.Store.UploadProof(ctx, txID, blob)
	if err != nil {
		slog.Warn("proof write-through failed, parking locally", "tx_id", txID, "error", err.Error())
		return uc.uploadProofFallback(ctx, txID, actorID, blob, started)
	}

	uc.appendAudit(ctx, txID, "upload-proof", actorID, proofRef)

	return uc.finishCommand(ctx, txID, "upload_proof", started)
}

func (uc *DefaultTransactionUsecase) uploadProofFallback(ctx context.Context, txID, actorID string, blob []byte, started time.Time) (*domain.Transaction, error) {
	newHandle, err := nanoid.Standard(21)
	if err != nil {
		return nil, err
	}
	handle := "local:" + newHandle()

	if err := uc.Proofs.PutLocal(ctx, txID, handle, blob); err != nil {
		if uc.Metrics != nil {
			uc.Metrics.RecordCommand("upload_proof", "failed", timeNow().Sub(started).Seconds())
		}
		return nil, domain.ErrStoreUnavailable
	}

	if uc.Metrics != nil {
		uc.Metrics.ProofFallbacksTotal.Inc()
	}
	uc.appendAudit(ctx, txID, "upload-proof-local", actorID, handle)

	return uc.finishCommand(ctx, txID, "upload_proof", started)
}
