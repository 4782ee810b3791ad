package mappers

import (
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
	"github.com/LavaJover/shvark-recon-service/internal/infrastructure/postgres/models"
)

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID:                model.ID,
		UserID:            model.UserID,
		ActivityID:        model.ActivityID,
		Amount:            model.Amount,
		Quantity:          model.Quantity,
		Status:            model.Status,
		PaymentProofRef:   model.PaymentProofRef,
		Provenance:        model.Provenance,
		NeedsVerification: model.NeedsVerification,
		AdminNotes:        model.AdminNotes,
		Degraded:          model.Degraded,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

func ToGORMTransaction(tx *domain.Transaction, observedAt time.Time) *models.TransactionModel {
	return &models.TransactionModel{
		ID:                tx.ID,
		UserID:            tx.UserID,
		ActivityID:        tx.ActivityID,
		Amount:            tx.Amount,
		Quantity:          tx.Quantity,
		Status:            tx.Status,
		PaymentProofRef:   tx.PaymentProofRef,
		Provenance:        tx.Provenance,
		NeedsVerification: tx.NeedsVerification,
		AdminNotes:        tx.AdminNotes,
		Degraded:          tx.Degraded,
		CreatedAt:         tx.CreatedAt,
		UpdatedAt:         tx.UpdatedAt,
		ObservedAt:        observedAt,
	}
}

// ToFallbackCandidate turns a mirrored record into a degraded authoritative
// candidate for outage collection.
func ToFallbackCandidate(model *models.TransactionModel) domain.CandidateRecord {
	return domain.CandidateRecord{
		ID:                model.ID,
		UserID:            model.UserID,
		ActivityID:        model.ActivityID,
		Amount:            model.Amount,
		Quantity:          model.Quantity,
		Status:            model.Status,
		PaymentProofRef:   model.PaymentProofRef,
		NeedsVerification: model.NeedsVerification,
		AdminNotes:        model.AdminNotes,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
		Source:            domain.ProvenanceAuthoritative,
		ObservedAt:        model.ObservedAt,
		Degraded:          true,
	}
}

func ToDomainEntry(model *models.VerificationEntryModel) domain.VerificationEntry {
	return domain.VerificationEntry{
		ID:        model.ID,
		TxID:      model.TransactionID,
		Action:    model.Action,
		ActorID:   model.ActorID,
		Note:      model.Note,
		Timestamp: model.Timestamp,
	}
}

func ToGORMEntry(entry domain.VerificationEntry) *models.VerificationEntryModel {
	return &models.VerificationEntryModel{
		ID:            entry.ID,
		TransactionID: entry.TxID,
		Action:        entry.Action,
		ActorID:       entry.ActorID,
		Note:          entry.Note,
		Timestamp:     entry.Timestamp,
	}
}
