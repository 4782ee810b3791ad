package authstore

import (
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
)

type transactionDTO struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	ActivityID        string    `json:"activity_id"`
	Amount            int64     `json:"amount"`
	Quantity          int       `json:"quantity"`
	Status            string    `json:"status"`
	PaymentProofRef   string    `json:"payment_proof_ref,omitempty"`
	NeedsVerification bool      `json:"needs_verification,omitempty"`
	StatusOverride    string    `json:"status_override,omitempty"`
	Processed         bool      `json:"processed,omitempty"`
	ProcessedAction   string    `json:"processed_action,omitempty"`
	AdminNotes        string    `json:"admin_notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type listResponse struct {
	Transactions []transactionDTO `json:"transactions"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type uploadProofRequest struct {
	Blob []byte `json:"blob"`
}

type uploadProofResponse struct {
	ProofRef string `json:"proof_ref"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (d *transactionDTO) toCandidate(observedAt time.Time) domain.CandidateRecord {
	return domain.CandidateRecord{
		ID:                d.ID,
		UserID:            d.UserID,
		ActivityID:        d.ActivityID,
		Amount:            d.Amount,
		Quantity:          d.Quantity,
		Status:            domain.TransactionStatus(d.Status),
		PaymentProofRef:   d.PaymentProofRef,
		NeedsVerification: d.NeedsVerification,
		StatusOverride:    domain.TransactionStatus(d.StatusOverride),
		Processed:         d.Processed,
		ProcessedAction:   d.ProcessedAction,
		AdminNotes:        d.AdminNotes,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
		Source:            domain.ProvenanceAuthoritative,
		ObservedAt:        observedAt,
	}
}
