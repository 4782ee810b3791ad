package recon

import (
	"sort"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
)

// mergeGroup folds all candidates for a single id into one canonical record.
// Fields are taken from the highest-priority source that has them; UpdatedAt
// never regresses below any observed value.
func mergeGroup(group []domain.CandidateRecord) *domain.Transaction {
	ordered := make([]domain.CandidateRecord, len(group))
	copy(ordered, group)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Source.Priority() != ordered[j].Source.Priority() {
			return ordered[i].Source.Priority() > ordered[j].Source.Priority()
		}
		return ordered[i].ObservedAt.After(ordered[j].ObservedAt)
	})

	base := ordered[0]
	tx := &domain.Transaction{
		ID:                base.ID,
		UserID:            base.UserID,
		ActivityID:        base.ActivityID,
		Amount:            base.Amount,
		Quantity:          base.Quantity,
		Status:            base.Status,
		PaymentProofRef:   base.PaymentProofRef,
		CreatedAt:         base.CreatedAt,
		UpdatedAt:         base.UpdatedAt,
		Provenance:        base.Source,
		NeedsVerification: base.NeedsVerification,
		AdminNotes:        base.AdminNotes,
		Degraded:          base.Degraded,
	}

	for _, c := range ordered[1:] {
		if tx.UserID == "" {
			tx.UserID = c.UserID
		}
		if tx.ActivityID == "" {
			tx.ActivityID = c.ActivityID
		}
		if tx.Amount == 0 {
			tx.Amount = c.Amount
		}
		if tx.Quantity == 0 {
			tx.Quantity = c.Quantity
		}
		if tx.Status == "" {
			tx.Status = c.Status
			tx.Provenance = c.Source
		}
		if tx.PaymentProofRef == "" {
			tx.PaymentProofRef = c.PaymentProofRef
		}
		if tx.AdminNotes == "" {
			tx.AdminNotes = c.AdminNotes
		}
		if tx.CreatedAt.IsZero() {
			tx.CreatedAt = c.CreatedAt
		}
		if c.UpdatedAt.After(tx.UpdatedAt) {
			tx.UpdatedAt = c.UpdatedAt
		}
		if c.NeedsVerification {
			tx.NeedsVerification = true
		}
		if c.Degraded {
			tx.Degraded = true
		}
	}

	return tx
}

// groupByID buckets candidates per transaction id, dropping records with no id.
func groupByID(candidates []domain.CandidateRecord) map[string][]domain.CandidateRecord {
	groups := make(map[string][]domain.CandidateRecord)
	for _, c := range candidates {
		if c.ID == "" {
			continue
		}
		groups[c.ID] = append(groups[c.ID], c)
	}
	return groups
}
