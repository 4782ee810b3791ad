package recon

import (
	"github.com/LavaJover/shvark-recon-service/internal/domain"
)

// Resolve computes the canonical status for a merged record. Rules are
// evaluated in order, first match wins:
//
//  1. explicit administrative status override,
//  2. administrative processed flag (approval -> COMPLETED, else CANCELLED),
//  3. proof evidence against the current merged status.
//
// Terminal statuses are never reopened: fresh proof against a terminal record
// only attaches as metadata.
func Resolve(merged *domain.Transaction, group []domain.CandidateRecord, ev domain.ProofEvidence) (domain.TransactionStatus, bool) {
	for i := range group {
		if group[i].StatusOverride != "" {
			return group[i].StatusOverride, false
		}
	}

	for i := range group {
		if group[i].Processed {
			if isApprovalAction(group[i].ProcessedAction) {
				return domain.StatusCompleted, false
			}
			return domain.StatusCancelled, false
		}
	}

	current := merged.Status
	if current.IsTerminal() {
		return current, false
	}

	if !ev.HasProof {
		return domain.StatusPending, false
	}

	switch {
	case ev.Confidence >= domain.ConfidenceMatchedCache:
		return domain.StatusPaid, true
	case current == domain.StatusPending || current == "":
		return domain.StatusHold, false
	case current == domain.StatusHold || current == domain.StatusPaid:
		return current, merged.NeedsVerification
	default:
		return domain.StatusPaid, false
	}
}

func isApprovalAction(action string) bool {
	switch action {
	case "approve", "verify", "verified", "approved":
		return true
	}
	return false
}
