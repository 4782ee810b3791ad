package recon

import (
	"github.com/LavaJover/shvark-recon-service/internal/domain"
)

// EvaluateEvidence derives proof evidence for one transaction from all of its
// candidate records. Signals are checked in descending confidence order and
// the first hit wins; a weaker signal never downgrades a stronger one.
func EvaluateEvidence(candidates []domain.CandidateRecord) domain.ProofEvidence {
	// Explicit proof reference on any candidate. Prefer the highest-priority
	// source carrying one.
	var explicit *domain.CandidateRecord
	for i := range candidates {
		c := &candidates[i]
		if c.PaymentProofRef == "" {
			continue
		}
		if explicit == nil || c.Source.Priority() > explicit.Source.Priority() {
			explicit = c
		}
	}
	if explicit != nil {
		return domain.ProofEvidence{
			HasProof:   true,
			ProofRef:   explicit.PaymentProofRef,
			Source:     explicit.Source,
			Confidence: domain.ConfidenceExplicit,
		}
	}

	// Cache record carrying its own uploaded-proof marker.
	for i := range candidates {
		c := &candidates[i]
		if c.Source != domain.ProvenanceAuthoritative && c.ProofUploaded {
			return domain.ProofEvidence{
				HasProof:   true,
				ProofRef:   c.PaymentProofRef,
				Source:     c.Source,
				Confidence: domain.ConfidenceMatchedCache,
			}
		}
	}

	// Status or flag already implies a proof was seen.
	for i := range candidates {
		c := &candidates[i]
		if c.Status == domain.StatusHold || c.Status == domain.StatusPaid || c.NeedsVerification {
			return domain.ProofEvidence{
				HasProof:   true,
				Source:     c.Source,
				Confidence: domain.ConfidenceStatusInferred,
			}
		}
	}

	// Timestamp skew with no other explanation. Weakest signal, kept only to
	// avoid false negatives.
	for i := range candidates {
		c := &candidates[i]
		if !c.CreatedAt.IsZero() && c.UpdatedAt.After(c.CreatedAt) {
			return domain.ProofEvidence{
				HasProof:   true,
				Source:     c.Source,
				Confidence: domain.ConfidenceTimingInferred,
			}
		}
	}

	return domain.ProofEvidence{HasProof: false, Confidence: domain.ConfidenceNone}
}
