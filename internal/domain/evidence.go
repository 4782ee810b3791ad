package domain

// ProofConfidence orders the signals a payment proof can be derived from.
// Higher values are stronger.
type ProofConfidence int

const (
	ConfidenceNone ProofConfidence = iota
	ConfidenceTimingInferred
	ConfidenceStatusInferred
	ConfidenceMatchedCache
	ConfidenceExplicit
)

func (c ProofConfidence) String() string {
	switch c {
	case ConfidenceExplicit:
		return "EXPLICIT"
	case ConfidenceMatchedCache:
		return "MATCHED_CACHE"
	case ConfidenceStatusInferred:
		return "STATUS_INFERRED"
	case ConfidenceTimingInferred:
		return "TIMING_INFERRED"
	}
	return "NONE"
}

// ProofEvidence is the derived judgment of whether a payment proof exists
// for a transaction. Transient, never persisted.
type ProofEvidence struct {
	HasProof   bool
	ProofRef   string
	Source     Provenance
	Confidence ProofConfidence
}
