package domain

import "context"

// Source is one provider of candidate records. The collector iterates a list
// of sources instead of knowing individual storage keys.
//
// Collect must not mutate any store. Cache-backed sources skip malformed
// entries instead of failing; the authoritative source falls back to the
// last-known-good snapshot and tags candidates as degraded.
type Source interface {
	Name() string
	Collect(ctx context.Context) ([]CandidateRecord, error)
}
