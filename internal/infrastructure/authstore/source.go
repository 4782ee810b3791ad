package authstore

import (
	"context"
	"log/slog"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
	"github.com/LavaJover/shvark-recon-service/internal/infrastructure/metrics"
)

// StoreSource adapts the authoritative store to the collector's Source
// contract. A transport failure never surfaces as an error: the last-known
// mirrored snapshot is returned instead, tagged degraded.
type StoreSource struct {
	Store   domain.AuthoritativeStore
	Mirror  domain.TransactionRepository
	Scope   domain.ListScope
	Metrics *metrics.ReconMetrics
}

func NewStoreSource(store domain.AuthoritativeStore, mirror domain.TransactionRepository, scope domain.ListScope, m *metrics.ReconMetrics) *StoreSource {
	return &StoreSource{Store: store, Mirror: mirror, Scope: scope, Metrics: m}
}

func (s *StoreSource) Name() string {
	return "authoritative"
}

func (s *StoreSource) Collect(ctx context.Context) ([]domain.CandidateRecord, error) {
	candidates, err := s.Store.ListTransactions(ctx, s.Scope)
	if err == nil {
		return candidates, nil
	}

	slog.Warn("authoritative fetch failed, serving mirrored snapshot", "error", err.Error())
	if s.Metrics != nil {
		s.Metrics.DegradedFetchesTotal.WithLabelValues(s.Name()).Inc()
	}

	fallback, _, mirrorErr := s.Mirror.LastSnapshot(ctx)
	if mirrorErr != nil {
		slog.Error("mirror fallback failed", "error", mirrorErr.Error())
		return nil, nil
	}
	return fallback, nil
}
