package recon

import (
	"testing"
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_NoDuplicateIDs(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	candidates := []domain.CandidateRecord{
		{ID: "tx-1", Source: domain.ProvenanceAuthoritative, Status: domain.StatusPending, CreatedAt: created, UpdatedAt: created},
		{ID: "tx-1", Source: domain.ProvenanceCachedCheckout, CreatedAt: created},
		{ID: "tx-1", Source: domain.ProvenanceCachedSession},
		{ID: "tx-2", Source: domain.ProvenanceCachedCart, Status: domain.StatusPending, CreatedAt: created, UpdatedAt: created},
		{ID: "", Source: domain.ProvenanceCachedSession},
	}

	txs := Reconcile(candidates)

	seen := make(map[string]bool)
	for _, tx := range txs {
		require.False(t, seen[tx.ID], "duplicate id %s surfaced", tx.ID)
		seen[tx.ID] = true
	}
	assert.Len(t, txs, 2)
}

func TestMergeGroup_ProvenancePriority(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	group := []domain.CandidateRecord{
		{ID: "tx-1", Source: domain.ProvenanceCachedSession, Amount: 999, Quantity: 9, Status: domain.StatusPaid},
		{ID: "tx-1", Source: domain.ProvenanceAuthoritative, Amount: 5000, Quantity: 2,
			Status: domain.StatusPending, UserID: "u-1", CreatedAt: created, UpdatedAt: created},
		{ID: "tx-1", Source: domain.ProvenanceCachedCart, Amount: 4000, ActivityID: "act-7"},
	}

	tx := mergeGroup(group)

	assert.Equal(t, int64(5000), tx.Amount)
	assert.Equal(t, 2, tx.Quantity)
	assert.Equal(t, domain.StatusPending, tx.Status)
	assert.Equal(t, domain.ProvenanceAuthoritative, tx.Provenance)
	// Missing authoritative fields are filled from lower-priority sources.
	assert.Equal(t, "act-7", tx.ActivityID)
	assert.Equal(t, "u-1", tx.UserID)
}

func TestMergeGroup_UpdatedAtNeverRegresses(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	later := created.Add(3 * time.Hour)

	group := []domain.CandidateRecord{
		{ID: "tx-1", Source: domain.ProvenanceAuthoritative, Status: domain.StatusPending,
			CreatedAt: created, UpdatedAt: created},
		{ID: "tx-1", Source: domain.ProvenanceCachedCheckout, UpdatedAt: later},
	}

	tx := mergeGroup(group)
	assert.Equal(t, later, tx.UpdatedAt)
	assert.Equal(t, created, tx.CreatedAt)
}

func TestMergeGroup_CacheOnlyRecord(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	group := []domain.CandidateRecord{
		{ID: "tx-9", Source: domain.ProvenanceCachedCheckout, UserID: "u-2", Amount: 1500,
			Quantity: 1, CreatedAt: created, UpdatedAt: created},
	}

	tx := mergeGroup(group)
	assert.Equal(t, "tx-9", tx.ID)
	assert.Equal(t, domain.ProvenanceCachedCheckout, tx.Provenance)
	assert.Equal(t, int64(1500), tx.Amount)
}

func TestMergeGroup_DegradedPropagates(t *testing.T) {
	group := []domain.CandidateRecord{
		{ID: "tx-1", Source: domain.ProvenanceAuthoritative, Status: domain.StatusPending, Degraded: true},
		{ID: "tx-1", Source: domain.ProvenanceCachedCart},
	}

	assert.True(t, mergeGroup(group).Degraded)
}
