package recon

import (
	"testing"
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDeadline(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	tx := &domain.Transaction{ID: "tx-1", CreatedAt: created}

	// Pure function of CreatedAt, independent of now.
	assert.Equal(t, created.Add(48*time.Hour), Deadline(tx))
	assert.Equal(t, Deadline(tx), Deadline(tx))
}

func TestRemaining(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	tx := &domain.Transaction{ID: "tx-1", CreatedAt: created}

	remaining, ok := Remaining(tx, created.Add(time.Hour))
	assert.True(t, ok)
	assert.Equal(t, 47*time.Hour, remaining)

	remaining, ok = Remaining(tx, created.Add(49*time.Hour))
	assert.False(t, ok)
	assert.Equal(t, time.Duration(0), remaining)
}

// Expiry is advisory: a pending transaction past its deadline stays pending.
func TestIsExpired_NoAutoCancel(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	candidates := []domain.CandidateRecord{
		{ID: "tx-1", Source: domain.ProvenanceAuthoritative, Status: domain.StatusPending,
			CreatedAt: created, UpdatedAt: created},
	}

	txs := Reconcile(candidates)
	assert.Len(t, txs, 1)
	assert.Equal(t, domain.StatusPending, txs[0].Status)
	assert.True(t, IsExpired(txs[0], created.Add(72*time.Hour)))
	assert.False(t, IsExpired(txs[0], created.Add(time.Hour)))
}
