package rediscache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
	"github.com/LavaJover/shvark-recon-service/internal/infrastructure/metrics"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "recon:"

// Cache names match the flows that write them opportunistically.
const (
	CacheCheckout = "checkout"
	CacheCart     = "cart"
	CacheSession  = "session"
	CacheProofs   = "proofs"
)

func provenanceFor(cache string) domain.Provenance {
	switch cache {
	case CacheCheckout, CacheProofs:
		return domain.ProvenanceCachedCheckout
	case CacheCart:
		return domain.ProvenanceCachedCart
	default:
		return domain.ProvenanceCachedSession
	}
}

// cacheEntry is the partial candidate stored per transaction id. Cache
// writers own the format; anything that fails to decode is skipped.
type cacheEntry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id,omitempty"`
	ActivityID    string    `json:"activity_id,omitempty"`
	Amount        int64     `json:"amount,omitempty"`
	Quantity      int       `json:"quantity,omitempty"`
	Status        string    `json:"status,omitempty"`
	ProofRef      string    `json:"proof_ref,omitempty"`
	ProofUploaded bool      `json:"proof_uploaded,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// CacheSource scans one named ephemeral cache for candidate records.
type CacheSource struct {
	client  *redis.Client
	cache   string
	metrics *metrics.ReconMetrics
}

func NewCacheSource(client *redis.Client, cache string, m *metrics.ReconMetrics) *CacheSource {
	return &CacheSource{client: client, cache: cache, metrics: m}
}

func (s *CacheSource) Name() string {
	return "cache_" + s.cache
}

// Collect scans the cache's key space. Malformed entries are logged and
// skipped; the scan itself never fails the pipeline.
func (s *CacheSource) Collect(ctx context.Context) ([]domain.CandidateRecord, error) {
	prefix := keyPrefix + s.cache + ":"
	observedAt := time.Now()

	var candidates []domain.CandidateRecord
	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		raw, err := s.client.Get(ctx, key).Result()
		if err != nil {
			if err != redis.Nil {
				slog.Warn("cache read failed", "cache", s.cache, "key", key, "error", err.Error())
			}
			continue
		}

		var entry cacheEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			slog.Warn("skipping malformed cache entry", "cache", s.cache, "key", key, "error", err.Error())
			if s.metrics != nil {
				s.metrics.MalformedEntriesTotal.WithLabelValues(s.cache).Inc()
			}
			continue
		}

		if entry.ID == "" {
			entry.ID = strings.TrimPrefix(key, prefix)
		}

		candidates = append(candidates, domain.CandidateRecord{
			ID:              entry.ID,
			UserID:          entry.UserID,
			ActivityID:      entry.ActivityID,
			Amount:          entry.Amount,
			Quantity:        entry.Quantity,
			Status:          domain.TransactionStatus(entry.Status),
			PaymentProofRef: entry.ProofRef,
			ProofUploaded:   entry.ProofUploaded,
			CreatedAt:       entry.CreatedAt,
			UpdatedAt:       entry.UpdatedAt,
			Source:          provenanceFor(s.cache),
			ObservedAt:      observedAt,
		})
	}
	if err := iter.Err(); err != nil {
		slog.Warn("cache scan aborted", "cache", s.cache, "error", err.Error())
	}

	return candidates, nil
}
