package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Proof blobs parked locally are kept a week; the registry entry itself has
// no TTL so the evidence survives until a write-through succeeds.
const proofBlobTTL = 7 * 24 * time.Hour

// ProofRegistry stores locally parked payment proofs in the proofs cache so
// later reconciliation runs pick them up as matched-cache evidence.
type ProofRegistry struct {
	client *redis.Client
}

func NewProofRegistry(client *redis.Client) *ProofRegistry {
	return &ProofRegistry{client: client}
}

func (r *ProofRegistry) PutLocal(ctx context.Context, txID, handle string, blob []byte) error {
	now := time.Now()
	entry := cacheEntry{
		ID:            txID,
		ProofRef:      handle,
		ProofUploaded: true,
		UpdatedAt:     now,
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, keyPrefix+CacheProofs+":"+txID, raw, 0).Err(); err != nil {
		return err
	}

	// Blob storage is best-effort; the handle stays valid as evidence even
	// if the payload expires.
	return r.client.Set(ctx, keyPrefix+"proofblob:"+handle, blob, proofBlobTTL).Err()
}
