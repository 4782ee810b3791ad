package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
	"github.com/LavaJover/shvark-recon-service/internal/notifier"
	"github.com/LavaJover/shvark-recon-service/internal/usecase/recon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu        sync.Mutex
	records   map[string]*domain.CandidateRecord
	listErr   error
	uploadErr error
}

func newFakeStore(records ...*domain.CandidateRecord) *fakeStore {
	s := &fakeStore{records: make(map[string]*domain.CandidateRecord)}
	for _, r := range records {
		s.records[r.ID] = r
	}
	return s
}

func (s *fakeStore) ListTransactions(ctx context.Context, scope domain.ListScope) ([]domain.CandidateRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]domain.CandidateRecord, 0, len(s.records))
	for _, r := range s.records {
		c := *r
		c.ObservedAt = time.Now()
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeStore) GetTransaction(ctx context.Context, txID string) (*domain.CandidateRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[txID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	c := *r
	return &c, nil
}

func (s *fakeStore) UpdateStatus(ctx context.Context, txID string, status domain.TransactionStatus, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[txID]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	// The store records administrative transitions as explicit directives.
	r.Status = status
	r.StatusOverride = status
	r.UpdatedAt = time.Now()
	return nil
}

func (s *fakeStore) UploadProof(ctx context.Context, txID string, blob []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	r, ok := s.records[txID]
	if !ok {
		return "", domain.ErrTransactionNotFound
	}
	r.PaymentProofRef = "https://proofs/" + txID + ".jpg"
	r.UpdatedAt = time.Now()
	return r.PaymentProofRef, nil
}

func (s *fakeStore) Cancel(ctx context.Context, txID, reason string) error {
	return s.UpdateStatus(ctx, txID, domain.StatusCancelled, reason)
}

// storeSource feeds the pipeline straight from the fake store.
type storeSource struct{ store *fakeStore }

func (s *storeSource) Name() string { return "authoritative" }

func (s *storeSource) Collect(ctx context.Context) ([]domain.CandidateRecord, error) {
	return s.store.ListTransactions(ctx, domain.ScopeAll)
}

type fakeRepo struct {
	mu  sync.Mutex
	txs map[string]*domain.Transaction
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{txs: make(map[string]*domain.Transaction)}
}

func (r *fakeRepo) SaveSnapshot(ctx context.Context, txs []*domain.Transaction, observedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range txs {
		cp := *tx
		r.txs[tx.ID] = &cp
	}
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, txID string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[txID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	cp := *tx
	return &cp, nil
}

func (r *fakeRepo) List(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Transaction
	for _, tx := range r.txs {
		if userID == "" || tx.UserID == userID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) LastSnapshot(ctx context.Context) ([]domain.CandidateRecord, time.Time, error) {
	return nil, time.Time{}, nil
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []domain.VerificationEntry
}

func (a *fakeAudit) Append(ctx context.Context, entry domain.VerificationEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
	return nil
}

func (a *fakeAudit) ListByTransaction(ctx context.Context, txID string) ([]domain.VerificationEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []domain.VerificationEntry
	for _, e := range a.entries {
		if e.TxID == txID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeProofs struct {
	mu      sync.Mutex
	handles map[string]string
}

func (p *fakeProofs) PutLocal(ctx context.Context, txID, handle string, blob []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handles == nil {
		p.handles = make(map[string]string)
	}
	p.handles[txID] = handle
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []domain.Message
}

func (p *fakePublisher) Publish(topic string, msgs ...domain.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msgs...)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

func newTestUsecase(store *fakeStore) (*DefaultTransactionUsecase, *fakeRepo, *fakeAudit, *fakeProofs, *fakePublisher) {
	repo := newFakeRepo()
	audit := &fakeAudit{}
	proofs := &fakeProofs{}
	pub := &fakePublisher{}

	runner := recon.NewRunner([]domain.Source{&storeSource{store: store}}, nil)
	uc := NewDefaultTransactionUsecase(store, repo, audit, proofs, runner, pub, notifier.New(), nil, "recon-invalidations")
	return uc, repo, audit, proofs, pub
}

func pendingCandidate(id string) *domain.CandidateRecord {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.CandidateRecord{
		ID:        id,
		UserID:    "u-1",
		Amount:    2500,
		Quantity:  1,
		Status:    domain.StatusPending,
		Source:    domain.ProvenanceAuthoritative,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func paidCandidate(id string) *domain.CandidateRecord {
	c := pendingCandidate(id)
	c.Status = domain.StatusPaid
	c.PaymentProofRef = "https://proofs/" + id + ".jpg"
	return c
}

func TestVerify_PaidToCompleted(t *testing.T) {
	store := newFakeStore(paidCandidate("tx-1"))
	uc, _, audit, _, _ := newTestUsecase(store)

	tx, err := uc.Verify(context.Background(), "tx-1", "admin-1", "ok")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, tx.Status)

	entries, err := audit.ListByTransaction(context.Background(), "tx-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "verify", entries[0].Action)
	assert.Equal(t, "ok", entries[0].Note)
	assert.Equal(t, "admin-1", entries[0].ActorID)
}

func TestVerify_RejectedFromPending(t *testing.T) {
	store := newFakeStore(pendingCandidate("tx-1"))
	uc, _, _, _, _ := newTestUsecase(store)

	_, err := uc.Verify(context.Background(), "tx-1", "admin-1", "ok")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestHoldAndRefund(t *testing.T) {
	store := newFakeStore(paidCandidate("tx-1"), paidCandidate("tx-2"))
	uc, _, _, _, _ := newTestUsecase(store)

	tx, err := uc.Hold(context.Background(), "tx-1", "admin-1", "needs a second look")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusHold, tx.Status)

	tx, err = uc.Refund(context.Background(), "tx-2", "admin-1", "chargeback")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRefunded, tx.Status)
}

func TestCancel_ReasonRequired(t *testing.T) {
	store := newFakeStore(pendingCandidate("tx-1"))
	uc, _, _, _, _ := newTestUsecase(store)

	_, err := uc.Cancel(context.Background(), "tx-1", "u-1", "")
	assert.ErrorIs(t, err, domain.ErrReasonRequired)

	tx, err := uc.Cancel(context.Background(), "tx-1", "u-1", "user request")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, tx.Status)
}

func TestCancel_TerminalRejected(t *testing.T) {
	c := pendingCandidate("tx-1")
	c.Status = domain.StatusCompleted
	store := newFakeStore(c)
	uc, _, _, _, _ := newTestUsecase(store)

	_, err := uc.Cancel(context.Background(), "tx-1", "u-1", "too late")
	assert.ErrorIs(t, err, domain.ErrTerminalStatus)
}

func TestCancel_UnknownTransaction(t *testing.T) {
	store := newFakeStore()
	uc, _, _, _, _ := newTestUsecase(store)

	_, err := uc.Cancel(context.Background(), "nope", "u-1", "reason")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestUploadProof_WriteThrough(t *testing.T) {
	store := newFakeStore(pendingCandidate("tx-1"))
	uc, _, audit, proofs, _ := newTestUsecase(store)

	tx, err := uc.UploadProof(context.Background(), "tx-1", "u-1", []byte("receipt"))
	require.NoError(t, err)
	assert.Equal(t, "https://proofs/tx-1.jpg", tx.PaymentProofRef)
	// Explicit proof on the authoritative record resolves PAID for review.
	assert.Equal(t, domain.StatusPaid, tx.Status)
	assert.True(t, tx.NeedsVerification)

	entries, _ := audit.ListByTransaction(context.Background(), "tx-1")
	require.Len(t, entries, 1)
	assert.Equal(t, "upload-proof", entries[0].Action)
	assert.Empty(t, proofs.handles)
}

func TestUploadProof_FallsBackLocally(t *testing.T) {
	store := newFakeStore(pendingCandidate("tx-1"))
	store.uploadErr = errors.New("store down")
	uc, _, audit, proofs, _ := newTestUsecase(store)

	_, err := uc.UploadProof(context.Background(), "tx-1", "u-1", []byte("receipt"))
	require.NoError(t, err)

	handle, ok := proofs.handles["tx-1"]
	require.True(t, ok, "proof should be parked locally")
	assert.True(t, strings.HasPrefix(handle, "local:"))

	entries, _ := audit.ListByTransaction(context.Background(), "tx-1")
	require.Len(t, entries, 1)
	assert.Equal(t, "upload-proof-local", entries[0].Action)
}

func TestUploadProof_TerminalRejected(t *testing.T) {
	c := pendingCandidate("tx-1")
	c.Status = domain.StatusRefunded
	store := newFakeStore(c)
	uc, _, _, _, _ := newTestUsecase(store)

	_, err := uc.UploadProof(context.Background(), "tx-1", "u-1", []byte("receipt"))
	assert.ErrorIs(t, err, domain.ErrTerminalStatus)
}

func TestRefresh_PersistsSnapshotAndNotifies(t *testing.T) {
	store := newFakeStore(pendingCandidate("tx-1"), paidCandidate("tx-2"))
	uc, repo, _, _, _ := newTestUsecase(store)

	invalidations := 0
	uc.Notifier.OnInvalidate(func() { invalidations++ })

	txs, err := uc.Refresh(context.Background(), "manual")
	require.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Equal(t, 1, invalidations)

	stored, err := repo.GetByID(context.Background(), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestCommand_PublishesInvalidation(t *testing.T) {
	store := newFakeStore(paidCandidate("tx-1"))
	uc, _, _, _, pub := newTestUsecase(store)

	_, err := uc.Verify(context.Background(), "tx-1", "admin-1", "ok")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return pub.count() == 1 },
		time.Second, 10*time.Millisecond, "invalidation event should be published")
}
