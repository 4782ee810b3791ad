package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsecase struct {
	tx  *domain.Transaction
	err error
}

func (s *stubUsecase) Cancel(ctx context.Context, txID, actorID, reason string) (*domain.Transaction, error) {
	if reason == "" {
		return nil, domain.ErrReasonRequired
	}
	return s.tx, s.err
}

func (s *stubUsecase) UploadProof(ctx context.Context, txID, actorID string, blob []byte) (*domain.Transaction, error) {
	return s.tx, s.err
}

func (s *stubUsecase) Verify(ctx context.Context, txID, actorID, note string) (*domain.Transaction, error) {
	return s.tx, s.err
}

func (s *stubUsecase) Hold(ctx context.Context, txID, actorID, note string) (*domain.Transaction, error) {
	return s.tx, s.err
}

func (s *stubUsecase) Refund(ctx context.Context, txID, actorID, note string) (*domain.Transaction, error) {
	return s.tx, s.err
}

func (s *stubUsecase) Refresh(ctx context.Context, trigger string) ([]*domain.Transaction, error) {
	return []*domain.Transaction{s.tx}, s.err
}

func (s *stubUsecase) GetByID(ctx context.Context, txID string) (*domain.Transaction, error) {
	return s.tx, s.err
}

func (s *stubUsecase) List(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	return []*domain.Transaction{s.tx}, s.err
}

func testApp(stub *stubUsecase) *fiber.App {
	app := fiber.New()
	h := NewTransactionHandler(stub)

	app.Get("/api/transactions/:id", h.GetTransaction)
	app.Post("/api/transactions/:id/cancel", h.Cancel)
	app.Post("/api/transactions/:id/verify", h.Verify)
	return app
}

func sampleTx() *domain.Transaction {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Transaction{
		ID:        "tx-1",
		UserID:    "u-1",
		Amount:    2500,
		Quantity:  1,
		Status:    domain.StatusPending,
		CreatedAt: created,
		UpdatedAt: created,
		Provenance: domain.ProvenanceAuthoritative,
	}
}

func TestGetTransaction_DeadlineFields(t *testing.T) {
	app := testApp(&stubUsecase{tx: sampleTx()})

	req := httptest.NewRequest("GET", "/api/transactions/tx-1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var got transactionResponse
	require.NoError(t, json.Unmarshal(body, &got))

	assert.Equal(t, "tx-1", got.ID)
	assert.Equal(t, "PENDING", got.Status)
	assert.Equal(t, sampleTx().CreatedAt.Add(48*time.Hour), got.PaymentDeadline)
	assert.True(t, got.Expired, "a 2025 transaction is long past its window")
}

func TestGetTransaction_NotFound(t *testing.T) {
	app := testApp(&stubUsecase{err: domain.ErrTransactionNotFound})

	req := httptest.NewRequest("GET", "/api/transactions/missing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCancel_MissingReason(t *testing.T) {
	app := testApp(&stubUsecase{tx: sampleTx()})

	payload, _ := json.Marshal(map[string]string{"actor_id": "u-1"})
	req := httptest.NewRequest("POST", "/api/transactions/tx-1/cancel", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestVerify_Conflict(t *testing.T) {
	app := testApp(&stubUsecase{err: domain.ErrInvalidTransition})

	payload, _ := json.Marshal(map[string]string{"actor_id": "admin-1", "note": "ok"})
	req := httptest.NewRequest("POST", "/api/transactions/tx-1/verify", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
