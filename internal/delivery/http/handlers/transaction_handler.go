package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
	"github.com/LavaJover/shvark-recon-service/internal/usecase/recon"
	usecase "github.com/LavaJover/shvark-recon-service/internal/usecase/transaction"
	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	Usecase usecase.TransactionUsecase
}

func NewTransactionHandler(uc usecase.TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{Usecase: uc}
}

type commandRequest struct {
	ActorID string `json:"actor_id"`
	Reason  string `json:"reason"`
	Note    string `json:"note"`
	Blob    []byte `json:"blob"`
}

type verificationEntryResponse struct {
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type transactionResponse struct {
	ID                string                      `json:"id"`
	UserID            string                      `json:"user_id"`
	ActivityID        string                      `json:"activity_id"`
	Amount            int64                       `json:"amount"`
	Quantity          int                         `json:"quantity"`
	Status            string                      `json:"status"`
	PaymentProofRef   string                      `json:"payment_proof_ref,omitempty"`
	Provenance        string                      `json:"provenance"`
	NeedsVerification bool                        `json:"needs_verification"`
	AdminNotes        string                      `json:"admin_notes,omitempty"`
	Degraded          bool                        `json:"degraded"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
	PaymentDeadline   time.Time                   `json:"payment_deadline"`
	Expired           bool                        `json:"expired"`
	RemainingSeconds  int64                       `json:"remaining_seconds"`
	History           []verificationEntryResponse `json:"verification_history,omitempty"`
}

func toResponse(tx *domain.Transaction) transactionResponse {
	now := time.Now()
	remaining, _ := recon.Remaining(tx, now)

	resp := transactionResponse{
		ID:                tx.ID,
		UserID:            tx.UserID,
		ActivityID:        tx.ActivityID,
		Amount:            tx.Amount,
		Quantity:          tx.Quantity,
		Status:            string(tx.Status),
		PaymentProofRef:   tx.PaymentProofRef,
		Provenance:        string(tx.Provenance),
		NeedsVerification: tx.NeedsVerification,
		AdminNotes:        tx.AdminNotes,
		Degraded:          tx.Degraded,
		CreatedAt:         tx.CreatedAt,
		UpdatedAt:         tx.UpdatedAt,
		PaymentDeadline:   recon.Deadline(tx),
		Expired:           recon.IsExpired(tx, now),
		RemainingSeconds:  int64(remaining.Seconds()),
	}
	for _, entry := range tx.VerificationHistory {
		resp.History = append(resp.History, verificationEntryResponse{
			Action:    entry.Action,
			ActorID:   entry.ActorID,
			Note:      entry.Note,
			Timestamp: entry.Timestamp,
		})
	}
	return resp
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	tx, err := h.Usecase.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return commandError(c, err)
	}
	return c.JSON(toResponse(tx))
}

func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	txs, err := h.Usecase.List(c.Context(), c.Query("user_id"))
	if err != nil {
		return commandError(c, err)
	}

	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}
	return c.JSON(fiber.Map{"transactions": resp})
}

func (h *TransactionHandler) Refresh(c *fiber.Ctx) error {
	txs, err := h.Usecase.Refresh(c.Context(), "manual")
	if err != nil {
		return commandError(c, err)
	}
	return c.JSON(fiber.Map{"count": len(txs)})
}

func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	var req commandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	tx, err := h.Usecase.Cancel(c.Context(), c.Params("id"), req.ActorID, req.Reason)
	if err != nil {
		return commandError(c, err)
	}
	return c.JSON(toResponse(tx))
}

func (h *TransactionHandler) UploadProof(c *fiber.Ctx) error {
	var req commandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(req.Blob) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "proof blob is required"})
	}

	tx, err := h.Usecase.UploadProof(c.Context(), c.Params("id"), req.ActorID, req.Blob)
	if err != nil {
		return commandError(c, err)
	}
	return c.JSON(toResponse(tx))
}

func (h *TransactionHandler) Verify(c *fiber.Ctx) error {
	return h.adminCommand(c, h.Usecase.Verify)
}

func (h *TransactionHandler) Hold(c *fiber.Ctx) error {
	return h.adminCommand(c, h.Usecase.Hold)
}

func (h *TransactionHandler) Refund(c *fiber.Ctx) error {
	return h.adminCommand(c, h.Usecase.Refund)
}

func (h *TransactionHandler) adminCommand(c *fiber.Ctx, run func(ctx context.Context, txID, actorID, note string) (*domain.Transaction, error)) error {
	var req commandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	tx, err := run(c.Context(), c.Params("id"), req.ActorID, req.Note)
	if err != nil {
		return commandError(c, err)
	}
	return c.JSON(toResponse(tx))
}

func commandError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrTransactionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrReasonRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrTerminalStatus), errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
