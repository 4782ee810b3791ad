package routes

import (
	"github.com/LavaJover/shvark-recon-service/internal/delivery/http/handlers"
	"github.com/gofiber/fiber/v2"
)

func SetupTransactionRoutes(app *fiber.App, h *handlers.TransactionHandler) {
	api := app.Group("/api")

	api.Get("/transactions", h.ListTransactions)
	api.Get("/transactions/:id", h.GetTransaction)
	api.Post("/refresh", h.Refresh)

	api.Post("/transactions/:id/cancel", h.Cancel)
	api.Post("/transactions/:id/proof", h.UploadProof)

	// Administrator commands.
	api.Post("/transactions/:id/verify", h.Verify)
	api.Post("/transactions/:id/hold", h.Hold)
	api.Post("/transactions/:id/refund", h.Refund)
}
