package models

import (
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
)

// TransactionModel mirrors the last reconciled canonical record.
type TransactionModel struct {
	ID                string                   `gorm:"primaryKey"`
	UserID            string                   `gorm:"index:idx_user"`
	ActivityID        string                   `gorm:"index:idx_activity"`
	Amount            int64
	Quantity          int
	Status            domain.TransactionStatus `gorm:"index:idx_status"`
	PaymentProofRef   string
	Provenance        domain.Provenance
	NeedsVerification bool
	AdminNotes        string
	Degraded          bool
	CreatedAt         time.Time                `gorm:"index:idx_created_at"`
	UpdatedAt         time.Time
	ObservedAt        time.Time
}

// VerificationEntryModel is the append-only audit trail.
type VerificationEntryModel struct {
	ID            string    `gorm:"primaryKey;type:uuid"`
	TransactionID string    `gorm:"index:idx_tx;not null"`
	Action        string    `gorm:"not null"`
	ActorID       string
	Note          string
	Timestamp     time.Time `gorm:"not null"`
}
