package repository

import (
	"context"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
	"github.com/LavaJover/shvark-recon-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-recon-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultAuditRepository struct {
	DB *gorm.DB
}

func NewDefaultAuditRepository(db *gorm.DB) *DefaultAuditRepository {
	return &DefaultAuditRepository{DB: db}
}

func (r *DefaultAuditRepository) Append(ctx context.Context, entry domain.VerificationEntry) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMEntry(entry)).Error
}

func (r *DefaultAuditRepository) ListByTransaction(ctx context.Context, txID string) ([]domain.VerificationEntry, error) {
	var rows []models.VerificationEntryModel
	if err := r.DB.WithContext(ctx).
		Where("transaction_id = ?", txID).
		Order("timestamp ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]domain.VerificationEntry, len(rows))
	for i := range rows {
		entries[i] = mappers.ToDomainEntry(&rows[i])
	}
	return entries, nil
}
