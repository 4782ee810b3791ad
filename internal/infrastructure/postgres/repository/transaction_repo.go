package repository

import (
	"context"
	"errors"
	"time"

	"github.com/LavaJover/shvark-recon-service/internal/domain"
	"github.com/LavaJover/shvark-recon-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-recon-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

// SaveSnapshot upserts the reconciled set. Records are never deleted here:
// transactions only ever transition to a terminal status, so stale rows are
// overwritten by newer runs and missing ones simply keep their last state.
func (r *DefaultTransactionRepository) SaveSnapshot(ctx context.Context, txs []*domain.Transaction, observedAt time.Time) error {
	if len(txs) == 0 {
		return nil
	}

	rows := make([]*models.TransactionModel, len(txs))
	for i, tx := range txs {
		rows[i] = mappers.ToGORMTransaction(tx, observedAt)
	}

	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&rows).Error
}

func (r *DefaultTransactionRepository) GetByID(ctx context.Context, txID string) (*domain.Transaction, error) {
	var model models.TransactionModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", txID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return mappers.ToDomainTransaction(&model), nil
}

func (r *DefaultTransactionRepository) List(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	query := r.DB.WithContext(ctx).Model(&models.TransactionModel{}).Order("created_at DESC")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var rows []models.TransactionModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	txs := make([]*domain.Transaction, len(rows))
	for i := range rows {
		txs[i] = mappers.ToDomainTransaction(&rows[i])
	}
	return txs, nil
}

func (r *DefaultTransactionRepository) LastSnapshot(ctx context.Context) ([]domain.CandidateRecord, time.Time, error) {
	var rows []models.TransactionModel
	if err := r.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, time.Time{}, err
	}

	var snapshotAt time.Time
	candidates := make([]domain.CandidateRecord, len(rows))
	for i := range rows {
		candidates[i] = mappers.ToFallbackCandidate(&rows[i])
		if rows[i].ObservedAt.After(snapshotAt) {
			snapshotAt = rows[i].ObservedAt
		}
	}
	return candidates, snapshotAt, nil
}
