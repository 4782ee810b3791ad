package postgres

import (
	"log"

	"github.com/LavaJover/shvark-recon-service/internal/config"
	"github.com/LavaJover/shvark-recon-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.ReconConfig) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.ReconDB.Dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.TransactionModel{}, &models.VerificationEntryModel{})

	return db
}
