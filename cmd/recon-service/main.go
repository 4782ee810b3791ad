package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/LavaJover/shvark-recon-service/internal/app/background"
	"github.com/LavaJover/shvark-recon-service/internal/config"
	"github.com/LavaJover/shvark-recon-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-recon-service/internal/delivery/http/routes"
	"github.com/LavaJover/shvark-recon-service/internal/domain"
	"github.com/LavaJover/shvark-recon-service/internal/infrastructure/authstore"
	publisher "github.com/LavaJover/shvark-recon-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-recon-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-recon-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-recon-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-recon-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-recon-service/internal/infrastructure/rediscache"
	"github.com/LavaJover/shvark-recon-service/internal/notifier"
	"github.com/LavaJover/shvark-recon-service/internal/usecase/recon"
	usecase "github.com/LavaJover/shvark-recon-service/internal/usecase/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	slog.SetDefault(cfg.LogConfig.NewLogger())

	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.ReconDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.ReconDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init redis (ephemeral local caches)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Init kafka
	brokers := []string{fmt.Sprintf("%s:%s", cfg.Kafka.Host, cfg.Kafka.Port)}
	pub := publisher.NewDefaultKafkaPublisher(brokers)
	sub := publisher.NewDefaultKafkaSubscriber(brokers)

	// Init metrics
	reconMetrics := metrics.NewReconMetrics()

	// Init repos
	txRepo := repository.NewDefaultTransactionRepository(db)
	auditRepo := repository.NewDefaultAuditRepository(db)

	// Init authoritative store client
	storeClient := authstore.NewHTTPClient(cfg.AuthStore.BaseURL, cfg.AuthStore.Timeout)

	// Init sources: authoritative first, then each ephemeral cache
	sources := []domain.Source{
		authstore.NewStoreSource(storeClient, txRepo, domain.ScopeAll, reconMetrics),
		rediscache.NewCacheSource(redisClient, rediscache.CacheCheckout, reconMetrics),
		rediscache.NewCacheSource(redisClient, rediscache.CacheCart, reconMetrics),
		rediscache.NewCacheSource(redisClient, rediscache.CacheSession, reconMetrics),
		rediscache.NewCacheSource(redisClient, rediscache.CacheProofs, reconMetrics),
	}
	runner := recon.NewRunner(sources, reconMetrics)

	// Init notifier and transaction usecase
	changeNotifier := notifier.New()
	uc := usecase.NewDefaultTransactionUsecase(
		storeClient,
		txRepo,
		auditRepo,
		rediscache.NewProofRegistry(redisClient),
		runner,
		pub,
		changeNotifier,
		reconMetrics,
		cfg.Kafka.Topic,
	)

	// Background refresh loops
	tasks := background.NewBackgroundTasks(
		uc, sub,
		cfg.Kafka.Topic, cfg.Kafka.GroupID,
		cfg.Polling.UserInterval, cfg.Polling.AdminInterval,
	)
	tasks.StartAll(context.Background())

	// HTTP command surface
	app := fiber.New()
	app.Use(fiberlogger.New())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	txHandler := handlers.NewTransactionHandler(uc)
	routes.SetupTransactionRoutes(app, txHandler)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("recon service started on %s\n", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
