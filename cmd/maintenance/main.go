package main

import (
	"context"
	"log"
	"time"

	"soccerspot/internal/config"
	"soccerspot/internal/database"
	"soccerspot/internal/pkg/logger"
	"soccerspot/internal/repository"

	"go.uber.org/zap"
)

// Invoices left unpaid this long are treated as abandoned.
const staleInvoiceAge = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("db connect failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	now := time.Now()

	promos, err := repository.NewPromotionRepository(db).DeactivateExpired(ctx, now)
	if err != nil {
		zl.Fatal("deactivate expired promotions failed", zap.Error(err))
	}

	invoices, err := repository.NewPaymentRepository(db).ExpireStale(ctx, now.Add(-staleInvoiceAge))
	if err != nil {
		zl.Fatal("expire stale invoices failed", zap.Error(err))
	}

	zl.Info("maintenance completed",
		zap.Int64("promotions_deactivated", promos),
		zap.Int64("invoices_expired", invoices),
	)
}
