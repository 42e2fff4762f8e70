package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "time/tzdata"

	"soccerspot/internal/app"
	"soccerspot/internal/config"
	"soccerspot/internal/database"
	"soccerspot/internal/pkg/logger"
	"soccerspot/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

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

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("database connect failed", zap.Error(err))
	}
	if !cfg.IsProduction() {
		if err := repository.AutoMigrate(db); err != nil {
			zl.Fatal("auto migrate failed", zap.Error(err))
		}
	}

	gateway := app.NewGateway(cfg.CinetPay)
	if gateway == nil {
		zl.Warn("CinetPay credentials missing, online payment disabled")
	}

	router, err := app.NewRouter(app.Deps{DB: db, Config: cfg, Logger: zl, Gateway: gateway})
	if err != nil {
		zl.Fatal("router setup failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		zl.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
