// Package main provides the entry point for the LinkRewards service.
//
//	@title			LinkRewards API
//	@version		1.0.0
//	@description	URL shortener with per-click seller rewards pending fraud validation.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
package main

import (
	"LinkRewards-Backend/internal/config"
	"LinkRewards-Backend/internal/database"
	"LinkRewards-Backend/internal/fraud"
	httpHandler "LinkRewards-Backend/internal/handler/http"
	"LinkRewards-Backend/internal/repository/postgres"
	"LinkRewards-Backend/internal/reward"
	"LinkRewards-Backend/internal/service"
	"LinkRewards-Backend/pkg/logger"
	"context"
	"fmt"
	lg "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	defer func() {
		if err := log.Sync(); err != nil {
			lg.Printf("ERROR: failed to sync zap logger: %v\n", err)
		}
	}()

	log.Info("starting LinkRewards service", zap.String("env", cfg.Env))

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, log); err != nil {
			log.Error("failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations if enabled
	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db, log); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
	} else {
		log.Info("skipping database migrations (auto_migrate: false)")
	}

	// Initialize storage and services
	storage := postgres.New(db, log)

	oracle := fraud.NewSimulatedOracle(fraud.DefaultSimulatedConfig(), log)
	processor := reward.NewProcessor(storage, oracle, log, reward.Config{
		WorkerCount:     cfg.Reward.WorkerCount,
		BufferSize:      cfg.Reward.BufferSize,
		OracleTimeout:   cfg.Reward.OracleTimeout,
		ShutdownTimeout: cfg.Reward.ShutdownTimeout,
		RewardCents:     cfg.Shortener.RewardPerClickCents,
	})
	if err := processor.Start(); err != nil {
		log.Fatal("failed to start reward processor", zap.Error(err))
	}

	registrar := service.NewRegistrar(storage, &cfg.Shortener, log)
	redirector := service.NewRedirector(storage, processor, log)
	statsService := service.NewStatsService(storage, log)

	// Create HTTP server
	apiServer := httpHandler.NewServer(storage, registrar, redirector, statsService, processor, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPServer.Port),
		Handler:      apiServer.SetupRoutes(),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	log.Info("starting HTTP server", zap.String("address", httpServer.Addr))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down LinkRewards service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Reward.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown HTTP server", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	// Drain in-flight reward resolutions before exiting.
	if err := processor.Stop(); err != nil {
		log.Error("failed to stop reward processor", zap.Error(err))
	}
}
