package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "gymdesk/docs"

	"gymdesk/internal/cache"
	"gymdesk/internal/config"
	"gymdesk/internal/db"
	"gymdesk/internal/events"
	"gymdesk/internal/logger"
	"gymdesk/internal/membership"
	"gymdesk/internal/server"
)

// @title GymDesk API
// @version 1.0
// @description API for gym training scheduling, booking and memberships.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	logger.Init()
	logger.Info("Starting GymDesk application")
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	scheduleCache := cache.New(cfg.RedisAddr, cfg.ScheduleTTL)
	defer scheduleCache.Close()

	publisher := events.NewPublisher(cfg.AMQPURL)
	if publisher.Enabled() {
		logger.Info("Event publishing enabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := server.New(database, cfg, scheduleCache, publisher)

	go runMembershipSweeper(ctx, srv.Memberships, cfg.SweepInterval)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}

// runMembershipSweeper expires ended memberships on a fixed interval. The
// first pass runs at startup so a long-stopped instance catches up
// immediately.
func runMembershipSweeper(ctx context.Context, svc membership.Service, interval time.Duration) {
	sweep := func() {
		if _, err := svc.Sweep(ctx); err != nil {
			logger.Errorf("Membership sweep failed: %v", err)
		}
	}

	sweep()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep()
		}
	}
}
