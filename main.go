package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Prakhar-Bhagat/MedXchange/catalog"
	"github.com/Prakhar-Bhagat/MedXchange/config"
	"github.com/Prakhar-Bhagat/MedXchange/data"
	"github.com/Prakhar-Bhagat/MedXchange/engine"
	"github.com/Prakhar-Bhagat/MedXchange/handlers"
	"github.com/Prakhar-Bhagat/MedXchange/health"
	"github.com/Prakhar-Bhagat/MedXchange/logging"
	"github.com/Prakhar-Bhagat/MedXchange/scheduler"
	"github.com/Prakhar-Bhagat/MedXchange/server"
	"github.com/Prakhar-Bhagat/MedXchange/validation"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables (optional, env may be set externally)
	if err := godotenv.Load(); err != nil {
		logging.Info("No .env file found, using environment variables")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize logging
	logging.InitLogger(cfg.LogDir, cfg.LogRetentionWeeks)

	logging.Info("Starting MedXchange API", "env", cfg.Env)

	// Create the data container and record startup time
	dataContainer := data.NewDataContainer()
	dataContainer.SetServerStartTime(time.Now())

	// Create dependencies
	loader := catalog.NewLoader(cfg.DataDir, cfg.MedicinesFile, cfg.GenericsFile)
	validator := validation.NewDataValidator()

	// Initial catalog load and scheduled reloads
	schedulerService := scheduler.NewScheduler(dataContainer, loader, validator)
	if err := schedulerService.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// Wire the resolution engine and HTTP layer
	resolver := engine.NewResolver(dataContainer, engine.NewMatcher(nil), engine.DefaultBrandAliases())
	healthChecker := health.NewHealthChecker(dataContainer)
	handler := handlers.NewHTTPHandler(dataContainer, validator, resolver, healthChecker)

	srv := server.NewServer(cfg, handler)

	// Start the server in a goroutine so shutdown signals can be handled
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info("Shutdown signal received")

	schedulerService.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}
}
