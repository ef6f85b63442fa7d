// Package scheduler provides automated catalog reloads and health
// monitoring for the MedXchange API. It handles cron-based reloads and
// coordinates catalog refresh operations with the data container using
// dependency injection.
package scheduler

import (
	"fmt"
	"time"

	"github.com/Prakhar-Bhagat/MedXchange/catalog/entities"
	"github.com/Prakhar-Bhagat/MedXchange/interfaces"
	"github.com/Prakhar-Bhagat/MedXchange/logging"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles catalog reloads and health monitoring using
// dependency injection
type Scheduler struct {
	dataStore interfaces.DataStore
	loader    interfaces.CatalogLoader
	validator interfaces.DataValidator
	scheduler *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(dataStore interfaces.DataStore, loader interfaces.CatalogLoader, validator interfaces.DataValidator) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		loader:    loader,
		validator: validator,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start performs the initial catalog load and schedules reloads
func (s *Scheduler) Start() error {
	// Initial load
	if err := s.reloadCatalog(); err != nil {
		logging.Error("Failed to perform initial catalog load", "error", err)
		return fmt.Errorf("initial catalog load failed: %w", err)
	}

	// Schedule reloads at 06:00 and 18:00 daily
	_, err := s.scheduler.Every(1).Days().At("06:00;18:00").Do(func() {
		if err := s.reloadCatalog(); err != nil {
			logging.Error("Failed to reload catalog", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule reloads", "error", err)
		return fmt.Errorf("failed to schedule reloads: %w", err)
	}

	s.scheduler.StartAsync()

	// Start health monitoring
	s.startHealthMonitoring()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// reloadCatalog performs a complete catalog reload using injected
// dependencies
func (s *Scheduler) reloadCatalog() error {
	// Prevent concurrent reloads
	if !s.dataStore.BeginUpdate() {
		logging.Info("Reload already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	logging.Info("Starting catalog reload")
	start := time.Now()

	newMedicines, newGenerics, err := s.loader.LoadCatalog()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if err := s.validator.ValidateCatalog(newMedicines, newGenerics); err != nil {
		return fmt.Errorf("catalog validation failed: %w", err)
	}

	report := s.validator.ReportCatalogQuality(newMedicines, newGenerics)
	if report.MedicinesWithoutComposition > 0 {
		logging.Warn("Medicines without compositions",
			"count", report.MedicinesWithoutComposition,
			"ids", report.MedicinesWithoutCompositionIDs,
		)
	}

	newMedicinesMap := make(map[int]entities.Medicine, len(newMedicines))
	for i := range newMedicines {
		newMedicinesMap[newMedicines[i].ID] = newMedicines[i]
	}

	// Atomic swap (zero downtime replacement)
	s.dataStore.UpdateData(newMedicines, newGenerics, newMedicinesMap)

	elapsed := time.Since(start)
	logging.Info("Catalog reload completed",
		"duration", elapsed.String(),
		"medicine_count", len(newMedicines),
		"generic_count", len(newGenerics),
	)

	return nil
}

// startHealthMonitoring monitors the freshness of the catalog data
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			lastUpdate := s.dataStore.GetLastUpdated()
			if time.Since(lastUpdate) > 25*time.Hour {
				logging.Warn("Catalog hasn't been reloaded in over 25 hours")
			}
		}
	}()
}
