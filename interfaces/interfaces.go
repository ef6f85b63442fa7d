// Package interfaces defines core abstractions for the MedXchange API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"time"

	"github.com/Prakhar-Bhagat/MedXchange/catalog/entities"
)

// CatalogQualityReport provides a summary of catalog quality issues
// found during a reload.
type CatalogQualityReport struct {
	DuplicateMedicineIDs        []int
	DuplicateGenericIDs         []int
	MedicinesWithoutComposition int
	MedicinesWithoutPrice       int
	GenericsWithoutPrice        int
	// First few offending IDs, for log readability
	MedicinesWithoutCompositionIDs []int
}

// DataStore defines the contract for the record store the engine consumes.
// It provides thread-safe access to the medicine and generic catalogs with
// atomic operations for zero-downtime reloads.
type DataStore interface {
	// Data retrieval methods
	GetMedicines() []entities.Medicine
	GetMedicinesMap() map[int]entities.Medicine
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time
	SetServerStartTime(startTime time.Time)

	// Store predicates consumed by the resolution engine
	FindBrandByPrefix(prefix string) (entities.Medicine, bool)
	FindBrandByContains(fragment string) (entities.Medicine, bool)
	FindCheaperSameComposition(composition string, excludeID int, maxPrice, minPrice float64) (entities.Medicine, bool)
	SearchBrandNames(prefix string, limit int) []string
	ListGenerics() []entities.Generic

	// Data update methods
	UpdateData(medicines []entities.Medicine, generics []entities.Generic,
		medicinesMap map[int]entities.Medicine)
	BeginUpdate() bool
	EndUpdate()
}

// CatalogLoader defines the contract for loading catalog data from
// external files into structured entities.
type CatalogLoader interface {
	// LoadCatalog reads and parses both catalog files
	LoadCatalog() ([]entities.Medicine, []entities.Generic, error)
}

// Scheduler defines the contract for job scheduling and health monitoring.
// It manages automated catalog reloads and system health checks.
type Scheduler interface {
	// Lifecycle management
	Start() error
	Stop()
}

// DataValidator defines the contract for input and catalog validation.
type DataValidator interface {
	// ValidateInput validates user input strings
	ValidateInput(input string) error

	// ValidateMedicine checks if a medicine entity is valid
	ValidateMedicine(m *entities.Medicine) error

	// ValidateCatalog performs integrity validation over a full reload
	ValidateCatalog(medicines []entities.Medicine, generics []entities.Generic) error

	// ReportCatalogQuality generates a quality report with all issues found
	ReportCatalogQuality(medicines []entities.Medicine, generics []entities.Generic) *CatalogQualityReport
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns current system health status
	HealthCheck() (status string, details map[string]any, httpStatus int)

	// CalculateNextUpdate returns the next scheduled reload time
	CalculateNextUpdate() time.Time
}
