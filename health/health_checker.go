// Package health provides health checking functionality for the
// MedXchange API.
package health

import (
	"net/http"
	"time"

	"github.com/Prakhar-Bhagat/MedXchange/interfaces"
)

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore interfaces.DataStore
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(dataStore interfaces.DataStore) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		dataStore: dataStore,
	}
}

// HealthCheck returns current system health based on catalog availability
// and data age.
func (h *HealthCheckerImpl) HealthCheck() (string, map[string]any, int) {
	medicines := h.dataStore.GetMedicines()
	generics := h.dataStore.ListGenerics()
	lastUpdate := h.dataStore.GetLastUpdated()
	isUpdating := h.dataStore.IsUpdating()

	dataAge := time.Since(lastUpdate)

	var status string
	var httpStatus int
	switch {
	case len(medicines) == 0 || len(generics) == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case dataAge > 48*time.Hour:
		status = "degraded"
		httpStatus = http.StatusOK
	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	details := map[string]any{
		"medicine_count": len(medicines),
		"generic_count":  len(generics),
		"last_update":    lastUpdate.Format(time.RFC3339),
		"next_update":    h.CalculateNextUpdate().Format(time.RFC3339),
		"data_age_hours": dataAge.Hours(),
		"is_updating":    isUpdating,
		"uptime":         time.Since(h.dataStore.GetServerStartTime()).String(),
	}

	return status, details, httpStatus
}

// CalculateNextUpdate returns the next scheduled catalog reload time.
// Reloads run at 06:00 and 18:00 local time.
func (h *HealthCheckerImpl) CalculateNextUpdate() time.Time {
	now := time.Now()

	sixAM := time.Date(now.Year(), now.Month(), now.Day(), 6, 0, 0, 0, now.Location())
	sixPM := time.Date(now.Year(), now.Month(), now.Day(), 18, 0, 0, 0, now.Location())

	if now.Before(sixAM) {
		return sixAM
	}
	if now.Before(sixPM) {
		return sixPM
	}

	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 6, 0, 0, 0, tomorrow.Location())
}
