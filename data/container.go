// Package data provides thread-safe storage for the medicine and generic
// catalogs. The DataContainer uses atomic pointers for zero-downtime
// reloads and implements the store predicates the resolution engine
// consumes.
package data

import (
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Prakhar-Bhagat/MedXchange/catalog/entities"
	"github.com/Prakhar-Bhagat/MedXchange/interfaces"
	"github.com/Prakhar-Bhagat/MedXchange/logging"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds both catalogs with atomic pointers for zero-downtime
// updates. Readers always see a complete, consistent snapshot.
type DataContainer struct {
	medicines       atomic.Value // []entities.Medicine
	generics        atomic.Value // []entities.Generic
	medicinesMap    atomic.Value // map[int]entities.Medicine
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a new DataContainer with empty data
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.medicines.Store(make([]entities.Medicine, 0))
	dc.generics.Store(make([]entities.Generic, 0))
	dc.medicinesMap.Store(make(map[int]entities.Medicine))
	dc.lastUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// Thread-safe getters with type check

// GetMedicines returns the list of brand medicines
func (dc *DataContainer) GetMedicines() []entities.Medicine {
	if v := dc.medicines.Load(); v != nil {
		if medicines, ok := v.([]entities.Medicine); ok {
			return medicines
		}
	}

	logging.Warn("Medicines list is empty or invalid")
	return []entities.Medicine{}
}

// GetMedicinesMap returns the medicines map for O(1) lookups
func (dc *DataContainer) GetMedicinesMap() map[int]entities.Medicine {
	if v := dc.medicinesMap.Load(); v != nil {
		if medicinesMap, ok := v.(map[int]entities.Medicine); ok {
			return medicinesMap
		}
	}

	logging.Warn("MedicinesMap is empty or invalid")
	return make(map[int]entities.Medicine)
}

// ListGenerics returns the full subsidized-generic catalog for scanning.
// Iteration order is load order, which is stable between reloads of the
// same file; the matcher's tie-breaks depend on it.
func (dc *DataContainer) ListGenerics() []entities.Generic {
	if v := dc.generics.Load(); v != nil {
		if generics, ok := v.([]entities.Generic); ok {
			return generics
		}
	}

	logging.Warn("Generics list is empty or invalid")
	return []entities.Generic{}
}

// GetLastUpdated returns the timestamp of the last catalog reload
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true if a catalog reload is currently in progress
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// Store predicates consumed by the resolution engine

// FindBrandByPrefix returns the alphabetically first medicine whose brand
// name starts with the given prefix, case-insensitive.
func (dc *DataContainer) FindBrandByPrefix(prefix string) (entities.Medicine, bool) {
	return dc.findBrand(prefix, strings.HasPrefix)
}

// FindBrandByContains is the looser fallback when prefix match fails:
// the alphabetically first medicine whose brand name contains the
// fragment anywhere, case-insensitive.
func (dc *DataContainer) FindBrandByContains(fragment string) (entities.Medicine, bool) {
	return dc.findBrand(fragment, strings.Contains)
}

func (dc *DataContainer) findBrand(term string, match func(name, term string) bool) (entities.Medicine, bool) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return entities.Medicine{}, false
	}

	var best entities.Medicine
	found := false
	for _, med := range dc.GetMedicines() {
		if !match(strings.ToLower(med.BrandName), term) {
			continue
		}
		if !found || strings.ToLower(med.BrandName) < strings.ToLower(best.BrandName) {
			best = med
			found = true
		}
	}
	return best, found
}

// FindCheaperSameComposition returns the cheapest medicine whose raw
// composition text is byte-for-byte equal to the given composition,
// excluding the record itself, with minPrice < price < maxPrice. Ties
// keep the first record encountered.
func (dc *DataContainer) FindCheaperSameComposition(composition string, excludeID int, maxPrice, minPrice float64) (entities.Medicine, bool) {
	var best entities.Medicine
	found := false
	for _, med := range dc.GetMedicines() {
		if med.ID == excludeID || med.SaltComposition != composition {
			continue
		}
		if med.Price >= maxPrice || med.Price <= minPrice {
			continue
		}
		if !found || med.Price < best.Price {
			best = med
			found = true
		}
	}
	return best, found
}

// SearchBrandNames returns up to limit distinct brand names starting with
// the given prefix, sorted alphabetically. Used for autocomplete.
func (dc *DataContainer) SearchBrandNames(prefix string, limit int) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" || limit <= 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, med := range dc.GetMedicines() {
		if !strings.HasPrefix(strings.ToLower(med.BrandName), prefix) {
			continue
		}
		if seen[med.BrandName] {
			continue
		}
		seen[med.BrandName] = true
		names = append(names, med.BrandName)
	}

	sort.Strings(names)
	if len(names) > limit {
		names = names[:limit]
	}
	return names
}

// Data update methods

// UpdateData atomically replaces both catalogs (zero downtime swap)
func (dc *DataContainer) UpdateData(medicines []entities.Medicine, generics []entities.Generic,
	medicinesMap map[int]entities.Medicine) {

	dc.medicines.Store(medicines)
	dc.generics.Store(generics)
	dc.medicinesMap.Store(medicinesMap)
	dc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a catalog reload.
// Returns true if the reload can proceed, false if another is in progress
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a catalog reload
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
