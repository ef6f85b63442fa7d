// Package validation provides input and catalog validation for the
// MedXchange API.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Prakhar-Bhagat/MedXchange/catalog/entities"
	"github.com/Prakhar-Bhagat/MedXchange/interfaces"
	"github.com/Prakhar-Bhagat/MedXchange/logging"
)

// Pre-compiled regex patterns for performance optimization
// Compiled once at package initialization and reused for all validations
var (
	// Input validation: letters, numbers, spaces, and safe punctuation
	inputRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+'%/()]+$`)

	// Dangerous patterns as strings (strings.Contains is faster than
	// regex for plain substring matching)
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "onload=", "onerror=",
		"eval(", "expression(",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from",
		"insert into", "--", "/*", "*/",
		// Command injection patterns
		"; ", "| ", "& ", "`", "$(", "${",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
	}
)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{}
}

// ValidateInput validates user-supplied search strings
func (v *DataValidatorImpl) ValidateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if len(input) < 2 {
		return fmt.Errorf("input too short: minimum 2 characters")
	}

	if len(input) > 60 {
		return fmt.Errorf("input too long: maximum 60 characters")
	}

	// Word count validation to prevent abuse with many short words
	if len(strings.Fields(input)) > 6 {
		return fmt.Errorf("search query too complex: maximum 6 words allowed")
	}

	lowerInput := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return fmt.Errorf("input contains potentially dangerous content")
		}
	}

	if !inputRegex.MatchString(input) {
		return fmt.Errorf("input contains invalid characters. Only letters, numbers, spaces, and common punctuation are allowed")
	}

	return nil
}

// ValidateMedicine checks if a medicine entity is valid
func (v *DataValidatorImpl) ValidateMedicine(m *entities.Medicine) error {
	if m == nil {
		return fmt.Errorf("medicine is nil")
	}

	if m.ID <= 0 {
		return fmt.Errorf("invalid medicine ID: %d", m.ID)
	}

	if strings.TrimSpace(m.BrandName) == "" {
		return fmt.Errorf("empty brand name for medicine %d", m.ID)
	}

	if len(m.BrandName) > 200 {
		return fmt.Errorf("brand name too long for medicine %d: %d characters", m.ID, len(m.BrandName))
	}

	if m.Price < 0 {
		return fmt.Errorf("negative price for medicine %d: %f", m.ID, m.Price)
	}

	return nil
}

// ValidateCatalog performs integrity validation over a full reload
func (v *DataValidatorImpl) ValidateCatalog(medicines []entities.Medicine, generics []entities.Generic) error {
	if len(medicines) == 0 {
		return fmt.Errorf("no medicines found")
	}

	idMap := make(map[int]bool)
	for i := range medicines {
		med := &medicines[i]
		if idMap[med.ID] {
			return fmt.Errorf("duplicate medicine ID found: %d", med.ID)
		}
		idMap[med.ID] = true

		if err := v.ValidateMedicine(med); err != nil {
			return fmt.Errorf("invalid medicine %d: %w", med.ID, err)
		}
	}

	if len(generics) == 0 {
		return fmt.Errorf("no generics found")
	}

	genericIDMap := make(map[int]bool)
	for _, gen := range generics {
		if genericIDMap[gen.ID] {
			return fmt.Errorf("duplicate generic ID found: %d", gen.ID)
		}
		genericIDMap[gen.ID] = true

		if strings.TrimSpace(gen.GenericName) == "" {
			return fmt.Errorf("empty generic name for record %d", gen.ID)
		}
	}

	return nil
}

// ReportCatalogQuality generates a quality report with all issues found.
// Quality issues are logged, never fatal; a catalog row with a missing
// composition simply never matches.
func (v *DataValidatorImpl) ReportCatalogQuality(medicines []entities.Medicine, generics []entities.Generic) *interfaces.CatalogQualityReport {
	report := &interfaces.CatalogQualityReport{
		DuplicateMedicineIDs:           []int{},
		DuplicateGenericIDs:            []int{},
		MedicinesWithoutCompositionIDs: []int{},
	}

	idMap := make(map[int]bool)
	for _, med := range medicines {
		if idMap[med.ID] {
			report.DuplicateMedicineIDs = append(report.DuplicateMedicineIDs, med.ID)
		}
		idMap[med.ID] = true

		if strings.TrimSpace(med.SaltComposition) == "" {
			report.MedicinesWithoutComposition++
			if len(report.MedicinesWithoutCompositionIDs) < 10 {
				report.MedicinesWithoutCompositionIDs = append(report.MedicinesWithoutCompositionIDs, med.ID)
			}
		}
		if med.Price == 0 {
			report.MedicinesWithoutPrice++
		}
	}

	genericIDMap := make(map[int]bool)
	for _, gen := range generics {
		if genericIDMap[gen.ID] {
			report.DuplicateGenericIDs = append(report.DuplicateGenericIDs, gen.ID)
		}
		genericIDMap[gen.ID] = true

		if gen.Price == 0 {
			report.GenericsWithoutPrice++
		}
	}

	if len(report.DuplicateMedicineIDs) > 0 {
		logging.Warn("Duplicate medicine IDs detected",
			"count", len(report.DuplicateMedicineIDs),
			"ids", report.DuplicateMedicineIDs,
		)
	}

	return report
}
