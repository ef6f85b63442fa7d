package validation

import (
	"testing"

	"github.com/Prakhar-Bhagat/MedXchange/catalog/entities"
)

func TestValidateInput(t *testing.T) {
	v := NewDataValidator()

	valid := []string{
		"Dolo",
		"Dolo 650",
		"Crocin Advance 500mg",
		"D'Cold Total",
		"Vicks Action-500",
	}
	for _, input := range valid {
		if err := v.ValidateInput(input); err != nil {
			t.Errorf("ValidateInput(%q) unexpected error: %v", input, err)
		}
	}

	invalid := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too short", "D"},
		{"too long", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"},
		{"too many words", "one two three four five six seven"},
		{"script tag", "<script>alert(1)</script>"},
		{"sql injection", "' or 1=1"},
		{"command injection", "dolo; rm"},
		{"path traversal", "../etc/passwd"},
		{"invalid characters", "dolo<>"},
	}
	for _, tt := range invalid {
		if err := v.ValidateInput(tt.input); err == nil {
			t.Errorf("%s: ValidateInput(%q) should fail", tt.name, tt.input)
		}
	}
}

func TestValidateMedicine(t *testing.T) {
	v := NewDataValidator()

	good := &entities.Medicine{ID: 1, BrandName: "Dolo 650", Price: 30}
	if err := v.ValidateMedicine(good); err != nil {
		t.Errorf("unexpected error for valid medicine: %v", err)
	}

	bad := []*entities.Medicine{
		nil,
		{ID: 0, BrandName: "No ID", Price: 10},
		{ID: 1, BrandName: "", Price: 10},
		{ID: 1, BrandName: "Negative", Price: -5},
	}
	for i, m := range bad {
		if err := v.ValidateMedicine(m); err == nil {
			t.Errorf("case %d: expected validation error for %+v", i, m)
		}
	}
}

func TestValidateCatalog(t *testing.T) {
	v := NewDataValidator()

	medicines := []entities.Medicine{
		{ID: 1, BrandName: "Dolo 650", SaltComposition: "Paracetamol 650mg", Price: 30},
	}
	generics := []entities.Generic{
		{ID: 1, GenericName: "Paracetamol 650mg Tablets", Price: 12},
	}

	if err := v.ValidateCatalog(medicines, generics); err != nil {
		t.Errorf("unexpected error for valid catalog: %v", err)
	}

	if err := v.ValidateCatalog(nil, generics); err == nil {
		t.Error("expected error for empty medicines")
	}
	if err := v.ValidateCatalog(medicines, nil); err == nil {
		t.Error("expected error for empty generics")
	}

	dup := append(medicines, entities.Medicine{ID: 1, BrandName: "Copy", Price: 5})
	if err := v.ValidateCatalog(dup, generics); err == nil {
		t.Error("expected error for duplicate medicine IDs")
	}
}

func TestReportCatalogQuality(t *testing.T) {
	v := NewDataValidator()

	medicines := []entities.Medicine{
		{ID: 1, BrandName: "Dolo 650", SaltComposition: "Paracetamol 650mg", Price: 30},
		{ID: 2, BrandName: "No Composition", SaltComposition: "", Price: 10},
		{ID: 3, BrandName: "Free Sample", SaltComposition: "Something", Price: 0},
		{ID: 3, BrandName: "Duplicate", SaltComposition: "Something", Price: 5},
	}
	generics := []entities.Generic{
		{ID: 1, GenericName: "Paracetamol Tablets", Price: 0},
	}

	report := v.ReportCatalogQuality(medicines, generics)

	if report.MedicinesWithoutComposition != 1 {
		t.Errorf("MedicinesWithoutComposition = %d, want 1", report.MedicinesWithoutComposition)
	}
	if report.MedicinesWithoutPrice != 1 {
		t.Errorf("MedicinesWithoutPrice = %d, want 1", report.MedicinesWithoutPrice)
	}
	if len(report.DuplicateMedicineIDs) != 1 || report.DuplicateMedicineIDs[0] != 3 {
		t.Errorf("DuplicateMedicineIDs = %v, want [3]", report.DuplicateMedicineIDs)
	}
	if report.GenericsWithoutPrice != 1 {
		t.Errorf("GenericsWithoutPrice = %d, want 1", report.GenericsWithoutPrice)
	}
}
