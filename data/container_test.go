package data

import (
	"reflect"
	"testing"
	"time"

	"github.com/Prakhar-Bhagat/MedXchange/catalog/entities"
)

func seededContainer() *DataContainer {
	dc := NewDataContainer()
	medicines := []entities.Medicine{
		{ID: 1, BrandName: "Dolo 650", SaltComposition: "Paracetamol 650mg", Manufacturer: "Micro Labs", Price: 30},
		{ID: 2, BrandName: "Calpol 650", SaltComposition: "Paracetamol 650mg", Manufacturer: "GSK", Price: 25},
		{ID: 3, BrandName: "Paracip 650", SaltComposition: "Paracetamol 650mg", Manufacturer: "Cipla", Price: 15},
		{ID: 4, BrandName: "Junk 650", SaltComposition: "Paracetamol 650mg", Manufacturer: "Unknown", Price: 5},
		{ID: 5, BrandName: "Brufen 400", SaltComposition: "Ibuprofen 400mg", Manufacturer: "Abbott", Price: 20},
	}
	generics := []entities.Generic{
		{ID: 1, GenericName: "Paracetamol 650mg Tablets", Price: 12},
	}
	medicinesMap := make(map[int]entities.Medicine, len(medicines))
	for _, m := range medicines {
		medicinesMap[m.ID] = m
	}
	dc.UpdateData(medicines, generics, medicinesMap)
	return dc
}

func TestNewDataContainerEmpty(t *testing.T) {
	dc := NewDataContainer()

	if got := dc.GetMedicines(); len(got) != 0 {
		t.Errorf("expected empty medicines, got %d", len(got))
	}
	if got := dc.ListGenerics(); len(got) != 0 {
		t.Errorf("expected empty generics, got %d", len(got))
	}
	if got := dc.GetMedicinesMap(); len(got) != 0 {
		t.Errorf("expected empty map, got %d", len(got))
	}
	if !dc.GetLastUpdated().IsZero() {
		t.Error("expected zero lastUpdated before first reload")
	}
}

func TestUpdateData(t *testing.T) {
	dc := seededContainer()

	if got := len(dc.GetMedicines()); got != 5 {
		t.Errorf("medicine count = %d, want 5", got)
	}
	if got := len(dc.ListGenerics()); got != 1 {
		t.Errorf("generic count = %d, want 1", got)
	}
	if dc.GetLastUpdated().IsZero() {
		t.Error("lastUpdated should be set after UpdateData")
	}
	if med, ok := dc.GetMedicinesMap()[3]; !ok || med.BrandName != "Paracip 650" {
		t.Errorf("map lookup for ID 3 failed, got %+v", med)
	}
}

func TestFindBrandByPrefix(t *testing.T) {
	dc := seededContainer()

	med, ok := dc.FindBrandByPrefix("dolo")
	if !ok {
		t.Fatal("expected prefix match for dolo")
	}
	if med.BrandName != "Dolo 650" {
		t.Errorf("BrandName = %q, want Dolo 650", med.BrandName)
	}

	if _, ok := dc.FindBrandByPrefix("zzz"); ok {
		t.Error("unexpected match for zzz")
	}
	if _, ok := dc.FindBrandByPrefix("  "); ok {
		t.Error("blank term must not match")
	}
}

func TestFindBrandByPrefixAlphabeticalTieBreak(t *testing.T) {
	dc := NewDataContainer()
	medicines := []entities.Medicine{
		{ID: 1, BrandName: "Dolo 650", Price: 30},
		{ID: 2, BrandName: "Dolo 1000", Price: 45},
	}
	dc.UpdateData(medicines, nil, nil)

	med, ok := dc.FindBrandByPrefix("dolo")
	if !ok {
		t.Fatal("expected a match")
	}
	if med.BrandName != "Dolo 1000" {
		t.Errorf("expected alphabetically first match, got %q", med.BrandName)
	}
}

func TestFindBrandByContains(t *testing.T) {
	dc := seededContainer()

	// "cip" is not a prefix of any brand but appears inside Paracip.
	med, ok := dc.FindBrandByContains("cip")
	if !ok {
		t.Fatal("expected contains match for cip")
	}
	if med.BrandName != "Paracip 650" {
		t.Errorf("BrandName = %q, want Paracip 650", med.BrandName)
	}
}

func TestFindCheaperSameComposition(t *testing.T) {
	dc := seededContainer()

	// From Dolo 650 (price 30): the cheapest same-composition record above
	// the noise floor is Paracip at 15. Junk at 5 is below the floor.
	med, ok := dc.FindCheaperSameComposition("Paracetamol 650mg", 1, 30, 10)
	if !ok {
		t.Fatal("expected a cheaper substitute")
	}
	if med.ID != 3 {
		t.Errorf("substitute ID = %d, want 3 (Paracip)", med.ID)
	}
}

func TestFindCheaperSameCompositionExcludesSelfAndBounds(t *testing.T) {
	dc := seededContainer()

	// From Paracip (price 15): Junk is below the floor, everything else
	// same-composition costs more. No substitute.
	if _, ok := dc.FindCheaperSameComposition("Paracetamol 650mg", 3, 15, 10); ok {
		t.Error("expected no substitute cheaper than 15 above the floor")
	}

	// Different composition never matches.
	if _, ok := dc.FindCheaperSameComposition("Ibuprofen 400mg", 5, 20, 10); ok {
		t.Error("expected no substitute for the only ibuprofen record")
	}
}

func TestSearchBrandNames(t *testing.T) {
	dc := NewDataContainer()
	medicines := []entities.Medicine{
		{ID: 1, BrandName: "Dolo 650"},
		{ID: 2, BrandName: "Dolo 1000"},
		{ID: 3, BrandName: "Dolo 650"}, // duplicate name, different pack
		{ID: 4, BrandName: "Brufen 400"},
	}
	dc.UpdateData(medicines, nil, nil)

	got := dc.SearchBrandNames("dolo", 10)
	expected := []string{"Dolo 1000", "Dolo 650"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("SearchBrandNames = %v, want %v", got, expected)
	}

	if got := dc.SearchBrandNames("dolo", 1); len(got) != 1 {
		t.Errorf("limit not applied, got %v", got)
	}
	if got := dc.SearchBrandNames("", 10); len(got) != 0 {
		t.Errorf("empty prefix should return nothing, got %v", got)
	}
}

func TestBeginEndUpdate(t *testing.T) {
	dc := NewDataContainer()

	if !dc.BeginUpdate() {
		t.Fatal("first BeginUpdate should succeed")
	}
	if dc.BeginUpdate() {
		t.Error("concurrent BeginUpdate should be rejected")
	}
	if !dc.IsUpdating() {
		t.Error("IsUpdating should report true during a reload")
	}

	dc.EndUpdate()
	if dc.IsUpdating() {
		t.Error("IsUpdating should report false after EndUpdate")
	}
	if !dc.BeginUpdate() {
		t.Error("BeginUpdate should succeed again after EndUpdate")
	}
	dc.EndUpdate()
}

func TestServerStartTime(t *testing.T) {
	dc := NewDataContainer()
	start := time.Now()
	dc.SetServerStartTime(start)

	if got := dc.GetServerStartTime(); !got.Equal(start) {
		t.Errorf("GetServerStartTime = %v, want %v", got, start)
	}
}
