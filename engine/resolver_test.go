package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/Prakhar-Bhagat/MedXchange/catalog/entities"
)

// fakeStore is an in-memory DataStore stand-in with the same lookup
// semantics as the real container, sized for test fixtures.
type fakeStore struct {
	medicines []entities.Medicine
	generics  []entities.Generic
}

func (f *fakeStore) GetMedicines() []entities.Medicine { return f.medicines }

func (f *fakeStore) GetMedicinesMap() map[int]entities.Medicine {
	m := make(map[int]entities.Medicine, len(f.medicines))
	for _, med := range f.medicines {
		m[med.ID] = med
	}
	return m
}

func (f *fakeStore) GetLastUpdated() time.Time        { return time.Now() }
func (f *fakeStore) IsUpdating() bool                 { return false }
func (f *fakeStore) GetServerStartTime() time.Time    { return time.Now() }
func (f *fakeStore) SetServerStartTime(t time.Time)   {}
func (f *fakeStore) ListGenerics() []entities.Generic { return f.generics }

func (f *fakeStore) FindBrandByPrefix(prefix string) (entities.Medicine, bool) {
	prefix = strings.ToLower(prefix)
	for _, med := range f.medicines {
		if strings.HasPrefix(strings.ToLower(med.BrandName), prefix) {
			return med, true
		}
	}
	return entities.Medicine{}, false
}

func (f *fakeStore) FindBrandByContains(fragment string) (entities.Medicine, bool) {
	fragment = strings.ToLower(fragment)
	for _, med := range f.medicines {
		if strings.Contains(strings.ToLower(med.BrandName), fragment) {
			return med, true
		}
	}
	return entities.Medicine{}, false
}

func (f *fakeStore) FindCheaperSameComposition(composition string, excludeID int, maxPrice, minPrice float64) (entities.Medicine, bool) {
	var best entities.Medicine
	found := false
	for _, med := range f.medicines {
		if med.ID == excludeID || med.SaltComposition != composition {
			continue
		}
		if med.Price <= minPrice || med.Price >= maxPrice {
			continue
		}
		if !found || med.Price < best.Price {
			best = med
			found = true
		}
	}
	return best, found
}

func (f *fakeStore) SearchBrandNames(prefix string, limit int) []string {
	names := []string{}
	prefix = strings.ToLower(prefix)
	for _, med := range f.medicines {
		if strings.HasPrefix(strings.ToLower(med.BrandName), prefix) {
			names = append(names, med.BrandName)
			if len(names) == limit {
				break
			}
		}
	}
	return names
}

func (f *fakeStore) UpdateData(medicines []entities.Medicine, generics []entities.Generic,
	medicinesMap map[int]entities.Medicine) {
	f.medicines = medicines
	f.generics = generics
}

func (f *fakeStore) BeginUpdate() bool { return true }
func (f *fakeStore) EndUpdate()       {}

func newTestResolver(store *fakeStore) *Resolver {
	return NewResolver(store, NewMatcher(nil), DefaultBrandAliases())
}

func TestResolveBrandNotFound(t *testing.T) {
	resolver := newTestResolver(&fakeStore{})

	result := resolver.Resolve("Nonexistium")
	if result.Found {
		t.Error("expected found=false for unknown brand")
	}
	if result.Message != "No brand found matching 'Nonexistium'" {
		t.Errorf("unexpected message %q", result.Message)
	}
	if result.Substitute != nil || result.GovMatch != nil {
		t.Error("unresolved brand must carry no alternatives")
	}
}

func TestResolveGenericMatchWithSavings(t *testing.T) {
	store := &fakeStore{
		medicines: []entities.Medicine{
			{ID: 1, BrandName: "Dolo 650", SaltComposition: "Paracetamol 650mg", Manufacturer: "Micro Labs", Price: 30},
		},
		generics: []entities.Generic{
			{ID: 10, GenericName: "Paracetamol 650mg Tablets", Price: 12, UnitLabel: "Per Pack"},
		},
	}
	resolver := newTestResolver(store)

	result := resolver.Resolve("Dolo")
	if !result.Found {
		t.Fatal("expected brand to resolve")
	}
	if result.SearchedBrand != "Dolo 650" {
		t.Errorf("SearchedBrand = %q, want Dolo 650", result.SearchedBrand)
	}
	if result.GenericName != "paracetamol" {
		t.Errorf("GenericName = %q, want paracetamol", result.GenericName)
	}
	if result.GovMatch == nil {
		t.Fatal("expected a generic match")
	}
	if result.GovMatch.Name != "Paracetamol 650mg Tablets" {
		t.Errorf("GovMatch.Name = %q", result.GovMatch.Name)
	}
	if result.GovMatch.Savings != 18.0 {
		t.Errorf("GovMatch.Savings = %v, want 18.0", result.GovMatch.Savings)
	}
	if result.GovMatch.Qty != "Per Pack" {
		t.Errorf("GovMatch.Qty = %q, want the catalog unit label", result.GovMatch.Qty)
	}
	if result.GovMatch.DosageWarning != nil {
		t.Errorf("strengths agree, unexpected warning %q", *result.GovMatch.DosageWarning)
	}
	if !result.AlternativesFound {
		t.Error("AlternativesFound should be true")
	}
	if result.Message != "Cheaper alternatives found." {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestResolveDosageGateRejectsWrongStrength(t *testing.T) {
	store := &fakeStore{
		medicines: []entities.Medicine{
			{ID: 1, BrandName: "Dolo 650", SaltComposition: "Paracetamol 650mg", Manufacturer: "Micro Labs", Price: 30},
		},
		generics: []entities.Generic{
			{ID: 10, GenericName: "Paracetamol 125mg Tablets", Price: 8},
		},
	}
	resolver := newTestResolver(store)

	result := resolver.Resolve("Dolo")
	if !result.Found {
		t.Fatal("expected brand to resolve")
	}
	if result.GovMatch != nil {
		t.Errorf("125mg generic must not match a 650mg brand, got %q", result.GovMatch.Name)
	}
	if result.AlternativesFound {
		t.Error("no alternatives expected")
	}
	if result.Message != "No safe alternatives found." {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestResolveStrengthFromBrandName(t *testing.T) {
	// Composition carries no strength; the brand name does.
	store := &fakeStore{
		medicines: []entities.Medicine{
			{ID: 1, BrandName: "Calpol 500mg", SaltComposition: "Paracetamol", Price: 20},
		},
		generics: []entities.Generic{
			{ID: 10, GenericName: "Paracetamol 500mg Tablets", Price: 9},
		},
	}
	resolver := newTestResolver(store)

	result := resolver.Resolve("Calpol")
	if result.GovMatch == nil {
		t.Fatal("expected a generic match")
	}
	if result.GovMatch.DosageWarning != nil {
		t.Errorf("unexpected warning %q", *result.GovMatch.DosageWarning)
	}
}

func TestResolveSubstitute(t *testing.T) {
	store := &fakeStore{
		medicines: []entities.Medicine{
			{ID: 1, BrandName: "Crocin Advance", SaltComposition: "Paracetamol 500mg", Manufacturer: "GSK", Price: 30},
			{ID: 2, BrandName: "Paracip 500", SaltComposition: "Paracetamol 500mg", Manufacturer: "Cipla", Price: 15},
			// Below the noise floor, must be ignored.
			{ID: 3, BrandName: "Junk Row", SaltComposition: "Paracetamol 500mg", Manufacturer: "Unknown", Price: 2},
		},
	}
	resolver := newTestResolver(store)

	result := resolver.Resolve("Crocin")
	if result.Substitute == nil {
		t.Fatal("expected a commercial substitute")
	}
	if result.Substitute.Name != "Paracip 500" {
		t.Errorf("Substitute.Name = %q, want Paracip 500", result.Substitute.Name)
	}
	if result.Substitute.Savings != 15.0 {
		t.Errorf("Substitute.Savings = %v, want 15.0", result.Substitute.Savings)
	}
	if !result.AlternativesFound {
		t.Error("AlternativesFound should be true")
	}
}

func TestResolveBrandAlias(t *testing.T) {
	store := &fakeStore{
		medicines: []entities.Medicine{
			{ID: 1, BrandName: "Dolo 650", SaltComposition: "Paracetamol 650mg", Price: 30},
		},
	}
	resolver := newTestResolver(store)

	result := resolver.Resolve("Tylenol")
	if !result.Found {
		t.Fatal("expected alias tylenol to resolve to Dolo")
	}
	if result.SearchedBrand != "Dolo 650" {
		t.Errorf("SearchedBrand = %q, want Dolo 650", result.SearchedBrand)
	}
}

func TestResolveContainsFallback(t *testing.T) {
	store := &fakeStore{
		medicines: []entities.Medicine{
			{ID: 1, BrandName: "New Dolo 650", SaltComposition: "Paracetamol 650mg", Price: 30},
		},
	}
	resolver := newTestResolver(store)

	// No brand starts with "Dolo", but one contains it.
	result := resolver.Resolve("Dolo")
	if !result.Found {
		t.Fatal("expected contains fallback to resolve the brand")
	}
	if result.SearchedBrand != "New Dolo 650" {
		t.Errorf("SearchedBrand = %q", result.SearchedBrand)
	}
}

func TestResolveStructuredComposition(t *testing.T) {
	store := &fakeStore{
		medicines: []entities.Medicine{
			{ID: 1, BrandName: "Combiflam", SaltComposition: "[{'name': 'Ibuprofen 400mg'}, {'name': 'Paracetamol 325mg'}]", Price: 40},
		},
		generics: []entities.Generic{
			{ID: 10, GenericName: "Ibuprofen 400mg + Paracetamol 325mg Tablets", Price: 14},
		},
	}
	resolver := newTestResolver(store)

	result := resolver.Resolve("Combiflam")
	if !result.Found {
		t.Fatal("expected brand to resolve")
	}
	if result.GenericName != "ibuprofen" {
		t.Errorf("GenericName = %q, want ibuprofen", result.GenericName)
	}
	if result.GovMatch == nil {
		t.Fatal("expected two-salt generic to match")
	}
	if result.GovMatch.DosageWarning != nil {
		t.Errorf("unexpected warning %q", *result.GovMatch.DosageWarning)
	}
}

func TestResolveDosageWarningOnStrengthlessGeneric(t *testing.T) {
	store := &fakeStore{
		medicines: []entities.Medicine{
			{ID: 1, BrandName: "Dolo 650", SaltComposition: "Paracetamol 650mg", Price: 30},
		},
		generics: []entities.Generic{
			{ID: 10, GenericName: "Paracetamol Tablets", Price: 9},
		},
	}
	resolver := newTestResolver(store)

	// The generic carries no strength: it matches, and no warning is
	// raised since one side is strength-less.
	result := resolver.Resolve("Dolo")
	if result.GovMatch == nil {
		t.Fatal("expected a generic match")
	}
	if result.GovMatch.DosageWarning != nil {
		t.Errorf("unexpected warning %q", *result.GovMatch.DosageWarning)
	}
}
