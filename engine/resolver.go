package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/Prakhar-Bhagat/MedXchange/catalog/entities"
	"github.com/Prakhar-Bhagat/MedXchange/interfaces"
)

// substituteNoiseFloor rejects junk catalog rows with near-zero prices
// (source currency's smallest meaningful unit).
const substituteNoiseFloor = 10

// SubstituteResult describes a cheaper commercial brand with identical
// composition.
type SubstituteResult struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Qty          string  `json:"qty"`
	Manufacturer string  `json:"manufacturer"`
	Savings      float64 `json:"savings"`
}

// GovMatchResult describes a subsidized generic equivalent. DosageWarning
// is advisory text only, never a block.
type GovMatchResult struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Qty           string  `json:"qty"`
	Savings       float64 `json:"savings"`
	DosageWarning *string `json:"dosage_warning"`
}

// ResolutionResult is the full outcome of one brand lookup.
type ResolutionResult struct {
	Found             bool              `json:"found"`
	SearchedBrand     string            `json:"searched_brand,omitempty"`
	BrandPrice        float64           `json:"brand_price,omitempty"`
	BrandQty          string            `json:"brand_qty,omitempty"`
	Manufacturer      string            `json:"manufacturer,omitempty"`
	GenericName       string            `json:"generic_name,omitempty"`
	AlternativesFound bool              `json:"alternatives_found"`
	Substitute        *SubstituteResult `json:"substitute"`
	GovMatch          *GovMatchResult   `json:"gov_match"`
	Message           string            `json:"message"`
}

// DefaultBrandAliases maps foreign brand names onto their local
// equivalents. Static lookup applied to the input before brand search,
// not part of the matching algorithm.
func DefaultBrandAliases() map[string]string {
	return map[string]string{
		"tylenol":  "Dolo",
		"panadol":  "Dolo",
		"advil":    "Brufen",
		"motrin":   "Brufen",
		"claritin": "Alerta",
	}
}

// Resolver composes the parser, normalizer, dosage extractor, matcher and
// label assembler into one request-scoped pipeline over the record store.
// It holds no mutable state; concurrent calls are independent.
type Resolver struct {
	store   interfaces.DataStore
	matcher *Matcher
	aliases map[string]string
}

// NewResolver creates a resolver with injected store, matcher and brand
// alias table. Nil matcher or aliases fall back to the defaults.
func NewResolver(store interfaces.DataStore, matcher *Matcher, aliases map[string]string) *Resolver {
	if matcher == nil {
		matcher = NewMatcher(nil)
	}
	if aliases == nil {
		aliases = DefaultBrandAliases()
	}
	return &Resolver{store: store, matcher: matcher, aliases: aliases}
}

// Resolve looks up a brand name and finds cheaper equivalents: a
// commercial substitute with identical composition, and a subsidized
// generic whose salts and strengths equivalently match. An unresolved
// brand is a normal outcome (Found=false), not an error.
func (r *Resolver) Resolve(brandName string) ResolutionResult {
	searchTerm := brandName
	if alias, ok := r.aliases[strings.ToLower(strings.TrimSpace(brandName))]; ok {
		searchTerm = alias
	}

	brand, ok := r.store.FindBrandByPrefix(searchTerm)
	if !ok {
		brand, ok = r.store.FindBrandByContains(searchTerm)
	}
	if !ok {
		return ResolutionResult{
			Found:   false,
			Message: fmt.Sprintf("No brand found matching '%s'", brandName),
		}
	}

	salts := ParseSalts(brand.SaltComposition)
	genericName := brand.SaltComposition
	if len(salts) > 0 {
		genericName = salts[0]
	}

	result := ResolutionResult{
		Found:         true,
		SearchedBrand: brand.BrandName,
		BrandPrice:    brand.Price,
		BrandQty:      QuantityLabel(brand.BrandName, brand.Price),
		Manufacturer:  brand.Manufacturer,
		GenericName:   genericName,
		Message:       "No safe alternatives found.",
	}

	if sub, ok := r.store.FindCheaperSameComposition(brand.SaltComposition, brand.ID, brand.Price, substituteNoiseFloor); ok {
		result.Substitute = &SubstituteResult{
			Name:         sub.BrandName,
			Price:        sub.Price,
			Qty:          QuantityLabel(sub.BrandName, sub.Price),
			Manufacturer: sub.Manufacturer,
			Savings:      roundMoney(brand.Price - sub.Price),
		}
		result.AlternativesFound = true
	}

	// Strengths may live in the composition text or the brand name itself
	// ("Dolo 650" carries the dose in its name).
	targetText := brand.SaltComposition + " " + brand.BrandName
	targetDosages := ExtractDosages(targetText)

	if gov, ok := r.matcher.FindGeneric(salts, targetDosages, r.store.ListGenerics()); ok {
		match := &GovMatchResult{
			Name:    gov.GenericName,
			Price:   gov.Price,
			Qty:     genericQuantityLabel(gov),
			Savings: roundMoney(brand.Price - gov.Price),
		}
		if warning := DosageWarning(targetText, gov.GenericName); warning != "" {
			match.DosageWarning = &warning
		}
		result.GovMatch = match
		result.AlternativesFound = true
	}

	if result.AlternativesFound {
		result.Message = "Cheaper alternatives found."
	}

	return result
}

// genericQuantityLabel prefers the catalog's explicit unit-size label and
// falls back to deriving one from the record name.
func genericQuantityLabel(g entities.Generic) string {
	if g.UnitLabel != "" {
		return g.UnitLabel
	}
	return QuantityLabel(g.GenericName, g.Price)
}

// roundMoney rounds to two decimals, matching catalog price precision.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
