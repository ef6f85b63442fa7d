package engine

import (
	"regexp"
	"strings"

	"github.com/Prakhar-Bhagat/MedXchange/catalog/entities"
)

var (
	// Separators used inside generic catalog names
	genericSplitRegex = regexp.MustCompile(`(?i)\band\b|[+/]`)

	// Fragments that are purely a dosage expression, e.g. "500mg" or "1 g"
	bareDosageRegex = regexp.MustCompile(`^\d+\s*m?g$`)
)

// Matcher scores candidate generic records against a target's normalized
// salts and dosages. Stateless; the synonym table is injected
// configuration loaded at process start.
type Matcher struct {
	synonyms map[string][]string
}

// NewMatcher creates a matcher with the given salt synonym table. A nil
// table falls back to DefaultSaltSynonyms.
func NewMatcher(synonyms map[string][]string) *Matcher {
	if synonyms == nil {
		synonyms = DefaultSaltSynonyms()
	}
	return &Matcher{synonyms: synonyms}
}

// CountSalts reports how many salt fragments a generic name decomposes
// into, ignoring fragments that are purely a dosage expression. The count
// guards against partial-overlap false positives: a one-salt generic must
// never match a two-salt target however well its text overlaps.
func CountSalts(genericName string) int {
	count := 0
	for _, part := range genericSplitRegex.Split(strings.ToLower(genericName), -1) {
		part = strings.TrimSpace(part)
		if part != "" && !bareDosageRegex.MatchString(part) {
			count++
		}
	}
	return count
}

// saltMatches reports whether a normalized target salt (or one of its
// declared synonyms) appears in the candidate name, either as a substring
// of the whole lowercased name or of one of its whitespace-delimited
// tokens. The token path handles salts embedded without separators.
func (m *Matcher) saltMatches(normalized, nameLower string) bool {
	forms := append([]string{normalized}, m.synonyms[normalized]...)
	for _, form := range forms {
		if strings.Contains(nameLower, form) {
			return true
		}
		for _, token := range strings.Fields(nameLower) {
			if strings.Contains(NormalizeSalt(token), form) {
				return true
			}
		}
	}
	return false
}

// FindGeneric selects the best subsidized generic for the target. A
// candidate must decompose into exactly len(targetSalts) salt fragments,
// every target salt must be found in its name (full match), and when both
// sides carry extracted strengths the canonical-key sets must be equal.
// Strength compatibility is a hard gate, not a soft penalty. Ties keep
// the first full-and-compatible candidate in store iteration order.
func (m *Matcher) FindGeneric(targetSalts []string, targetDosages []Strength, candidates []entities.Generic) (entities.Generic, bool) {
	if len(targetSalts) == 0 {
		return entities.Generic{}, false
	}

	targetSet := DosageSet(targetDosages)

	var best entities.Generic
	found := false
	maxScore := 0

	for _, generic := range candidates {
		if CountSalts(generic.GenericName) != len(targetSalts) {
			continue
		}

		nameLower := strings.ToLower(generic.GenericName)
		score := 0
		for _, salt := range targetSalts {
			if m.saltMatches(NormalizeSalt(salt), nameLower) {
				score++
			}
		}
		if score != len(targetSalts) {
			continue
		}

		genericSet := DosageSet(ExtractDosages(generic.GenericName))
		if len(targetSet) > 0 && len(genericSet) > 0 && !dosageSetsEqual(targetSet, genericSet) {
			continue
		}

		if score > maxScore {
			maxScore = score
			best = generic
			found = true
		}
	}

	return best, found
}
