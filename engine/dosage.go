package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Strength is one extracted dosage, converted to milligrams.
type Strength struct {
	ValueMg float64
}

// Key returns the canonical milligram key used for set membership and
// comparison. Two strengths are equal iff their keys match exactly; there
// is no tolerance.
func (s Strength) Key() string {
	return strconv.FormatFloat(s.ValueMg, 'f', -1, 64) + "mg"
}

// Strength expressions: decimal number plus a mass unit
var strengthRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(mg|g|mcg|µg)`)

// ExtractDosages scans text for strength expressions and returns them
// converted to milligrams, in order of appearance. Duplicates are kept
// here; comparison collapses them via DosageSet.
func ExtractDosages(text string) []Strength {
	matches := strengthRegex.FindAllStringSubmatch(strings.ToLower(text), -1)
	dosages := make([]Strength, 0, len(matches))
	for _, m := range matches {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			// The pattern only admits well-formed numerals.
			panic(fmt.Sprintf("engine: non-numeric strength %q", m[1]))
		}
		switch m[2] {
		case "mcg", "µg":
			value /= 1000
		case "g":
			value *= 1000
		}
		dosages = append(dosages, Strength{ValueMg: value})
	}
	return dosages
}

// DosageSet collapses strengths into canonical-key set semantics. Two
// occurrences of the same numeric strength are not distinguishable facts,
// so the match test ignores duplicate counts.
func DosageSet(dosages []Strength) map[string]Strength {
	set := make(map[string]Strength, len(dosages))
	for _, d := range dosages {
		set[d.Key()] = d
	}
	return set
}

func dosageSetsEqual(a, b map[string]Strength) bool {
	if len(a) != len(b) {
		return false
	}
	for key := range a {
		if _, ok := b[key]; !ok {
			return false
		}
	}
	return true
}

// sortedStrengthKeys renders a set ascending by numeric value for display.
func sortedStrengthKeys(set map[string]Strength) []string {
	strengths := make([]Strength, 0, len(set))
	for _, d := range set {
		strengths = append(strengths, d)
	}
	sort.Slice(strengths, func(i, j int) bool {
		return strengths[i].ValueMg < strengths[j].ValueMg
	})

	keys := make([]string, len(strengths))
	for i, d := range strengths {
		keys[i] = d.Key()
	}
	return keys
}

// DosageWarning compares the extracted strengths of two texts and returns
// advisory text when both sides have strengths and they differ. An empty
// string means no mismatch. The warning never blocks a match.
func DosageWarning(targetText, genericText string) string {
	targetSet := DosageSet(ExtractDosages(targetText))
	genericSet := DosageSet(ExtractDosages(genericText))

	if len(targetSet) == 0 || len(genericSet) == 0 {
		return ""
	}
	if dosageSetsEqual(targetSet, genericSet) {
		return ""
	}

	return fmt.Sprintf(
		"Note: brand dosage (%s) differs from generic (%s). Consult your doctor before switching.",
		strings.Join(sortedStrengthKeys(targetSet), " + "),
		strings.Join(sortedStrengthKeys(genericSet), " + "),
	)
}
