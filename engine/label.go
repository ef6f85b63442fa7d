package engine

import (
	"regexp"
	"strings"
)

var (
	// Parenthesized pack count, e.g. "(15 tablets)" or "(10)"
	packCountRegex = regexp.MustCompile(`(?i)\((\d+)\s*(?:tabs|tablets|caps|capsules)?\)`)

	// Bare pack-count word, e.g. "10s"
	packSuffixRegex = regexp.MustCompile(`(?i)\b(\d+)s\b`)
)

var (
	bottleKeywords = []string{"syrup", "suspension", "liquid", "solution", "drop"}
	tubeKeywords   = []string{"gel", "cream", "ointment", "tube"}
)

// QuantityLabel derives a human-readable quantity label from dosage-form
// keywords in the record name, an explicit pack-count pattern, or price
// bands as a last resort. Keyword checks take precedence over price: a
// syrup is "Per Bottle" whatever it costs.
func QuantityLabel(name string, price float64) string {
	nameLower := strings.ToLower(name)

	if strings.Contains(nameLower, "injection") ||
		strings.Contains(nameLower, " inj") ||
		strings.Contains(nameLower, "vial") {
		return "Per Vial"
	}
	for _, keyword := range bottleKeywords {
		if strings.Contains(nameLower, keyword) {
			return "Per Bottle"
		}
	}
	for _, keyword := range tubeKeywords {
		if strings.Contains(nameLower, keyword) {
			return "Per Tube"
		}
	}
	if strings.Contains(nameLower, "sachet") {
		return "Per Sachet"
	}

	if m := packCountRegex.FindStringSubmatch(name); m != nil {
		return "Pack of " + m[1]
	}
	if m := packSuffixRegex.FindStringSubmatch(name); m != nil {
		return "Pack of " + m[1]
	}

	switch {
	case price > 200:
		return "Per Box/Pack"
	case price < 20:
		return "Per Strip/Tab"
	default:
		return "Per Pack"
	}
}
