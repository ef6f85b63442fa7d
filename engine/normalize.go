package engine

import (
	"regexp"
	"strings"
)

// Trailing salt-form words that distinguish formulations of the same
// active substance, removed once for comparison purposes.
var saltFormSuffixRegex = regexp.MustCompile(`\s+(sodium|hydrochloride|hcl|sulphate|sulfate|chloride)$`)

// NormalizeSalt canonicalizes a salt token so that textual variants
// compare equal: lowercase, trim, and strip one trailing salt-form word.
// Used only for comparison, never for display.
func NormalizeSalt(salt string) string {
	normalized := strings.ToLower(strings.TrimSpace(salt))
	return saltFormSuffixRegex.ReplaceAllString(normalized, "")
}

// DefaultSaltSynonyms declares salts that are the same active substance
// under different names. Static configuration injected into the Matcher;
// keys and values are normalized forms.
func DefaultSaltSynonyms() map[string][]string {
	return map[string][]string{
		"paracetamol":   {"acetaminophen"},
		"acetaminophen": {"paracetamol"},
	}
}
