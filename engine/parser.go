// Package engine implements the composition resolution and equivalence
// matching pipeline: parsing free-text composition strings into salt
// tokens, normalizing salts and strengths for comparison, scoring
// candidate generics against a target, and assembling quantity labels
// and dosage warnings. All operations are pure and request-scoped.
package engine

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Pre-compiled regex patterns for performance optimization
// Compiled once at package initialization and reused for all requests
var (
	// Trailing dosage suffix inside a salt fragment, e.g. " 500mg" or "650 mg"
	dosageSuffixRegex = regexp.MustCompile(`\s*\d+\s*m?g\b`)

	// Parenthesized annotations, e.g. "(extended release)"
	parentheticalRegex = regexp.MustCompile(`\s*\([^)]*\)`)

	// Composition separators: +, /, comma, or the standalone word "and"
	saltSeparatorRegex = regexp.MustCompile(`(?i)[+/,]|\band\b`)
)

// structuredSalt is one entry of the serialized list-of-objects
// composition form.
type structuredSalt struct {
	Name string `json:"name"`
}

// ParseSalts turns a raw composition string into an ordered list of salt
// name tokens. Compositions appear in two shapes: a serialized
// list-of-objects carrying a "name" field, or plain delimiter-separated
// text. A structured parse failure of any kind is swallowed and falls
// through to the plain-text path; it never reaches the caller.
// Output order preserves first-seen order; duplicates are kept.
func ParseSalts(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	// Guard the literal word so a bare "none" fragment is recognized and
	// skipped after lowercasing.
	raw = strings.ReplaceAll(raw, "none", "None")

	salts := []string{}
	if strings.HasPrefix(strings.TrimSpace(raw), "[") {
		salts = parseStructuredSalts(raw)
	}
	if len(salts) > 0 {
		return salts
	}

	for _, part := range saltSeparatorRegex.Split(raw, -1) {
		clean := cleanSaltFragment(part)
		if clean != "" && clean != "none" {
			salts = append(salts, clean)
		}
	}
	return salts
}

// parseStructuredSalts handles the serialized list-of-objects form. The
// source data uses Python-literal quoting, so single quotes and None are
// mapped onto JSON before decoding. Any malformed literal, wrong shape or
// missing name field yields an empty result, not an error.
func parseStructuredSalts(raw string) []string {
	jsonish := strings.ReplaceAll(raw, "'", `"`)
	jsonish = strings.ReplaceAll(jsonish, "None", "null")

	var items []structuredSalt
	if err := json.Unmarshal([]byte(jsonish), &items); err != nil {
		return nil
	}

	salts := []string{}
	for _, item := range items {
		if clean := cleanSaltFragment(item.Name); clean != "" {
			salts = append(salts, clean)
		}
	}
	return salts
}

// cleanSaltFragment lowercases a fragment and strips trailing dosage
// suffixes and parenthetical annotations. The result is for display and
// further normalization; salt-form suffixes are kept (see NormalizeSalt).
func cleanSaltFragment(fragment string) string {
	clean := strings.ToLower(strings.TrimSpace(fragment))
	clean = dosageSuffixRegex.ReplaceAllString(clean, "")
	clean = parentheticalRegex.ReplaceAllString(clean, "")
	return strings.TrimSpace(clean)
}
