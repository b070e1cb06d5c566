package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks after NFD decomposition, so
// diacritic variants of the same key ("únicos", "unicos") normalize alike.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeKey lowercases, folds diacritics, and collapses every run of
// non-alphanumeric characters into a single underscore. "Five-Hour Límit"
// becomes "five_hour_limit".
func NormalizeKey(key string) string {
	folded, _, err := transform.String(foldTransformer, key)
	if err != nil {
		folded = key
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	lastUnderscore := true // suppress a leading underscore
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// Tokens splits a normalized key into its underscore-separated parts.
func Tokens(key string) []string {
	normalized := NormalizeKey(key)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "_")
}

func isIndexSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
