// Package textnorm canonicalizes Romanian text for accent-insensitive matching.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Romanian letters are written with either comma-below (ș ț) or the legacy
// cedilla forms (ş ţ); both fold to the same base letter.
var romanianFold = strings.NewReplacer(
	"ă", "a",
	"â", "a",
	"î", "i",
	"ș", "s",
	"ş", "s",
	"ț", "t",
	"ţ", "t",
)

// Normalize lowercases s and strips its diacritics.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	lowered := strings.ToLower(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, lowered)
	if err != nil {
		stripped = lowered
	}
	return romanianFold.Replace(stripped)
}

// Contains reports whether needle occurs in haystack once both are normalized.
// An empty needle matches everything.
func Contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Normalize(haystack), Normalize(needle))
}
