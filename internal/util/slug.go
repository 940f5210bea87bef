package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns s into a lowercase, hyphen-separated file name stem.
// Accents are dropped and every run of other characters becomes one hyphen.
// Returns "" if nothing usable is left.
func Slugify(s string) string {
	s = stripAccents(strings.ToLower(s))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// stripAccents decomposes s (NFD) and drops the nonspacing marks.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
