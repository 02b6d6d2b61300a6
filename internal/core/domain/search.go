package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters with a stroke have no canonical decomposition, so stripping marks
// does not reach them.
var strokeReplacer = strings.NewReplacer(
	"ł", "l",
	"đ", "d",
	"ø", "o",
	"ħ", "h",
	"ı", "i",
)

// FoldSearch returns the case- and diacritic-insensitive key of s. Two
// strings compare equal under "contains[cd]" when their folded keys do.
func FoldSearch(s string) string {
	if s == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	return strokeReplacer.Replace(cases.Fold().String(stripped))
}

func containsFolded(value, foldedFilter string) bool {
	return strings.Contains(FoldSearch(value), foldedFilter)
}
