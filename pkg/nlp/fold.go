// Package nlp holds the text folding used by client-side search.
package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases text and strips combining marks, so "Café" and "cafe"
// compare equal. Punctuation is kept.
func Fold(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return result
}

// Contains reports whether needle occurs in haystack after folding both.
// An empty needle matches everything.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
