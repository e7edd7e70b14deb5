// Package sms implements the SMS-to-transaction extraction pipeline: text
// normalization, sender/content classification, and field extraction.
package sms

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize folds compatibility-equivalent Unicode code points to their
// canonical forms. Stylized glyph variants (mathematical alphanumerics,
// fullwidth forms) used to slip past keyword filters collapse to plain
// ASCII under NFKC. Zero-width characters are dropped and whitespace runs
// are collapsed to single spaces.
//
// Normalize is pure and idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	folded := norm.NFKC.String(text)

	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := false
	for _, r := range folded {
		switch {
		case r == '\u200b' || r == '\u200c' || r == '\u200d' || r == '\ufeff':
			// zero-width characters
			continue
		case unicode.IsSpace(r):
			if !lastSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			lastSpace = true
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}
	return strings.TrimRight(b.String(), " ")
}
