// Package slug normalizes item titles into URL-safe identifiers.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and drops combining marks, so "Café"
// normalizes to "cafe" rather than losing the letter entirely.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make derives a slug base from a title: lower-cased, transliterated to
// ASCII where possible, with runs of non-alphanumerics collapsed to single
// hyphens and leading/trailing hyphens trimmed.
//
// The result may be empty (e.g. a title of only punctuation); callers must
// substitute a fallback token before use.
func Make(title string) string {
	folded, _, err := transform.String(stripMarks, title)
	if err != nil {
		// Transform only fails on malformed input; fall back to the raw title.
		folded = title
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}
