package fs

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName turns a raw directory entry name into display text.
// Invalid UTF-8 sequences are replaced with U+FFFD and repaired is true.
// The result is NFC-normalized so composed and decomposed spellings compare
// equal.
func NormalizeName(raw string) (name string, repaired bool) {
	if !utf8.ValidString(raw) {
		fixed, _, err := transform.String(runes.ReplaceIllFormed(), raw)
		if err != nil {
			fixed = strings.ToValidUTF8(raw, string(utf8.RuneError))
		}
		raw = fixed
		repaired = true
	}
	return norm.NFC.String(raw), repaired
}
