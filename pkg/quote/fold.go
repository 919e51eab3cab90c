package quote

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold strips accents and lower-cases s. A transformer is built per call
// because chained transformers keep state.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// foldedTokens splits a folded line on whitespace and column punctuation and
// drops dots inside tokens so "P.U." reads as "pu"
func foldedTokens(line string) []string {
	fields := strings.FieldsFunc(fold(line), func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune("/|()[]:;,", r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		f = strings.ReplaceAll(f, ".", "")
		f = strings.Trim(f, "-_'\"*")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
