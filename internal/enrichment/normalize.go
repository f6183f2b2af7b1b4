package enrichment

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWordRun      = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)\s*`)
)

// Normalize canonicalizes text for comparison: lowercase, diacritics removed,
// punctuation runs replaced by a single space, whitespace collapsed and
// trimmed. "Pokémon: Red!" becomes "pokemon red".
func Normalize(text string) string {
	s := removeDiacritics(strings.ToLower(text))
	s = nonWordRun.ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// StripParenthetical drops "(...)" groups and the space around them, e.g.
// the "(video game)" disambiguation suffix on encyclopedia titles.
func StripParenthetical(text string) string {
	s := parentheticalRe.ReplaceAllString(text, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func removeDiacritics(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	if normalized, _, err := transform.String(t, s); err == nil {
		return normalized
	}
	return s
}
