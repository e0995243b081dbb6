package domain

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Combining marks used by the dictionaries to show stress.
const (
	stressAcute      = '\u0301'
	stressGrave      = '\u0300'
	stressGreekAcute = '\u0341'
)

var (
	markupTagRe = regexp.MustCompile(`<[^>]+>`)

	stressRemover = runes.Remove(runes.Predicate(func(r rune) bool {
		return r == stressAcute || r == stressGrave || r == stressGreekAcute
	}))
)

// NormalizeQuery prepares user input for matching:
//   - trims leading/trailing whitespace
//   - converts to lowercase (Unicode-aware, so Cyrillic folds too)
//
// Inner whitespace, punctuation and diacritics are preserved.
func NormalizeQuery(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return cases.Lower(language.Und).String(text)
}

// StripStressMarks removes stress diacritics (U+0301, U+0300, U+0341) and
// leaves every other combining mark alone, so й and ё survive.
func StripStressMarks(s string) string {
	out, _, err := transform.String(stressRemover, s)
	if err != nil {
		return s
	}
	return out
}

// StripMarkup removes every <...> tag from s.
func StripMarkup(s string) string {
	return markupTagRe.ReplaceAllString(s, "")
}
