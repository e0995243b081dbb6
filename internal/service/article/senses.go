package article

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/heartmarshall/ruendict/internal/domain"
)

// DefaultSenseLeadWindow is how many leading runes of a sense block may
// precede the Russian word for the block to count as its translation.
const DefaultSenseLeadWindow = 48

var senseBlockRe = regexp.MustCompile(`(?is)<P>(.*?)</P>`)

// ExtractSenses returns the inner markup of every <P> block of an English
// article that translates russianWord. A block qualifies when its text,
// without tags or stress marks, contains the word as a whole word
// (case-insensitive) starting within the first window runes.
func ExtractSenses(translation, russianWord string, window int) []string {
	if window <= 0 {
		window = DefaultSenseLeadWindow
	}

	word := []rune(strings.ToLower(domain.StripStressMarks(russianWord)))
	if len(word) == 0 {
		return nil
	}

	var senses []string
	for _, m := range senseBlockRe.FindAllStringSubmatch(translation, -1) {
		content := m[1]
		text := []rune(strings.ToLower(domain.StripStressMarks(domain.StripMarkup(content))))
		if wordStartsWithin(text, word, window) {
			senses = append(senses, content)
		}
	}
	return senses
}

// wordStartsWithin reports whether word occurs in text as a whole word at a
// rune offset below window.
func wordStartsWithin(text, word []rune, window int) bool {
	n := len(word)
	for i := 0; i < window && i+n <= len(text); i++ {
		if !runesEqual(text[i:i+n], word) {
			continue
		}
		if i > 0 && unicode.IsLetter(text[i-1]) {
			continue
		}
		if i+n < len(text) && unicode.IsLetter(text[i+n]) {
			continue
		}
		return true
	}
	return false
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Candidates returns the English headwords a Russian entry points to: its
// formatted preview gloss split on commas, trimmed, without empties or
// repeats. The preview is truncated by the store, so a long gloss may lose
// its tail.
func Candidates(e domain.Entry) []string {
	parts := strings.Split(e.FormattedGloss(), ",")
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
