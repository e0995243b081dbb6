// Package translit guesses whether Latin input is romanised Russian and
// converts it into Cyrillic candidates.
package translit

import (
	"strings"
	"unicode/utf8"
)

type rule struct {
	latin    string
	cyrillic string
}

// rules is ordered longest-first so that "shch" wins over "sh" and "s".
var rules = []rule{
	{"shch", "щ"},

	{"sch", "щ"},
	{"tch", "ч"},
	{"y''", "ъ"},

	{"zh", "ж"},
	{"kh", "х"},
	{"ts", "ц"},
	{"ch", "ч"},
	{"sh", "ш"},
	{"yu", "ю"},
	{"ya", "я"},
	{"ye", "е"},
	{"yo", "ё"},
	{"iy", "ий"},
	{"yy", "ый"},
	{"y'", "ь"},
	{"''", "ъ"},

	{"a", "а"},
	{"b", "б"},
	{"v", "в"},
	{"g", "г"},
	{"d", "д"},
	{"e", "е"},
	{"z", "з"},
	{"i", "и"},
	{"j", "й"},
	{"k", "к"},
	{"l", "л"},
	{"m", "м"},
	{"n", "н"},
	{"o", "о"},
	{"p", "п"},
	{"r", "р"},
	{"s", "с"},
	{"t", "т"},
	{"u", "у"},
	{"f", "ф"},
	{"h", "х"},
	{"c", "к"},
	{"w", "в"},
	{"x", "кс"},
	{"y", "ы"},
	{"'", "ь"},
}

var patterns = []string{
	"zh", "kh", "shch", "sch", "tch", "ts", "ch", "sh",
	"yu", "ya", "ye", "yo",
}

var endings = []string{
	"ov", "ova", "ovich", "evich", "ovna", "evna",
	"sky", "skaya", "skiy", "skoi", "aya", "yy", "iy",
}

// LooksLikeTransliteration reports whether text contains a letter cluster
// typical of romanised Russian or ends like a Russian word or surname.
func LooksLikeTransliteration(text string) bool {
	lower := strings.ToLower(text)

	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	for _, e := range endings {
		if strings.HasSuffix(lower, e) {
			return true
		}
	}
	return false
}

// ToCyrillic transliterates text greedily, left to right, always taking the
// longest matching rule. Characters without a rule pass through unchanged.
func ToCyrillic(text string) string {
	s := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(s) * 2)

	for len(s) > 0 {
		matched := false
		for _, r := range rules {
			if strings.HasPrefix(s, r.latin) {
				b.WriteString(r.cyrillic)
				s = s[len(r.latin):]
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		// No rule: copy one whole rune.
		_, size := utf8.DecodeRuneInString(s)
		b.WriteString(s[:size])
		s = s[size:]
	}

	return b.String()
}

// ToCyrillicVariants returns every Cyrillic spelling worth trying for text,
// de-duplicated and without empty strings. The exact transliteration comes
// first, followed by the variants that resolve ambiguous letters:
//
//	e  -> э
//	e  -> yo        (when "yo" or "ё" is present)
//	y  -> i, y -> j (unless part of ya/yu/ye)
//	c  -> k, c -> ts (unless part of ch/sch)
func ToCyrillicVariants(text string) []string {
	lower := strings.ToLower(text)

	candidates := []string{ToCyrillic(lower)}

	if strings.Contains(lower, "e") {
		candidates = append(candidates, ToCyrillic(strings.ReplaceAll(lower, "e", "э")))
	}

	if strings.Contains(lower, "yo") || strings.Contains(lower, "ё") {
		candidates = append(candidates, ToCyrillic(strings.ReplaceAll(lower, "e", "yo")))
	}

	if strings.Contains(lower, "y") &&
		!strings.Contains(lower, "ya") &&
		!strings.Contains(lower, "yu") &&
		!strings.Contains(lower, "ye") {
		candidates = append(candidates,
			ToCyrillic(strings.ReplaceAll(lower, "y", "i")),
			ToCyrillic(strings.ReplaceAll(lower, "y", "j")),
		)
	}

	if strings.Contains(lower, "c") &&
		!strings.Contains(lower, "ch") &&
		!strings.Contains(lower, "sch") {
		candidates = append(candidates,
			ToCyrillic(strings.ReplaceAll(lower, "c", "k")),
			ToCyrillic(strings.ReplaceAll(lower, "c", "ts")),
		)
	}

	return dedupe(candidates)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
