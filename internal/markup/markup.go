// Package markup turns a raw dictionary article into the list-structured,
// linkified markup document that the renderer consumes. Every step is a pure
// string function.
package markup

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatAsHTML runs the whole pipeline over a raw article body.
func FormatAsHTML(raw, transcription string) string {
	body := Linkify(raw)
	body = NormalizeTags(body)
	body = NormalizeCommas(body)
	body = NumberItems(body)
	return AssembleDocument(body, transcription)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || r == '_' || r == '\''
}

// Linkify wraps every word of the article text in an anchor whose href is
// the word itself. Words inside tags, words whose text run ends in </abbr>,
// and character references such as &amp; are left alone.
func Linkify(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isWordRune(r) {
			b.WriteString(s[i : i+size])
			i += size
			continue
		}

		j := i + size
		for j < len(s) {
			r, size = utf8.DecodeRuneInString(s[j:])
			if !isWordRune(r) {
				break
			}
			j += size
		}

		tok := s[i:j]
		if shouldLink(s, i, j) {
			href := strings.ReplaceAll(tok, "'", "&#39;")
			b.WriteString("<a href='" + href + "'>" + tok + "</a>")
		} else {
			b.WriteString(tok)
		}
		i = j
	}

	return b.String()
}

// shouldLink reports whether the token s[start:end] is linkable text.
func shouldLink(s string, start, end int) bool {
	if isCharRef(s, start, end) {
		return false
	}

	rest := s[end:]
	k := strings.IndexAny(rest, "<>")
	if k < 0 {
		return true
	}
	if rest[k] == '>' {
		return false
	}
	return !hasPrefixFold(rest[k:], "</abbr>")
}

// isCharRef reports whether the token is the name of &name; or &#123;.
func isCharRef(s string, start, end int) bool {
	if end >= len(s) || s[end] != ';' {
		return false
	}
	if start > 0 && s[start-1] == '&' {
		return true
	}
	return start > 1 && s[start-1] == '#' && s[start-2] == '&'
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

var tagReplacer = strings.NewReplacer(
	"<P>", "<li>",
	"</P>", "</li>",
	"\n\n", "\n",
)

// NormalizeTags turns <P> sense blocks into list items and collapses blank
// lines. <E> example blocks pass through; the stylesheet shows them as
// list items of their own.
func NormalizeTags(s string) string {
	return tagReplacer.Replace(s)
}

// NormalizeCommas inserts a space after every comma that is not already
// followed by one.
func NormalizeCommas(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		b.WriteByte(s[i])
		if s[i] == ',' && (i+1 == len(s) || s[i+1] != ' ') {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

var listItemRe = regexp.MustCompile(`(?i)<li>`)

// NumberItems prefixes each <li> with "1. ", "2. " and so on when the body
// holds at least two of them. A single item stays unnumbered.
func NumberItems(s string) string {
	if len(listItemRe.FindAllStringIndex(s, 2)) < 2 {
		return s
	}

	n := 0
	return listItemRe.ReplaceAllStringFunc(s, func(tag string) string {
		n++
		return fmt.Sprintf("%s%d. ", tag, n)
	})
}

// Stylesheet is the style block every document starts with.
const Stylesheet = `<style type="text/css">
    BODY { font: -apple-system-body; }
    ABBR { color: green; }
    E { color: gray; display: list-item; }
    HR { display: none; }
    A { font: inherit; color: inherit; text-decoration: inherit; }
    H5 { text-align: right; }
    p { margin: 0; padding: 0; }
</style>`

// AssembleDocument wraps a normalized body into the final document: the
// stylesheet, the transcription header and the ordered list.
func AssembleDocument(body, transcription string) string {
	var b strings.Builder
	b.Grow(len(Stylesheet) + len(body) + len(transcription) + 32)
	b.WriteString(Stylesheet)
	b.WriteString("\n<H5>")
	b.WriteString(transcription)
	b.WriteString("</H5>\n<OL>")
	b.WriteString(body)
	b.WriteString("</OL>")
	return b.String()
}
