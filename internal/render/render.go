// Package render converts article markup into a styled-text document model
// that terminal, JSON and MCP front ends can display.
package render

import (
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/k3a/html2text"
	"golang.org/x/net/html"
)

// DefaultMaxMarkupBytes bounds the markup a Renderer will parse.
const DefaultMaxMarkupBytes = 1 << 20

// Renderer parses markup produced by markup.FormatAsHTML.
type Renderer struct {
	maxBytes int
}

// NewRenderer creates a renderer that degrades on markup larger than
// maxBytes.
func NewRenderer(maxBytes int) *Renderer {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxMarkupBytes
	}
	return &Renderer{maxBytes: maxBytes}
}

// Render parses markup into a Document. It never fails: markup that is too
// large or cannot be tokenized yields a degraded document holding the
// source.
func (r *Renderer) Render(markup string) Document {
	if len(markup) > r.maxBytes {
		return degraded(markup)
	}

	doc, err := r.parse(markup)
	if err != nil {
		return degraded(markup)
	}
	return doc
}

func degraded(markup string) Document {
	return Document{Degraded: true, Source: markup, Items: []Item{}}
}

// builder accumulates the document while the tokenizer walks the markup.
type builder struct {
	doc           Document
	cur           *Item
	link          string
	abbrDepth     int
	inStyle       bool
	inHeading     bool
	transcription strings.Builder
}

func (r *Renderer) parse(markup string) (Document, error) {
	z := html.NewTokenizer(strings.NewReader(markup))
	z.SetMaxBuf(r.maxBytes)

	b := &builder{doc: Document{Items: []Item{}}}

	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				b.flush()
				b.doc.Transcription = collapseSpace(strings.TrimSpace(b.transcription.String()))
				return b.doc, nil
			}
			return Document{}, z.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			b.start(string(name), z, hasAttr)

		case html.EndTagToken:
			name, _ := z.TagName()
			b.end(string(name))

		case html.TextToken:
			b.text(string(z.Text()))
		}
	}
}

func (b *builder) start(tag string, z *html.Tokenizer, hasAttr bool) {
	switch tag {
	case "style":
		b.inStyle = true
	case "h5":
		b.inHeading = true
	case "li":
		b.open(ItemSense)
	case "e":
		b.open(ItemExample)
	case "abbr":
		b.abbrDepth++
	case "a":
		b.link = ""
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = z.TagAttr()
			if string(key) == "href" {
				b.link = string(val)
			}
		}
	case "br":
		b.appendText("\n")
	}
}

func (b *builder) end(tag string) {
	switch tag {
	case "style":
		b.inStyle = false
	case "h5":
		b.inHeading = false
	case "li", "e":
		b.flush()
	case "abbr":
		if b.abbrDepth > 0 {
			b.abbrDepth--
		}
	case "a":
		b.link = ""
	}
}

func (b *builder) text(s string) {
	switch {
	case b.inStyle:
		return
	case b.inHeading:
		b.transcription.WriteString(s)
		return
	}
	b.appendText(s)
}

// open starts a new item, closing the current one.
func (b *builder) open(kind ItemKind) {
	b.flush()
	b.cur = &Item{Kind: kind}
}

// flush appends the current item if it holds any visible text.
func (b *builder) flush() {
	if b.cur == nil {
		return
	}
	it := *b.cur
	b.cur = nil

	if len(it.Segments) > 0 {
		last := &it.Segments[len(it.Segments)-1]
		last.Text = strings.TrimRight(last.Text, " ")
		it.Segments[0].Text = strings.TrimLeft(it.Segments[0].Text, " ")
	}
	if strings.TrimSpace(it.Text()) == "" {
		return
	}
	b.doc.Items = append(b.doc.Items, it)
}

func (b *builder) appendText(s string) {
	if s != "\n" {
		s = collapseSpace(s)
	}
	if s == "" {
		return
	}
	if b.cur == nil {
		if strings.TrimSpace(s) == "" {
			return
		}
		b.cur = &Item{Kind: ItemText}
	}

	style := StylePlain
	switch {
	case b.abbrDepth > 0:
		style = StyleAbbr
	case b.cur.Kind == ItemExample:
		style = StyleExample
	}

	segs := b.cur.Segments
	if n := len(segs); n > 0 && segs[n-1].Style == style && segs[n-1].Link == b.link {
		if strings.HasSuffix(segs[n-1].Text, " ") && strings.HasPrefix(s, " ") {
			s = s[1:]
		}
		segs[n-1].Text += s
		return
	}
	if len(segs) == 0 && strings.HasPrefix(s, " ") {
		s = s[1:]
		if s == "" {
			return
		}
	}
	b.cur.Segments = append(segs, Segment{Text: s, Style: style, Link: b.link})
}

var spaceRe = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return spaceRe.ReplaceAllString(s, " ")
}

var styleBlockRe = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)

// PlainText converts markup to unstyled text with one line per list item.
func PlainText(markup string) string {
	s := styleBlockRe.ReplaceAllString(markup, "")
	return strings.TrimSpace(html2text.HTML2TextWithOptions(s, html2text.WithUnixLineBreaks()))
}
