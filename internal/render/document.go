package render

import "strings"

// Style marks how a run of text is shown.
type Style int

const (
	StylePlain Style = iota
	// StyleAbbr is a grammatical abbreviation such as "n" or "adj".
	StyleAbbr
	// StyleExample is text of an <E> usage example.
	StyleExample
)

func (s Style) String() string {
	switch s {
	case StyleAbbr:
		return "abbr"
	case StyleExample:
		return "example"
	default:
		return "plain"
	}
}

// Segment is a run of text with a single style. Link is the word an anchor
// points to, empty for plain text.
type Segment struct {
	Text  string `json:"text"`
	Style Style  `json:"style"`
	Link  string `json:"link,omitempty"`
}

// ItemKind tells sense items from example items.
type ItemKind int

const (
	ItemSense ItemKind = iota
	ItemExample
	// ItemText holds text found outside any list item.
	ItemText
)

// Item is one entry of the article list.
type Item struct {
	Kind     ItemKind  `json:"kind"`
	Segments []Segment `json:"segments"`
}

// Text returns the item's text without styling.
func (it Item) Text() string {
	var b strings.Builder
	for _, s := range it.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Links returns the distinct link targets of the item in order.
func (it Item) Links() []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range it.Segments {
		if s.Link != "" && !seen[s.Link] {
			seen[s.Link] = true
			out = append(out, s.Link)
		}
	}
	return out
}

// Document is a rendered article. A degraded document could not be parsed
// and carries only its markup in Source.
type Document struct {
	Transcription string `json:"transcription,omitempty"`
	Items         []Item `json:"items"`
	Degraded      bool   `json:"degraded,omitempty"`
	Source        string `json:"source,omitempty"`
}

// Links returns the distinct link targets of the whole document in order.
func (d Document) Links() []string {
	var out []string
	seen := map[string]bool{}
	for _, it := range d.Items {
		for _, l := range it.Links() {
			if !seen[l] {
				seen[l] = true
				out = append(out, l)
			}
		}
	}
	return out
}
