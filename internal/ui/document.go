package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/heartmarshall/ruendict/internal/domain"
	"github.com/heartmarshall/ruendict/internal/render"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 80

const maxStars = 3

// Stars renders a 0-3 popularity indicator as filled and empty stars.
func Stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > maxStars {
		n = maxStars
	}
	return StarStyle.Render(strings.Repeat("★", n)) + DimStyle.Render(strings.Repeat("☆", maxStars-n))
}

// EntryLine renders one result row: marker, headword, stars and gloss
// preview, truncated to width.
func EntryLine(e domain.Entry, selected, expanded bool, width int) string {
	marker := "▸"
	if expanded {
		marker = "▾"
	}

	var head string
	if selected {
		head = SelectedStyle.Render("> "+marker+" "+e.DisplayForm())
	} else {
		head = "  " + marker + " " + WordStyle.Render(e.DisplayForm())
	}

	line := head + " " + Stars(e.Stars())
	if gloss := strings.TrimSpace(e.FormattedGloss()); gloss != "" && !expanded {
		line += "  " + GlossStyle.Render(gloss)
	}
	return Truncate(line, width)
}

// DocumentOptions tune RenderDocument.
type DocumentOptions struct {
	Width int
	// Indent is prepended to every line.
	Indent string
	// ActiveLink is highlighted wherever it occurs.
	ActiveLink string
}

// RenderDocument renders an article as wrapped, styled lines. A degraded
// document is shown as its raw markup.
func RenderDocument(doc render.Document, opts DocumentOptions) string {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	width = max(10, width-lipgloss.Width(opts.Indent))
	block := lipgloss.NewStyle().Width(width)

	var lines []string
	if doc.Degraded {
		for _, l := range strings.Split(block.Render(doc.Source), "\n") {
			lines = append(lines, opts.Indent+DimStyle.Render(l))
		}
		return strings.Join(lines, "\n")
	}

	if doc.Transcription != "" {
		t := TranscriptionStyle.Render("[" + doc.Transcription + "]")
		lines = append(lines, opts.Indent+lipgloss.PlaceHorizontal(width, lipgloss.Right, t))
	}

	for _, it := range doc.Items {
		var b strings.Builder
		if it.Kind == render.ItemExample {
			b.WriteString("   ")
		}
		for _, seg := range it.Segments {
			b.WriteString(segmentStyle(seg, opts.ActiveLink).Render(seg.Text))
		}
		for _, l := range strings.Split(block.Render(b.String()), "\n") {
			lines = append(lines, opts.Indent+strings.TrimRight(l, " "))
		}
	}
	return strings.Join(lines, "\n")
}

func segmentStyle(seg render.Segment, activeLink string) lipgloss.Style {
	switch {
	case seg.Link != "" && seg.Link == activeLink:
		return ActiveLinkStyle
	case seg.Style == render.StyleAbbr:
		return AbbrStyle
	case seg.Style == render.StyleExample:
		return ExampleStyle
	case seg.Link != "":
		return LinkStyle
	default:
		return lipgloss.NewStyle()
	}
}

// Truncate cuts s to width visible cells, ending with an ellipsis when cut.
// Styling escapes are kept intact.
func Truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// PadRight pads s with spaces to width visible cells.
func PadRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
