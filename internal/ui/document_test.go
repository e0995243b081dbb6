package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/ruendict/internal/domain"
	"github.com/heartmarshall/ruendict/internal/render"
)

func pop(p float64) *float64 { return &p }

func TestStars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{0, "☆☆☆"},
		{1, "★☆☆"},
		{3, "★★★"},
		{7, "★★★"},
		{-1, "☆☆☆"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ansi.Strip(Stars(tt.n)), "Stars(%d)", tt.n)
	}
}

func TestEntryLine(t *testing.T) {
	t.Parallel()

	e := domain.Entry{Word: "tree", Gloss: "<P>дерево,древо</P>", Table: domain.TableEnRu, Popularity: pop(120)}

	t.Run("collapsed shows gloss", func(t *testing.T) {
		t.Parallel()
		got := ansi.Strip(EntryLine(e, false, false, 80))
		assert.Equal(t, "  ▸ tree ★★★  дерево, древо", got)
	})

	t.Run("expanded hides gloss", func(t *testing.T) {
		t.Parallel()
		got := ansi.Strip(EntryLine(e, true, true, 80))
		assert.Equal(t, "> ▾ tree ★★★", got)
	})

	t.Run("stressed form shown", func(t *testing.T) {
		t.Parallel()
		ru := domain.Entry{Word: "мир", Stress: "ми\u0301р", Table: domain.TableRuEn}
		got := ansi.Strip(EntryLine(ru, false, false, 80))
		assert.Contains(t, got, "ми\u0301р")
	})

	t.Run("truncated to width", func(t *testing.T) {
		t.Parallel()
		got := EntryLine(e, false, false, 12)
		assert.LessOrEqual(t, lipgloss.Width(got), 12)
		assert.True(t, strings.HasSuffix(ansi.Strip(got), "…"))
	})
}

func TestRenderDocument(t *testing.T) {
	t.Parallel()

	doc := render.Document{
		Transcription: "tri:",
		Items: []render.Item{
			{Kind: render.ItemSense, Segments: []render.Segment{
				{Text: "1. "},
				{Text: "n", Style: render.StyleAbbr},
				{Text: " "},
				{Text: "дерево", Link: "дерево"},
			}},
			{Kind: render.ItemExample, Segments: []render.Segment{
				{Text: "a tall tree", Style: render.StyleExample},
			}},
		},
	}

	got := ansi.Strip(RenderDocument(doc, DocumentOptions{Width: 40, Indent: "    "}))
	lines := strings.Split(got, "\n")

	assert.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], "[tri:]"), "transcription right aligned: %q", lines[0])
	assert.Equal(t, "    1. n дерево", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "    "))
	assert.Contains(t, lines[2], "a tall tree")
}

func TestRenderDocument_Wraps(t *testing.T) {
	t.Parallel()

	doc := render.Document{Items: []render.Item{{
		Kind:     render.ItemSense,
		Segments: []render.Segment{{Text: strings.Repeat("слово ", 10)}},
	}}}

	got := RenderDocument(doc, DocumentOptions{Width: 20})

	lines := strings.Split(got, "\n")
	assert.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, lipgloss.Width(l), 20)
	}
}

func TestRenderDocument_Degraded(t *testing.T) {
	t.Parallel()

	doc := render.Document{Degraded: true, Source: "<li>broken"}

	got := ansi.Strip(RenderDocument(doc, DocumentOptions{Width: 40}))

	assert.Contains(t, got, "<li>broken")
}

func TestTruncateAndPad(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 5))
}
