// Package tui is the interactive terminal front end of a search session.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/heartmarshall/ruendict/internal/domain"
	"github.com/heartmarshall/ruendict/internal/render"
	"github.com/heartmarshall/ruendict/internal/service/session"
	"github.com/heartmarshall/ruendict/internal/ui"
)

// Model is the root bubbletea model. The session is shared between copies
// of the model and is only touched from Update.
type Model struct {
	ctx  context.Context
	sess *session.Session

	query string
	state session.State

	selected   int
	linkIndex  int
	recentNext int

	width  int
	height int
}

// New restores the last search of sess and returns the initial model.
func New(ctx context.Context, sess *session.Session) Model {
	st := sess.Restore(ctx)
	return Model{
		ctx:       ctx,
		sess:      sess,
		query:     st.Query,
		state:     st,
		linkIndex: -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// lookupCmd runs dispatch off the update loop. Only the result travels
// back; it is applied in Update.
func lookupCmd(ctx context.Context, sess *session.Session, ticket session.Ticket, query string) tea.Cmd {
	return func() tea.Msg {
		return LookupDoneMsg{Ticket: ticket, Result: sess.Lookup(ctx, query)}
	}
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case LookupDoneMsg:
		if st, ok := m.sess.Apply(m.ctx, msg.Ticket, msg.Result); ok {
			m.setState(st)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) setState(st session.State) {
	m.state = st
	m.selected = 0
	m.linkIndex = -1
}

// search starts a lookup for the current query.
func (m Model) search() (tea.Model, tea.Cmd) {
	ticket := m.sess.Begin(m.query)
	return m, lookupCmd(m.ctx, m.sess, ticket, m.query)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit:
		return m, tea.Quit

	case KeyUp:
		if m.selected > 0 {
			m.selected--
			m.linkIndex = -1
		}
		return m, nil

	case KeyDown:
		if m.selected < len(m.state.Entries)-1 {
			m.selected++
			m.linkIndex = -1
		}
		return m, nil

	case KeyToggle:
		return m.activate()

	case KeyNextLink:
		m.cycleLink(1)
		return m, nil

	case KeyPrevLink:
		m.cycleLink(-1)
		return m, nil

	case KeyBack:
		if st, ok := m.sess.Back(m.ctx); ok {
			m.setState(st)
			m.query = st.Query
		}
		return m, nil

	case KeyBackspace:
		if m.query == "" {
			return m, nil
		}
		r := []rune(m.query)
		m.query = string(r[:len(r)-1])
		return m.search()

	case KeyClearQuery:
		m.query = ""
		return m.search()

	case KeyRecent:
		recents := m.sess.Recents()
		if len(recents) == 0 {
			return m, nil
		}
		m.query = recents[m.recentNext%len(recents)]
		m.recentNext++
		return m.search()

	case KeyClearRecents:
		m.sess.ClearRecents(m.ctx)
		m.recentNext = 0
		return m, nil
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.query += string(msg.Runes)
		if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
			m.query += " "
		}
		return m.search()
	}
	return m, nil
}

// activate follows the highlighted link, or toggles the selected row and
// records the query as a finished search.
func (m Model) activate() (tea.Model, tea.Cmd) {
	e, ok := m.selectedEntry()
	if !ok {
		return m, nil
	}

	if link := m.activeLink(); link != "" {
		if st, ok := m.sess.FollowLink(m.ctx, link); ok {
			m.setState(st)
			m.query = st.Query
		}
		return m, nil
	}

	st, _ := m.sess.Toggle(m.ctx, e.Word)
	m.state = st
	m.linkIndex = -1
	m.sess.Commit(m.ctx, m.query)
	return m, nil
}

func (m Model) selectedEntry() (domain.Entry, bool) {
	if m.selected < 0 || m.selected >= len(m.state.Entries) {
		return domain.Entry{}, false
	}
	return m.state.Entries[m.selected], true
}

func (m Model) selectedDocument() (render.Document, bool) {
	e, ok := m.selectedEntry()
	if !ok || !m.state.IsExpanded(e.Word) {
		return render.Document{}, false
	}
	return m.sess.Document(e.Word)
}

// activeLink returns the highlighted link of the selected row's article.
func (m Model) activeLink() string {
	doc, ok := m.selectedDocument()
	if !ok || m.linkIndex < 0 {
		return ""
	}
	links := doc.Links()
	if m.linkIndex >= len(links) {
		return ""
	}
	return links[m.linkIndex]
}

func (m *Model) cycleLink(step int) {
	doc, ok := m.selectedDocument()
	if !ok {
		return
	}
	n := len(doc.Links())
	if n == 0 {
		m.linkIndex = -1
		return
	}
	m.linkIndex = ((m.linkIndex+step)%n + n) % n
}

// View renders the full TUI.
func (m Model) View() string {
	width := m.width
	if width == 0 {
		width = ui.DefaultWidth
	}
	divider := ui.DividerStyle.Render(strings.Repeat("─", width))

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, divider)
	sections = append(sections, m.renderResults(width))
	sections = append(sections, divider)
	if r := m.renderRecents(width); r != "" {
		sections = append(sections, r)
	}
	if h := m.renderSpeechHint(); h != "" {
		sections = append(sections, h)
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	header := ui.TitleStyle.Render("ruendict") + " " + ui.DimStyle.Render(string(m.state.Table))
	input := "> " + m.query + "▌"
	if m.state.Variant != "" {
		input += ui.DimStyle.Render("  (" + m.state.Variant + ")")
	}
	return header + "\n" + input
}

func (m Model) renderResults(width int) string {
	if len(m.state.Entries) == 0 {
		return ui.DimStyle.Render("  No results")
	}

	var lines []string
	selectedLine := 0
	active := m.activeLink()
	for i, e := range m.state.Entries {
		if i == m.selected {
			selectedLine = len(lines)
		}
		expanded := m.state.IsExpanded(e.Word)
		lines = append(lines, ui.EntryLine(e, i == m.selected, expanded, width))
		if !expanded {
			continue
		}
		if doc, ok := m.sess.Document(e.Word); ok {
			link := ""
			if i == m.selected {
				link = active
			}
			rendered := ui.RenderDocument(doc, ui.DocumentOptions{
				Width:      width,
				Indent:     "    ",
				ActiveLink: link,
			})
			lines = append(lines, strings.Split(rendered, "\n")...)
		}
	}

	height := m.resultsHeight()
	start := 0
	if selectedLine >= height {
		start = selectedLine - height/2
	}
	end := min(len(lines), start+height)
	return strings.Join(lines[start:end], "\n")
}

func (m Model) resultsHeight() int {
	if m.height == 0 {
		return 20
	}
	// header(2) + dividers(2) + recents(1) + speech(1) + footer(1)
	return max(5, m.height-7)
}

func (m Model) renderRecents(width int) string {
	recents := m.sess.Recents()
	if len(recents) == 0 {
		return ""
	}
	return ui.Truncate(ui.DimStyle.Render("recent: ")+strings.Join(recents, " · "), width)
}

func (m Model) renderSpeechHint() string {
	e, ok := m.selectedEntry()
	if !ok {
		return ""
	}
	h := session.SpeechHintFor(e)
	return ui.DimStyle.Render(fmt.Sprintf("say: %s (%s)", h.Text, h.Language))
}

func (m Model) renderFooter() string {
	parts := []string{
		ui.FooterKeyStyle.Render("↑↓") + ui.FooterDescStyle.Render(" Select"),
		ui.FooterKeyStyle.Render("Enter") + ui.FooterDescStyle.Render(" Expand/Follow"),
		ui.FooterKeyStyle.Render("Tab") + ui.FooterDescStyle.Render(" Link"),
		ui.FooterKeyStyle.Render("Esc") + ui.FooterDescStyle.Render(" Back"),
		ui.FooterKeyStyle.Render("^R") + ui.FooterDescStyle.Render(" Recent"),
		ui.FooterKeyStyle.Render("^L") + ui.FooterDescStyle.Render(" Clear recents"),
		ui.FooterKeyStyle.Render("^C") + ui.FooterDescStyle.Render(" Quit"),
	}
	return strings.Join(parts, "  ")
}

// Run starts the interactive program on the terminal.
func Run(ctx context.Context, sess *session.Session) error {
	p := tea.NewProgram(New(ctx, sess), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
