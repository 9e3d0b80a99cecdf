// Package editor is the full-screen journal editor: one bubbletea model
// editing one day's document, with caret and selection movement, inline mark
// toggles, font sizing, and debounced write-through saves.
package editor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/autosave"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/mark"
	"tableflip.dev/daybook/pkg/richtext"
	"tableflip.dev/daybook/pkg/store"
)

// sizeStep is how far one keystroke moves the font size.
const sizeStep = 2

// statusInterval paces the save-state polls that feed the status bar.
const statusInterval = 250 * time.Millisecond

type tickMsg struct{}

// settingsMsg arrives when another process rewrites the settings blob.
type settingsMsg struct{}

// Model edits one entry's document.
type Model struct {
	svc   *app.Service
	auto  *autosave.Coordinator
	theme Theme
	keys  keyMap

	entry *entry.Entry
	doc   *richtext.Document

	caret       int
	anchor      int
	selecting   bool
	defaultSize int

	status   autosave.State
	width    int
	height   int
	errLine  string
	quitting bool
}

// NewModel opens the entry for the date key and wires the autosave
// coordinator against it.
func NewModel(svc *app.Service, dateKey string) (*Model, error) {
	e, err := svc.Open(context.Background(), dateKey)
	if err != nil {
		return nil, err
	}

	auto := autosave.New(autosave.DefaultDelay, svc.SaveFunc())
	auto.Seed(e.ID, e.Content)

	cfg := svc.Settings()
	m := &Model{
		svc:         svc,
		auto:        auto,
		theme:       NewTheme(cfg),
		keys:        defaultKeyMap(),
		entry:       e,
		doc:         e.Content,
		caret:       e.Content.Len(),
		defaultSize: cfg.EditorFontSize,
	}
	return m, nil
}

// Run drives the editor program until the user quits, then flushes any
// pending save.
func Run(svc *app.Service, dateKey string) error {
	m, err := NewModel(svc, dateKey)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Re-theme live when another process rewrites the settings blob.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if events, err := svc.Store.Watch(ctx); err == nil {
		go func() {
			for ev := range events {
				if ev.Type == store.EventSettingsChanged {
					p.Send(settingsMsg{})
				}
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return err
	}
	return m.auto.Flush(context.Background())
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(statusInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case settingsMsg:
		cfg := m.svc.Settings()
		m.theme = NewTheme(cfg)
		m.defaultSize = cfg.EditorFontSize
		return m, nil

	case tickMsg:
		m.status = m.auto.State()
		if m.quitting {
			return m, tea.Quit
		}
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errLine = ""

	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.selecting {
			m.selecting = false
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Left):
		m.moveCaret(m.caret-1, false)
	case key.Matches(msg, m.keys.Right):
		m.moveCaret(m.caret+1, false)
	case key.Matches(msg, m.keys.SelectLeft):
		m.moveCaret(m.caret-1, true)
	case key.Matches(msg, m.keys.SelectRight):
		m.moveCaret(m.caret+1, true)
	case key.Matches(msg, m.keys.Home):
		m.moveCaret(0, false)
	case key.Matches(msg, m.keys.End):
		m.moveCaret(m.doc.Len(), false)
	case key.Matches(msg, m.keys.SelectHome):
		m.moveCaret(0, true)
	case key.Matches(msg, m.keys.SelectEnd):
		m.moveCaret(m.doc.Len(), true)

	case key.Matches(msg, m.keys.Backspace):
		m.deleteBackward()
	case key.Matches(msg, m.keys.Delete):
		m.deleteForward()

	case key.Matches(msg, m.keys.Enter):
		m.insert("\n")

	case key.Matches(msg, m.keys.Bold):
		m.toggleMark(mark.Bold)
	case key.Matches(msg, m.keys.Italic):
		m.toggleMark(mark.Italic)
	case key.Matches(msg, m.keys.Underline):
		m.toggleMark(mark.Underline)
	case key.Matches(msg, m.keys.Highlight):
		m.toggleMark(mark.Highlight)

	case key.Matches(msg, m.keys.SizeUp):
		m.bumpSize(sizeStep)
	case key.Matches(msg, m.keys.SizeDown):
		m.bumpSize(-sizeStep)

	case key.Matches(msg, m.keys.Save):
		if err := m.auto.SaveNow(context.Background(), m.entry.ID, m.doc); err != nil {
			m.errLine = err.Error()
		}
		m.status = m.auto.State()

	default:
		if msg.Type == tea.KeyRunes && !msg.Alt {
			m.insert(string(msg.Runes))
		} else if msg.Type == tea.KeySpace {
			m.insert(" ")
		}
	}
	return m, nil
}

// selection returns the active range, or a caret when nothing is selected.
func (m *Model) selection() richtext.Selection {
	if m.selecting && m.anchor != m.caret {
		return richtext.Range(m.anchor, m.caret)
	}
	return richtext.Caret(m.caret)
}

func (m *Model) moveCaret(to int, extend bool) {
	if to < 0 {
		to = 0
	}
	if n := m.doc.Len(); to > n {
		to = n
	}
	if extend && !m.selecting {
		m.anchor = m.caret
		m.selecting = true
	}
	if !extend {
		m.selecting = false
	}
	m.caret = to
}

func (m *Model) insert(text string) {
	if m.selecting {
		m.deleteSelection()
	}
	if err := m.doc.InsertText(m.caret, text); err != nil {
		m.errLine = err.Error()
		return
	}
	m.caret += len([]rune(text))
	m.changed()
}

func (m *Model) deleteBackward() {
	if m.selecting {
		m.deleteSelection()
		m.changed()
		return
	}
	if m.caret == 0 {
		return
	}
	if err := m.doc.DeleteRange(richtext.Range(m.caret-1, m.caret)); err != nil {
		m.errLine = err.Error()
		return
	}
	m.caret--
	m.changed()
}

func (m *Model) deleteForward() {
	if m.selecting {
		m.deleteSelection()
		m.changed()
		return
	}
	if m.caret >= m.doc.Len() {
		return
	}
	if err := m.doc.DeleteRange(richtext.Range(m.caret, m.caret+1)); err != nil {
		m.errLine = err.Error()
		return
	}
	m.changed()
}

// deleteSelection removes the selected range and collapses the caret to its
// left edge.
func (m *Model) deleteSelection() {
	sel := m.selection()
	if sel.Collapsed() {
		m.selecting = false
		return
	}
	start := sel.Start
	if sel.End < start {
		start = sel.End
	}
	if err := m.doc.DeleteRange(sel); err != nil {
		m.errLine = err.Error()
		return
	}
	m.caret = start
	m.selecting = false
}

func (m *Model) toggleMark(mk mark.Mark) {
	sel := m.selection()
	if sel.Collapsed() {
		return
	}
	if err := m.doc.ToggleMark(mk.String(), sel); err != nil {
		m.errLine = err.Error()
		return
	}
	m.changed()
}

// bumpSize steps the size in effect at the selection. A collapsed caret
// makes the new size sticky for the next typed text and promotes it to the
// editor default.
func (m *Model) bumpSize(delta int) {
	size := m.activeSize() + delta
	if size < 6 {
		size = 6
	}
	res, err := m.doc.ApplyFontSize(size, m.selection())
	if err != nil {
		m.errLine = err.Error()
		return
	}
	if res.SetDefault {
		cfg := m.svc.Settings()
		cfg.EditorFontSize = size
		if err := m.svc.SaveSettings(cfg); err != nil {
			m.errLine = err.Error()
		}
		m.defaultSize = size
	}
	m.changed()
}

// activeSize is what the toolbar shows: the style at the selection, else the
// editor default.
func (m *Model) activeSize() int {
	if size, ok := m.doc.CurrentStyleAt(m.selection()); ok {
		return size
	}
	return m.defaultSize
}

func (m *Model) changed() {
	m.auto.Changed(m.entry.ID, m.doc)
	m.status = m.auto.State()
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.entry.ID))
	if len(m.entry.Tags) > 0 {
		b.WriteString("  ")
		b.WriteString(m.theme.Tags.Render("#" + strings.Join(m.entry.Tags, " #")))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderDocument())
	b.WriteString("\n\n")
	b.WriteString(m.statusBar())
	return b.String()
}

// renderDocument walks the leaf runs and styles each rune: run style first,
// then the selection overlay, then the caret cell.
func (m *Model) renderDocument() string {
	sel := m.selection()
	var b strings.Builder
	at := 0
	for _, r := range m.doc.Runs() {
		style := m.theme.RunStyle(r.FontSize, m.defaultSize)
		if r.Marks[string(mark.Bold)] {
			style = style.Bold(true)
		}
		if r.Marks[string(mark.Italic)] {
			style = style.Italic(true)
		}
		if r.Marks[string(mark.Underline)] {
			style = style.Underline(true)
		}
		if r.Marks[string(mark.Highlight)] {
			style = style.Reverse(true)
		}
		for _, ch := range r.Text {
			b.WriteString(m.renderRune(ch, at, sel, style))
			at++
		}
	}
	if m.caret == at {
		b.WriteString(m.theme.Caret.Render(" "))
	}
	return b.String()
}

func (m *Model) renderRune(ch rune, at int, sel richtext.Selection, style lipgloss.Style) string {
	if ch == '\n' {
		if at == m.caret {
			return m.theme.Caret.Render(" ") + "\n"
		}
		return "\n"
	}
	s := string(ch)
	if at == m.caret {
		return m.theme.Caret.Render(s)
	}
	lo, hi := sel.Start, sel.End
	if hi < lo {
		lo, hi = hi, lo
	}
	if m.selecting && at >= lo && at < hi {
		return m.theme.Selection.Render(s)
	}
	return style.Render(s)
}

func (m *Model) statusBar() string {
	status := m.theme.Status.Render(m.status.String())
	if m.status != autosave.Idle {
		status = m.theme.StatusHot.Render(m.status.String())
	}
	size := m.theme.Status.Render(SizeLabel(m.activeSize()))

	var hints []string
	for _, b := range m.keys.helpEntries() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	help := m.theme.Help.Render(strings.Join(hints, "  "))
	line := fmt.Sprintf("%s  %s  %s", status, size, help)
	if m.errLine != "" {
		line += "\n" + m.theme.StatusHot.Render(m.errLine)
	}
	return line
}
