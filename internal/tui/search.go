// Package tui implements the interactive search screen: a query line that
// re-runs the search on every edit, an arrow-key-navigable match list, and
// Enter/Ctrl-C to leave the loop with or without a selection.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mdquery/mdq/internal/note"
)

// noSelection marks a match list with no highlighted row.
const noSelection = -1

// Status tracks how the interactive loop ends.
type Status int

const (
	// StatusEditing means the loop is still running.
	StatusEditing Status = iota
	// StatusAccepted means the user pressed Enter.
	StatusAccepted
	// StatusCancelled means the user pressed Ctrl-C.
	StatusCancelled
)

// Searcher runs one query and returns ranked matches. The query executor
// satisfies this.
type Searcher interface {
	Execute(query string) ([]*note.Document, error)
}

// Model is the bubbletea model for the search screen. Update is a pure
// state transition, so tests drive it with key messages directly.
type Model struct {
	input    textinput.Model
	searcher Searcher

	matches  []*note.Document
	cursor   int
	queryErr error

	status Status
	styles Styles
	height int
}

// New builds a search model over the given searcher.
func New(searcher Searcher, opts ...ModelOption) Model {
	input := textinput.New()
	input.Prompt = "? "
	input.Placeholder = "search notes"
	input.Focus()

	m := Model{
		input:    input,
		searcher: searcher,
		cursor:   noSelection,
		styles:   DefaultStyles(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithStyles overrides the default style set.
func WithStyles(styles Styles) ModelOption {
	return func(m *Model) { m.styles = styles }
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model. Every edit keystroke re-runs the query;
// arrow keys move the highlight with wraparound; Enter accepts, Ctrl-C
// cancels.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.status = StatusCancelled
			return m, tea.Quit

		case tea.KeyEnter:
			m.status = StatusAccepted
			return m, tea.Quit

		case tea.KeyDown:
			m.cursor = next(m.cursor, len(m.matches))
			return m, nil

		case tea.KeyUp:
			m.cursor = previous(m.cursor, len(m.matches))
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.requery()
	}
	return m, cmd
}

// requery re-runs the current query line. On a parse error the list is
// cleared and the error shown until the line becomes parseable again.
func (m *Model) requery() {
	matches, err := m.searcher.Execute(m.input.Value())
	if err != nil {
		m.matches = nil
		m.cursor = noSelection
		m.queryErr = err
		return
	}
	m.matches = matches
	m.queryErr = nil
	if m.cursor >= len(m.matches) {
		m.cursor = noSelection
	}
}

// next moves the highlight down one row, wrapping from the last row to
// the first. With no highlight it starts at the first row.
func next(cursor, n int) int {
	if n == 0 {
		return noSelection
	}
	if cursor == noSelection || cursor == n-1 {
		return 0
	}
	return cursor + 1
}

// previous moves the highlight up one row, wrapping from the first row
// to the last. With no highlight it starts at the last row.
func previous(cursor, n int) int {
	if n == 0 {
		return noSelection
	}
	if cursor == noSelection || cursor == 0 {
		return n - 1
	}
	return cursor - 1
}

// Status reports how the loop ended, or StatusEditing while it runs.
func (m Model) Status() Status {
	return m.status
}

// Selection returns the highlighted match, or nil when nothing is
// highlighted. Meaningful after the loop ends with StatusAccepted.
func (m Model) Selection() *note.Document {
	if m.cursor == noSelection || m.cursor >= len(m.matches) {
		return nil
	}
	return m.matches[m.cursor]
}

// Matches exposes the current match list.
func (m Model) Matches() []*note.Document {
	return m.matches
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Prompt.Render("mdq"))
	b.WriteString(" ")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.queryErr != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("  %v", m.queryErr)))
		b.WriteString("\n")
	} else if len(m.matches) > 0 {
		b.WriteString(m.styles.Count.Render(fmt.Sprintf("  %d matches", len(m.matches))))
		b.WriteString("\n")
	}

	for i, doc := range m.matches {
		line := fmt.Sprintf("%s  %s", doc.Title, m.styles.MatchPath.Render(doc.FullPath))
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Match.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Hint.Render("  enter: select   up/down: move   ctrl-c: quit"))
	b.WriteString("\n")
	return b.String()
}

// Run drives the interactive loop to completion on the caller's terminal
// and returns the final model state.
func Run(searcher Searcher, opts ...ModelOption) (Model, error) {
	program := tea.NewProgram(New(searcher, opts...), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return Model{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("unexpected final model type %T", final)
	}
	return m, nil
}
