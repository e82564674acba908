// Package ui hosts a mode.Mode in the terminal with bubbletea.
package ui

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todomenu/internal/mode"
)

// Option configures the program.
type Option func(*runConfig)

type runConfig struct {
	input     io.Reader
	output    io.Writer
	altScreen bool
	keys      KeyMap
}

// WithInput reads keys from r instead of stdin.
func WithInput(r io.Reader) Option {
	return func(c *runConfig) {
		c.input = r
	}
}

// WithOutput draws to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(c *runConfig) {
		c.output = w
	}
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *runConfig) {
		c.altScreen = enabled
	}
}

// WithKeyMap replaces the default bindings.
func WithKeyMap(k KeyMap) Option {
	return func(c *runConfig) {
		c.keys = k
	}
}

// Run drives m until it asks to exit, the user interrupts, or ctx is done.
func Run(ctx context.Context, m mode.Mode, opts ...Option) error {
	c := &runConfig{
		altScreen: true,
		keys:      DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(c)
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if c.input != nil {
		programOpts = append(programOpts, tea.WithInput(c.input))
	}
	if c.output != nil {
		programOpts = append(programOpts, tea.WithOutput(c.output))
	}

	program := tea.NewProgram(NewModel(m, c.keys), programOpts...)
	_, err := program.Run()
	return err
}

var (
	selectedStyle = lipgloss.NewStyle().Bold(true)
	messageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the bubbletea model hosting a mode.
type Model struct {
	mode     mode.Mode
	keys     KeyMap
	input    textinput.Model
	visible  []int
	selected int
	offset   int
	height   int
	done     bool
}

// NewModel creates a model over m with the input focused.
func NewModel(m mode.Mode, keys KeyMap) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "filter or new task"
	input.Focus()

	model := &Model{
		mode:  m,
		keys:  keys,
		input: input,
	}
	model.reload()
	return model
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 0)
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			return m.react(mode.Cancel{})
		case key.Matches(msg, m.keys.AltSelect):
			if row, ok := m.Highlighted(); ok {
				return m.react(mode.AltSelect{Index: row})
			}
			return m, nil
		case key.Matches(msg, m.keys.Select):
			if row, ok := m.Highlighted(); ok {
				return m.react(mode.Select{Index: row})
			}
			return m.react(mode.FreeTextSubmit{})
		case key.Matches(msg, m.keys.Submit):
			return m.react(mode.FreeTextSubmit{})
		case key.Matches(msg, m.keys.Delete):
			if row, ok := m.Highlighted(); ok {
				return m.react(mode.DeleteItem{Index: row})
			}
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.move(1)
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.filter()
		m.selected = 0
		m.scroll()
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	end := len(m.visible)
	if rows := m.rows(); rows > 0 {
		end = min(end, m.offset+rows)
	}
	for pos := m.offset; pos < end; pos++ {
		label := m.mode.Label(m.visible[pos])
		if pos == m.selected {
			b.WriteString(selectedStyle.Render("> ") + label)
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}

	if msg := m.mode.Message(); msg != "" {
		if m.failed() {
			b.WriteString(errorStyle.Render(msg))
		} else {
			b.WriteString(messageStyle.Render(msg))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

// Value returns the input buffer.
func (m *Model) Value() string {
	return m.input.Value()
}

// Visible returns the rows that match the input buffer.
func (m *Model) Visible() []int {
	return m.visible
}

// Highlighted returns the highlighted row, if any row is visible.
func (m *Model) Highlighted() (int, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return 0, false
	}
	return m.visible[m.selected], true
}

// Done reports whether the mode asked to exit.
func (m *Model) Done() bool {
	return m.done
}

func (m *Model) react(ev mode.Event) (tea.Model, tea.Cmd) {
	action, text := m.mode.React(ev, m.input.Value())
	m.input.SetValue(text)
	m.input.CursorEnd()
	if action == mode.Exit {
		m.done = true
		return m, tea.Quit
	}
	m.reload()
	return m, nil
}

// reload re-enumerates rows and moves the highlight to the mode's cursor.
func (m *Model) reload() {
	m.filter()
	m.selected = 0
	if c, ok := m.mode.(mode.Cursor); ok {
		row := c.Cursor()
		for pos, i := range m.visible {
			if i == row {
				m.selected = pos
				break
			}
		}
	}
	m.scroll()
}

func (m *Model) filter() {
	query := m.input.Value()
	n := m.mode.Len()
	m.visible = m.visible[:0]
	for i := 0; i < n; i++ {
		if m.mode.Matches(i, query) {
			m.visible = append(m.visible, i)
		}
	}
}

func (m *Model) move(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), len(m.visible)-1)
	m.scroll()
}

// scroll keeps the highlighted row inside the window.
func (m *Model) scroll() {
	rows := m.rows()
	if rows <= 0 {
		m.offset = 0
		return
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	m.offset = max(min(m.offset, len(m.visible)-rows), 0)
}

// rows is the number of rows that fit between the input and the footer.
// Zero means unknown.
func (m *Model) rows() int {
	if m.height == 0 {
		return 0
	}
	return max(m.height-3, 1)
}

func (m *Model) failed() bool {
	f, ok := m.mode.(interface{ Err() error })
	return ok && f.Err() != nil
}

func (m *Model) help() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " | ")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
