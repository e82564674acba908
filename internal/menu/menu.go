// Package menu implements the todo.txt menu: a state machine over the task
// collection that a host drives one event at a time.
package menu

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todomenu/internal/mode"
	"github.com/nibzard/todomenu/internal/present"
	"github.com/nibzard/todomenu/internal/todo"
)

// Rows on fixed pages.
const (
	// priorityRows covers "none" plus one row per ordinal starting at A.
	priorityRows = todo.PriorityCount
	confirmRows  = 2
)

// Confirmation rows on the delete and add pages.
const (
	rowConfirm = 0
	rowCancel  = 1
)

var (
	_ mode.Mode   = (*Menu)(nil)
	_ mode.Cursor = (*Menu)(nil)
)

// Store loads and saves the task collection.
type Store interface {
	Load() ([]todo.Task, error)
	Save(tasks []todo.Task) error
}

// Option configures a Menu.
type Option func(*Menu)

// WithColors renders task labels with c.
func WithColors(c present.Colors) Option {
	return func(m *Menu) {
		m.presenter = present.New(c)
	}
}

// WithPresenter renders task labels with p.
func WithPresenter(p *present.Presenter) Option {
	return func(m *Menu) {
		m.presenter = p
	}
}

// WithMatcher filters rows with mt.
func WithMatcher(mt Matcher) Option {
	return func(m *Menu) {
		m.matcher = mt
	}
}

// WithLogger logs transitions and store failures to l.
func WithLogger(l *log.Logger) Option {
	return func(m *Menu) {
		m.logger = l
	}
}

// Menu owns the task collection and the navigation state for one session.
// It is not safe for concurrent use; hosts deliver events one at a time.
type Menu struct {
	store     Store
	tasks     []todo.Task
	state     State
	focus     int
	err       error
	saveFails int
	saved     bool

	presenter *present.Presenter
	matcher   Matcher
	logger    *log.Logger
}

// New loads the task collection from store. A load failure is kept as the
// pending error and the menu starts with no tasks.
func New(store Store, opts ...Option) *Menu {
	m := &Menu{
		store:   store,
		state:   Tasks{},
		matcher: SubstringMatcher{},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.presenter == nil {
		m.presenter = present.New(present.DefaultColors())
	}

	tasks, err := store.Load()
	if err != nil {
		m.fail("load", err)
		tasks = nil
	}
	m.tasks = tasks
	m.logger.Debug("loaded tasks", "count", len(m.tasks))
	return m
}

// State returns the current page.
func (m *Menu) State() State {
	return m.state
}

// Tasks returns the task collection. Callers must not modify it.
func (m *Menu) Tasks() []todo.Task {
	return m.tasks
}

// Err returns the pending error, if any.
func (m *Menu) Err() error {
	return m.err
}

// Len returns the number of rows on the current page.
func (m *Menu) Len() int {
	switch s := m.state.(type) {
	case Tasks:
		return len(m.tasks)
	case ModifyTask:
		if s.Option == nil {
			return ModifyOptionCount
		}
		switch *s.Option {
		case OptionPriority:
			return priorityRows
		case OptionDelete:
			return confirmRows
		}
		return 0
	case AddTask:
		return confirmRows
	}
	return 0
}

// Label returns the display label of row i.
func (m *Menu) Label(i int) string {
	if _, ok := m.state.(Tasks); ok {
		return m.presenter.Render(&m.tasks[i])
	}
	return m.pageLabel(i)
}

// Matches reports whether row i matches query. Task rows match on the raw
// subject, every other row on its label.
func (m *Menu) Matches(i int, query string) bool {
	if _, ok := m.state.(Tasks); ok {
		return m.matcher.Match(query, m.tasks[i].Subject)
	}
	return m.matcher.Match(query, m.pageLabel(i))
}

// Cursor returns the row to highlight: the task last worked on, or the
// current priority on the priority page.
func (m *Menu) Cursor() int {
	switch s := m.state.(type) {
	case Tasks:
		return min(m.focus, max(len(m.tasks)-1, 0))
	case ModifyTask:
		if s.Option != nil && *s.Option == OptionPriority {
			return priorityRow(m.tasks[s.Index].Priority)
		}
	}
	return 0
}

// Message returns the status line for the current page, or the pending
// error in its place.
func (m *Menu) Message() string {
	if m.err != nil {
		return "Error: " + m.err.Error()
	}
	switch s := m.state.(type) {
	case Tasks:
		done := 0
		for i := range m.tasks {
			if m.tasks[i].Completed {
				done++
			}
		}
		return fmt.Sprintf("%d tasks, %d done", len(m.tasks), done)
	case ModifyTask:
		task := present.Plain(&m.tasks[s.Index])
		if s.Option == nil {
			return "Modify: " + task
		}
		switch *s.Option {
		case OptionSubject:
			return "Edit subject: " + task
		case OptionPriority:
			return "Set priority: " + task
		case OptionDelete:
			return "Delete: " + task + "?"
		}
		return task
	case AddTask:
		return "Add: " + present.Plain(&s.Pending) + "?"
	}
	return ""
}

// Close saves the collection unless the session already ended with a
// successful save. A failure becomes the pending error and is returned.
func (m *Menu) Close() error {
	if m.saved {
		return nil
	}
	return m.save()
}

func (m *Menu) pageLabel(i int) string {
	switch s := m.state.(type) {
	case ModifyTask:
		if s.Option == nil {
			return optionLabel(ModifyOption(i), &m.tasks[s.Index])
		}
		switch *s.Option {
		case OptionPriority:
			if i == 0 {
				return "None"
			}
			return "(" + todo.PriorityFromOrdinal(i-1).String() + ")"
		case OptionDelete:
			return confirmLabel(i)
		}
	case AddTask:
		return confirmLabel(i)
	}
	return ""
}

func optionLabel(o ModifyOption, t *todo.Task) string {
	switch o {
	case OptionDone:
		if t.Completed {
			return "Mark as not done"
		}
		return "Mark as done"
	case OptionSubject:
		return "Edit subject"
	case OptionPriority:
		return "Set priority"
	case OptionDelete:
		return "Delete"
	case OptionBack:
		return "Back"
	}
	return ""
}

func confirmLabel(i int) string {
	if i == rowConfirm {
		return "Confirm"
	}
	return "Cancel"
}

// priorityRow maps a priority to its row on the priority page.
func priorityRow(p todo.Priority) int {
	if !p.IsSet() {
		return 0
	}
	return p.Ordinal() + 1
}

func (m *Menu) save() error {
	if err := m.store.Save(m.tasks); err != nil {
		m.saveFails++
		m.fail("save", err)
		return err
	}
	m.saveFails = 0
	m.saved = true
	m.logger.Info("saved tasks", "count", len(m.tasks))
	return nil
}

func (m *Menu) fail(op string, err error) {
	m.err = err
	m.logger.Error("task file", "op", op, "err", err)
}
