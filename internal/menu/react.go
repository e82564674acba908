package menu

import (
	"slices"
	"strings"

	"github.com/nibzard/todomenu/internal/mode"
	"github.com/nibzard/todomenu/internal/todo"
)

// React handles one event from the host. input is the host's text buffer;
// the returned string replaces it.
func (m *Menu) React(ev mode.Event, input string) (mode.Action, string) {
	m.saved = false
	from := m.state

	action, input := m.react(ev, input)

	if m.state.String() != from.String() {
		m.logger.Debug("transition", "from", from, "to", m.state)
	}
	return action, input
}

func (m *Menu) react(ev mode.Event, input string) (mode.Action, string) {
	switch ev := ev.(type) {
	case mode.Select:
		return m.selectRow(ev.Index, input)
	case mode.AltSelect:
		if _, ok := m.state.(Tasks); ok {
			if m.valid(ev.Index) {
				m.tasks[ev.Index].Toggle()
				m.focus = ev.Index
			}
			return mode.Reload, input
		}
		return m.selectRow(ev.Index, input)
	case mode.DeleteItem:
		if _, ok := m.state.(Tasks); ok && m.valid(ev.Index) {
			m.remove(ev.Index)
		}
		return mode.Reload, input
	case mode.FreeTextSubmit:
		return m.submit(input)
	case mode.Cancel:
		return m.cancel(input)
	}
	return mode.Reload, input
}

func (m *Menu) selectRow(i int, input string) (mode.Action, string) {
	if !m.valid(i) {
		return mode.Reload, input
	}

	switch s := m.state.(type) {
	case Tasks:
		m.focus = i
		m.state = ModifyTask{Index: i}
		return mode.Reload, ""

	case ModifyTask:
		task := &m.tasks[s.Index]
		if s.Option == nil {
			switch o := ModifyOption(i); o {
			case OptionDone:
				task.Toggle()
				return mode.Reload, input
			case OptionSubject:
				m.state = modifying(s.Index, o)
				return mode.Reload, task.Subject
			case OptionPriority, OptionDelete:
				m.state = modifying(s.Index, o)
				return mode.Reload, ""
			case OptionBack:
				m.state = Tasks{}
				return mode.Reload, ""
			}
			return mode.Reload, input
		}

		switch *s.Option {
		case OptionPriority:
			if i == 0 {
				task.Priority = todo.NoPriority
			} else {
				task.Priority = todo.PriorityFromOrdinal(i - 1)
			}
			m.state = ModifyTask{Index: s.Index}
		case OptionDelete:
			if i == rowConfirm {
				m.remove(s.Index)
				m.state = Tasks{}
			} else {
				m.state = ModifyTask{Index: s.Index}
			}
		}
		return mode.Reload, ""

	case AddTask:
		if i == rowConfirm {
			m.tasks = append(m.tasks, s.Pending)
			m.focus = len(m.tasks) - 1
		}
		m.state = Tasks{}
		return mode.Reload, ""
	}
	return mode.Reload, input
}

// submit handles free text. Text that leaves no subject once markers are
// stripped is ignored, since it would serialize to a blank line.
func (m *Menu) submit(input string) (mode.Action, string) {
	parsed := todo.Parse(input)
	if strings.TrimSpace(parsed.Subject) == "" {
		return mode.Reload, input
	}

	switch s := m.state.(type) {
	case Tasks:
		m.state = AddTask{Pending: parsed}
		return mode.Reload, ""
	case ModifyTask:
		if s.Option != nil && *s.Option == OptionSubject {
			m.tasks[s.Index].SetSubject(input)
			m.state = ModifyTask{Index: s.Index}
			return mode.Reload, ""
		}
	}
	return mode.Reload, input
}

func (m *Menu) cancel(input string) (mode.Action, string) {
	switch s := m.state.(type) {
	case Tasks:
		return m.terminate(input)
	case ModifyTask:
		if s.Option != nil {
			m.state = ModifyTask{Index: s.Index}
		} else {
			m.state = Tasks{}
		}
		return mode.Reload, ""
	case AddTask:
		m.state = Tasks{}
		return mode.Reload, ""
	}
	return mode.Reload, input
}

// terminate saves and ends the session. A failed save is reported and
// normally must not block exit; the first failure is the one exception and
// keeps the session open so the user can retry with the in-memory tasks
// intact. A second consecutive failure exits anyway.
func (m *Menu) terminate(input string) (mode.Action, string) {
	if err := m.save(); err != nil && m.saveFails == 1 {
		return mode.Reload, input
	}
	return mode.Exit, input
}

// remove deletes task i. Callers only remove from pages whose index is i,
// and leave those pages right after.
func (m *Menu) remove(i int) {
	m.tasks = slices.Delete(m.tasks, i, i+1)
	if m.focus >= len(m.tasks) {
		m.focus = max(len(m.tasks)-1, 0)
	}
}

func (m *Menu) valid(i int) bool {
	return i >= 0 && i < m.Len()
}
