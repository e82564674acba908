package menu

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/todomenu/internal/mode"
	"github.com/nibzard/todomenu/internal/todo"
)

type memStore struct {
	tasks   []todo.Task
	loadErr error
	saveErr error
	saves   int
	saved   []todo.Task
}

func (s *memStore) Load() ([]todo.Task, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return slices.Clone(s.tasks), nil
}

func (s *memStore) Save(tasks []todo.Task) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = slices.Clone(tasks)
	return nil
}

func newStore(lines ...string) *memStore {
	s := &memStore{}
	for _, line := range lines {
		s.tasks = append(s.tasks, todo.Parse(line))
	}
	return s
}

func stateAs[S State](t *testing.T, m *Menu) S {
	t.Helper()
	s, ok := m.State().(S)
	require.Truef(t, ok, "state: got %s, want %T", m.State(), *new(S))
	return s
}

func requireModifyPage(t *testing.T, m *Menu, index int) {
	t.Helper()
	s := stateAs[ModifyTask](t, m)
	require.Equal(t, index, s.Index)
	require.Nil(t, s.Option, "expected the modify page, got %s", s)
}

func requireOptionPage(t *testing.T, m *Menu, index int, o ModifyOption) {
	t.Helper()
	s := stateAs[ModifyTask](t, m)
	require.Equal(t, index, s.Index)
	require.NotNil(t, s.Option, "expected the %s page, got %s", o, s)
	require.Equal(t, o, *s.Option)
}

func react(t *testing.T, m *Menu, ev mode.Event, input string) (mode.Action, string) {
	t.Helper()
	return m.React(ev, input)
}

func TestNewLoadsTasks(t *testing.T) {
	m := New(newStore("(A) one", "x two", "three"))

	stateAs[Tasks](t, m)
	assert.Equal(t, 3, m.Len())
	assert.NoError(t, m.Err())
	assert.Equal(t, "3 tasks, 1 done", m.Message())
}

func TestLoadFailureIsSticky(t *testing.T) {
	store := &memStore{loadErr: errors.New("disk on fire")}
	m := New(store)

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, "Error: disk on fire", m.Message())

	// The session stays usable.
	react(t, m, mode.FreeTextSubmit{}, "new task")
	stateAs[AddTask](t, m)
	assert.Equal(t, "Error: disk on fire", m.Message())
	react(t, m, mode.Select{Index: rowConfirm}, "")
	assert.Equal(t, 1, m.Len())
}

func TestItemCounts(t *testing.T) {
	m := New(newStore("one", "two"))
	assert.Equal(t, 2, m.Len())

	react(t, m, mode.Select{Index: 1}, "")
	assert.Equal(t, ModifyOptionCount, m.Len())

	react(t, m, mode.Select{Index: int(OptionPriority)}, "")
	assert.Equal(t, 26, m.Len())
	react(t, m, mode.Cancel{}, "")

	react(t, m, mode.Select{Index: int(OptionDelete)}, "")
	assert.Equal(t, 2, m.Len())
	react(t, m, mode.Cancel{}, "")

	react(t, m, mode.Select{Index: int(OptionSubject)}, "")
	assert.Equal(t, 0, m.Len())
	react(t, m, mode.Cancel{}, "")
	react(t, m, mode.Cancel{}, "")

	react(t, m, mode.FreeTextSubmit{}, "three")
	assert.Equal(t, 2, m.Len())
}

func TestSelectOpensModifyPage(t *testing.T) {
	m := New(newStore("one", "two"))

	action, input := react(t, m, mode.Select{Index: 1}, "tw")
	assert.Equal(t, mode.Reload, action)
	assert.Equal(t, "", input)
	requireModifyPage(t, m, 1)
	assert.Equal(t, "Modify: two", m.Message())
}

func TestModifyDoneTogglesInPlace(t *testing.T) {
	m := New(newStore("one"))
	react(t, m, mode.Select{Index: 0}, "")

	assert.Equal(t, "Mark as done", m.Label(int(OptionDone)))
	react(t, m, mode.Select{Index: int(OptionDone)}, "")
	requireModifyPage(t, m, 0)
	assert.True(t, m.Tasks()[0].Completed)
	assert.Equal(t, "Mark as not done", m.Label(int(OptionDone)))

	react(t, m, mode.Select{Index: int(OptionDone)}, "")
	assert.False(t, m.Tasks()[0].Completed)
}

func TestModifySubject(t *testing.T) {
	m := New(newStore("x (B) old text +old"))
	react(t, m, mode.Select{Index: 0}, "")

	_, input := react(t, m, mode.Select{Index: int(OptionSubject)}, "")
	assert.Equal(t, "old text +old", input, "buffer must be pre-filled with the subject")
	requireOptionPage(t, m, 0, OptionSubject)

	// Selecting on the empty subject page does nothing.
	react(t, m, mode.Select{Index: 0}, input)
	requireOptionPage(t, m, 0, OptionSubject)

	_, input = react(t, m, mode.FreeTextSubmit{}, "(A) new text @ctx")
	assert.Equal(t, "", input)
	requireModifyPage(t, m, 0)

	task := m.Tasks()[0]
	assert.Equal(t, "new text @ctx", task.Subject)
	assert.Equal(t, []string{"ctx"}, task.Contexts)
	assert.Empty(t, task.Projects)
	assert.True(t, task.Completed)
	assert.Equal(t, "B", task.Priority.String())
}

func TestPriorityPage(t *testing.T) {
	m := New(newStore("(C) one"))
	react(t, m, mode.Select{Index: 0}, "")
	react(t, m, mode.Select{Index: int(OptionPriority)}, "")

	assert.Equal(t, 3, m.Cursor(), "current priority C is row 3")
	assert.Equal(t, "None", m.Label(0))
	assert.Equal(t, "(A)", m.Label(1))
	assert.Equal(t, "(Y)", m.Label(25))

	react(t, m, mode.Select{Index: 0}, "")
	requireModifyPage(t, m, 0)
	assert.False(t, m.Tasks()[0].Priority.IsSet())

	for k := 1; k < priorityRows; k++ {
		react(t, m, mode.Select{Index: int(OptionPriority)}, "")
		react(t, m, mode.Select{Index: k}, "")
		requireModifyPage(t, m, 0)
		require.Equal(t, k-1, m.Tasks()[0].Priority.Ordinal())

		react(t, m, mode.Select{Index: int(OptionPriority)}, "")
		require.Equal(t, k, m.Cursor(), "reopened page must highlight the chosen priority")
		react(t, m, mode.Cancel{}, "")
	}
}

func TestDeleteConfirmation(t *testing.T) {
	m := New(newStore("one", "two", "three"))
	react(t, m, mode.Select{Index: 1}, "")
	react(t, m, mode.Select{Index: int(OptionDelete)}, "")
	requireOptionPage(t, m, 1, OptionDelete)
	assert.Equal(t, "Delete: two?", m.Message())

	react(t, m, mode.Select{Index: rowCancel}, "")
	requireModifyPage(t, m, 1)
	assert.Len(t, m.Tasks(), 3)

	react(t, m, mode.Select{Index: int(OptionDelete)}, "")
	react(t, m, mode.Select{Index: rowConfirm}, "")
	stateAs[Tasks](t, m)
	require.Len(t, m.Tasks(), 2)
	assert.Equal(t, "one", m.Tasks()[0].Subject)
	assert.Equal(t, "three", m.Tasks()[1].Subject)
}

func TestAddFlow(t *testing.T) {
	t.Run("confirm appends", func(t *testing.T) {
		m := New(newStore("one"))
		_, input := react(t, m, mode.FreeTextSubmit{}, "Call dentist +health")
		assert.Equal(t, "", input)

		s := stateAs[AddTask](t, m)
		assert.Equal(t, []string{"health"}, s.Pending.Projects)
		assert.Equal(t, "Add: Call dentist +health?", m.Message())
		assert.Equal(t, "Confirm", m.Label(0))
		assert.Equal(t, "Cancel", m.Label(1))

		react(t, m, mode.Select{Index: rowConfirm}, "")
		stateAs[Tasks](t, m)
		require.Len(t, m.Tasks(), 2)
		assert.Equal(t, "Call dentist +health", m.Tasks()[1].Subject)
		assert.Equal(t, 1, m.Cursor())
	})

	t.Run("cancel discards", func(t *testing.T) {
		m := New(newStore("one"))
		react(t, m, mode.FreeTextSubmit{}, "Call dentist +health")
		react(t, m, mode.Select{Index: rowCancel}, "")
		stateAs[Tasks](t, m)
		assert.Len(t, m.Tasks(), 1)
	})

	t.Run("cancel event discards", func(t *testing.T) {
		m := New(newStore("one"))
		react(t, m, mode.FreeTextSubmit{}, "Call dentist +health")
		react(t, m, mode.Cancel{}, "")
		stateAs[Tasks](t, m)
		assert.Len(t, m.Tasks(), 1)
	})

	t.Run("blank text is ignored", func(t *testing.T) {
		m := New(newStore("one"))
		_, input := react(t, m, mode.FreeTextSubmit{}, "   ")
		assert.Equal(t, "   ", input)
		stateAs[Tasks](t, m)
	})
}

func TestFreeTextIgnoredOnOtherPages(t *testing.T) {
	m := New(newStore("one"))
	react(t, m, mode.Select{Index: 0}, "")

	_, input := react(t, m, mode.FreeTextSubmit{}, "typed")
	assert.Equal(t, "typed", input)
	requireModifyPage(t, m, 0)
	assert.Equal(t, "one", m.Tasks()[0].Subject)
}

func TestDeleteItem(t *testing.T) {
	m := New(newStore("one", "two"))

	react(t, m, mode.DeleteItem{Index: 0}, "")
	stateAs[Tasks](t, m)
	require.Len(t, m.Tasks(), 1)
	assert.Equal(t, "two", m.Tasks()[0].Subject)

	react(t, m, mode.Select{Index: 0}, "")
	react(t, m, mode.DeleteItem{Index: 0}, "")
	requireModifyPage(t, m, 0)
	assert.Len(t, m.Tasks(), 1, "DeleteItem outside the task list is ignored")
}

func TestAltSelect(t *testing.T) {
	m := New(newStore("one", "two"))

	react(t, m, mode.AltSelect{Index: 1}, "")
	stateAs[Tasks](t, m)
	assert.True(t, m.Tasks()[1].Completed)
	assert.False(t, m.Tasks()[0].Completed)

	react(t, m, mode.AltSelect{Index: 0}, "")
	assert.True(t, m.Tasks()[0].Completed)

	// Elsewhere it is a plain select.
	react(t, m, mode.Select{Index: 0}, "")
	react(t, m, mode.AltSelect{Index: int(OptionPriority)}, "")
	requireOptionPage(t, m, 0, OptionPriority)
}

func TestCancel(t *testing.T) {
	store := newStore("one")
	m := New(store)

	react(t, m, mode.Select{Index: 0}, "")
	react(t, m, mode.Select{Index: int(OptionPriority)}, "")
	action, _ := react(t, m, mode.Cancel{}, "")
	assert.Equal(t, mode.Reload, action)
	requireModifyPage(t, m, 0)

	react(t, m, mode.Cancel{}, "")
	stateAs[Tasks](t, m)
	assert.Equal(t, 0, store.saves)

	action, _ = react(t, m, mode.Cancel{}, "")
	assert.Equal(t, mode.Exit, action)
	assert.Equal(t, 1, store.saves)
}

func TestBackOption(t *testing.T) {
	m := New(newStore("one", "two"))
	react(t, m, mode.Select{Index: 1}, "")
	react(t, m, mode.Select{Index: int(OptionBack)}, "")
	stateAs[Tasks](t, m)
	assert.Equal(t, 1, m.Cursor())
}

func TestTerminateSaves(t *testing.T) {
	store := newStore("one", "two")
	m := New(store)
	react(t, m, mode.AltSelect{Index: 0}, "")
	react(t, m, mode.FreeTextSubmit{}, "three")
	react(t, m, mode.Select{Index: rowConfirm}, "")

	action, _ := react(t, m, mode.Cancel{}, "")
	require.Equal(t, mode.Exit, action)
	require.Len(t, store.saved, 3)
	assert.True(t, store.saved[0].Completed)
	assert.Equal(t, "three", store.saved[2].Subject)

	require.NoError(t, m.Close())
	assert.Equal(t, 1, store.saves, "Close after a successful exit must not save again")
}

func TestSaveFailure(t *testing.T) {
	store := newStore("one")
	store.saveErr = errors.New("read-only file system")
	m := New(store)

	action, _ := react(t, m, mode.Cancel{}, "")
	assert.Equal(t, mode.Reload, action, "first failure keeps the session open")
	assert.Equal(t, "Error: read-only file system", m.Message())
	assert.Len(t, m.Tasks(), 1, "collection must survive a failed save")

	action, _ = react(t, m, mode.Cancel{}, "")
	assert.Equal(t, mode.Exit, action, "repeated failure exits anyway")
	assert.Equal(t, 2, store.saves)
}

func TestSaveRetrySucceeds(t *testing.T) {
	store := newStore("one")
	store.saveErr = errors.New("busy")
	m := New(store)

	action, _ := react(t, m, mode.Cancel{}, "")
	require.Equal(t, mode.Reload, action)

	store.saveErr = nil
	action, _ = react(t, m, mode.Cancel{}, "")
	assert.Equal(t, mode.Exit, action)
	assert.Len(t, store.saved, 1)
}

func TestCloseSaves(t *testing.T) {
	store := newStore("one")
	m := New(store)
	react(t, m, mode.DeleteItem{Index: 0}, "")

	require.NoError(t, m.Close())
	assert.Equal(t, 1, store.saves)
	assert.Empty(t, store.saved)

	store.saveErr = errors.New("gone")
	m = New(newStore("one"))
	m.store = store
	assert.Error(t, m.Close())
	assert.Equal(t, "Error: gone", m.Message())
}

func TestMatches(t *testing.T) {
	m := New(newStore("(A) Buy milk +errands @store", "Call mom"))

	assert.True(t, m.Matches(0, "errands"), "task rows match the raw subject")
	assert.True(t, m.Matches(0, "MILK"))
	assert.True(t, m.Matches(0, "buy store"))
	assert.False(t, m.Matches(1, "milk"))
	assert.True(t, m.Matches(1, ""))

	react(t, m, mode.Select{Index: 0}, "")
	assert.True(t, m.Matches(int(OptionPriority), "prio"))
	assert.False(t, m.Matches(int(OptionPriority), "delete"))

	react(t, m, mode.Select{Index: int(OptionPriority)}, "")
	assert.True(t, m.Matches(0, "none"))
	assert.True(t, m.Matches(3, "c"))
}

func TestFuzzyMatcher(t *testing.T) {
	m := New(newStore("Buy milk +errands"), WithMatcher(FuzzyMatcher{}))

	assert.True(t, m.Matches(0, "bmk"))
	assert.True(t, m.Matches(0, ""))
	assert.False(t, m.Matches(0, "xyz"))
}

func TestMatcherByName(t *testing.T) {
	for _, name := range []string{"", "substring", "Fuzzy"} {
		_, err := MatcherByName(name)
		assert.NoError(t, err, name)
	}
	_, err := MatcherByName("regex")
	assert.Error(t, err)
}

func TestHostIndexOutOfRange(t *testing.T) {
	m := New(newStore("one"))
	action, input := react(t, m, mode.Select{Index: 5}, "keep")
	assert.Equal(t, mode.Reload, action)
	assert.Equal(t, "keep", input)
	stateAs[Tasks](t, m)

	react(t, m, mode.DeleteItem{Index: -1}, "")
	assert.Len(t, m.Tasks(), 1)
}

func TestTaskLabels(t *testing.T) {
	m := New(newStore("(A) Buy milk +errands @store"))
	label := m.Label(0)
	assert.True(t, strings.Contains(label, "Buy milk"), label)
	assert.True(t, strings.Contains(label, "@store"), label)
}

func TestSaveThenLoadWithFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.txt")
	store, err := todo.Open(path)
	require.NoError(t, err)
	defer store.Close()

	m := New(store)
	for _, text := range []string{"(A) Buy milk +errands @store", "x call mom", "file taxes #money"} {
		react(t, m, mode.FreeTextSubmit{}, text)
		react(t, m, mode.Select{Index: rowConfirm}, "")
	}
	react(t, m, mode.Select{Index: 2}, "")
	react(t, m, mode.Select{Index: int(OptionPriority)}, "")
	react(t, m, mode.Select{Index: 2}, "")
	react(t, m, mode.Cancel{}, "")

	action, _ := react(t, m, mode.Cancel{}, "")
	require.Equal(t, mode.Exit, action)
	require.NoError(t, m.Err())

	reopened := New(store)
	require.Len(t, reopened.Tasks(), 3)
	for i, want := range m.Tasks() {
		assert.True(t, want.Equal(reopened.Tasks()[i]), "task %d: got %+v, want %+v", i, reopened.Tasks()[i], want)
	}
	assert.Equal(t, "B", reopened.Tasks()[2].Priority.String())
}

func TestMarkerOnlyTextIsIgnored(t *testing.T) {
	for _, text := range []string{"(A) ", "2024-01-01 ", "x (B) 2024-01-01 ", "x  "} {
		t.Run(text, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "todo.txt")
			store, err := todo.Open(path)
			require.NoError(t, err)
			defer store.Close()
			require.NoError(t, store.Save([]todo.Task{todo.Parse("first"), todo.Parse("second")}))

			m := New(store)

			// Adding marker-only text keeps the list page and the buffer.
			_, input := react(t, m, mode.FreeTextSubmit{}, text)
			stateAs[Tasks](t, m)
			assert.Equal(t, text, input)

			// So does editing a subject down to markers.
			react(t, m, mode.Select{Index: 0}, "")
			react(t, m, mode.Select{Index: int(OptionSubject)}, "")
			_, input = react(t, m, mode.FreeTextSubmit{}, text)
			requireOptionPage(t, m, 0, OptionSubject)
			assert.Equal(t, text, input)
			assert.Equal(t, "first", m.Tasks()[0].Subject)

			react(t, m, mode.Cancel{}, "")
			react(t, m, mode.Cancel{}, "")
			action, _ := react(t, m, mode.Cancel{}, "")
			require.Equal(t, mode.Exit, action)

			reopened := New(store)
			require.Len(t, reopened.Tasks(), 2)
			assert.Equal(t, "first", reopened.Tasks()[0].Subject)
		})
	}
}
