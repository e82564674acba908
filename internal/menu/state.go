package menu

import (
	"fmt"

	"github.com/nibzard/todomenu/internal/todo"
)

// ModifyOption is a row of the modify page. Its value is the row index.
type ModifyOption int

const (
	OptionDone ModifyOption = iota
	OptionSubject
	OptionPriority
	OptionDelete
	OptionBack
)

// ModifyOptionCount is the number of rows on the modify page.
const ModifyOptionCount = 5

func (o ModifyOption) String() string {
	switch o {
	case OptionDone:
		return "done"
	case OptionSubject:
		return "subject"
	case OptionPriority:
		return "priority"
	case OptionDelete:
		return "delete"
	case OptionBack:
		return "back"
	default:
		return fmt.Sprintf("option(%d)", int(o))
	}
}

// State is the current page. It is one of Tasks, ModifyTask or AddTask.
type State interface {
	fmt.Stringer
	isState()
}

// Tasks lists the whole collection.
type Tasks struct{}

// ModifyTask works on the task at Index. A nil Option shows the modify page;
// otherwise the page of that option is open.
type ModifyTask struct {
	Index  int
	Option *ModifyOption
}

// AddTask asks to confirm a task parsed from free text.
type AddTask struct {
	Pending todo.Task
}

func (Tasks) isState()      {}
func (ModifyTask) isState() {}
func (AddTask) isState()    {}

func (Tasks) String() string { return "tasks" }

func (s ModifyTask) String() string {
	if s.Option == nil {
		return fmt.Sprintf("modify[%d]", s.Index)
	}
	return fmt.Sprintf("modify[%d]/%s", s.Index, *s.Option)
}

func (AddTask) String() string { return "add" }

// modifying returns the state for the page of option o on task index.
func modifying(index int, o ModifyOption) ModifyTask {
	return ModifyTask{Index: index, Option: &o}
}
