// Package mode defines the contract between a menu host and the mode it drives.
//
// The host owns rendering, key handling and the text input widget. It asks the
// mode how many rows to show, how to label and filter them, and hands it one
// Event at a time together with the current input buffer.
package mode

// Mode is implemented by anything a host can drive.
type Mode interface {
	// Len returns the number of rows in the current page.
	Len() int
	// Label returns the display label of row i.
	Label(i int) string
	// Matches reports whether row i matches the filter query.
	Matches(i int, query string) bool
	// React handles one event. input is the host's text buffer; the
	// returned string replaces it.
	React(ev Event, input string) (Action, string)
	// Message returns the status line, or a pending error.
	Message() string
}

// Cursor is implemented by modes that suggest which row to highlight.
type Cursor interface {
	Cursor() int
}

// Action tells the host what to do after an event.
type Action int

const (
	// Reload re-enumerates rows and redraws.
	Reload Action = iota
	// Exit ends the session.
	Exit
)

func (a Action) String() string {
	switch a {
	case Reload:
		return "reload"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// Event is one user action delivered by the host.
type Event interface {
	isEvent()
}

// Select accepts row Index.
type Select struct{ Index int }

// AltSelect accepts row Index with the alternate binding.
type AltSelect struct{ Index int }

// DeleteItem asks to remove row Index.
type DeleteItem struct{ Index int }

// FreeTextSubmit accepts the input buffer as free text.
type FreeTextSubmit struct{}

// Cancel backs out of the current page.
type Cancel struct{}

func (Select) isEvent()         {}
func (AltSelect) isEvent()      {}
func (DeleteItem) isEvent()     {}
func (FreeTextSubmit) isEvent() {}
func (Cancel) isEvent()         {}
