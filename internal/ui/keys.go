package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the menu key bindings.
type KeyMap struct {
	Select    key.Binding
	AltSelect key.Binding
	Delete    key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	Up        key.Binding
	Down      key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		AltSelect: key.NewBinding(
			key.WithKeys("alt+enter"),
			key.WithHelp("alt+enter", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("shift+delete", "ctrl+d"),
			key.WithHelp("ctrl+d", "delete"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit text"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("up", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("down", "down"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.AltSelect, k.Delete, k.Submit, k.Cancel}
}
