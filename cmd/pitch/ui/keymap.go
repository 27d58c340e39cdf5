package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the deck bindings shown in the footer help.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextPane  key.Binding
	PrevPane  key.Binding
	Toggle    key.Binding
	SlideLeft key.Binding
	SlideRight key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard deck bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab", "next tab/slide"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab", "h"),
			key.WithHelp("s-tab", "prev tab/slide"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open/close panel"),
		),
		SlideLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "slider left"),
		),
		SlideRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "slider right"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
