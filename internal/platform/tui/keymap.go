package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings of the simulation view.
// It satisfies the bubbles help.KeyMap interface so the help footer can
// render itself from the bindings.
type KeyMap struct {
	Pause  key.Binding
	Step   key.Binding
	Reset  key.Binding
	Faster key.Binding
	Slower key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p/space", "pause/resume"),
		),
		Step: key.NewBinding(
			key.WithKeys("s", "right"),
			key.WithHelp("s", "single tick"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reseed"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slower"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings for the one-line help footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Step, k.Reset, k.Help, k.Quit}
}

// FullHelp returns the bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Step, k.Reset},
		{k.Faster, k.Slower},
		{k.Help, k.Quit},
	}
}
