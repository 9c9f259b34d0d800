package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the TUI bindings.
type KeyMap struct {
	Pause  key.Binding
	Step   key.Binding
	Clear  key.Binding
	Reseed key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pause:  key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "run/pause")),
		Step:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "step")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Reseed: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reseed")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Toggle: key.NewBinding(key.WithKeys("enter", "t"), key.WithHelp("enter", "toggle cell")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Step, k.Toggle, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Step, k.Clear, k.Reseed},
		{k.Up, k.Down, k.Left, k.Right, k.Toggle},
		{k.Quit},
	}
}
