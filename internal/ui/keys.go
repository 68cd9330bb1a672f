package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings for the now-playing view.
type keyMap struct {
	Quit       key.Binding
	PlayPause  key.Binding
	Next       key.Binding
	Back       key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Repeat     key.Binding
	Shuffle    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "play/pause"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n", "next track"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "left"),
			key.WithHelp("b", "back"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "=", "up"),
			key.WithHelp("+", "volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-", "down"),
			key.WithHelp("-", "volume down"),
		),
		Repeat: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "cycle repeat"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle shuffle"),
		),
	}
}

func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{
		k.PlayPause, k.Next, k.Back, k.VolumeUp, k.VolumeDown, k.Repeat, k.Shuffle, k.Quit,
	}
}
