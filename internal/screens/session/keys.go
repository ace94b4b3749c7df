package session

import "charm.land/bubbles/v2/key"

// keyMap lists the drill controls.
type keyMap struct {
	Left  key.Binding
	Right key.Binding
	Tap   key.Binding
	Digit key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		// The keyboard is drawn right to left, so left moves forward.
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "next key"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "previous key"),
		),
		Tap: key.NewBinding(
			key.WithKeys("enter", "space"),
			key.WithHelp("Enter", "tap"),
		),
		Digit: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "tap key"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "stop"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.Digit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Tap},
		{k.Digit, k.Help, k.Quit},
	}
}
