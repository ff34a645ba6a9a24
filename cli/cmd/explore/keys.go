package explore

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the key bindings of the explorer.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Parent  key.Binding
	Child   key.Binding
	Recall  key.Binding
	Confirm key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/ctrl+p", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓/ctrl+n", "next"),
		),
		Parent: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("shift+↑", "parent"),
		),
		Child: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("shift+↓", "first child"),
		),
		Recall: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "recall filter"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Parent, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Parent, k.Child},
		{k.Recall, k.Confirm, k.Help, k.Quit},
	}
}
