package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the screens respond to.
type KeyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding

	// Tasks tab
	Add      key.Binding
	Up       key.Binding
	Down     key.Binding
	Delete   key.Binding
	ClearAll key.Binding
	Reload   key.Binding

	// Settings tab
	ToggleDark          key.Binding
	ToggleNotifications key.Binding
	ClearData           key.Binding
	Confirm             key.Binding
	Cancel              key.Binding
	Back                key.Binding
}

// DefaultKeyMap returns the standard bindings. Tasks tab bindings use
// control keys so plain letters reach the input field.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Add: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add task"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear all"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
		ToggleDark: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dark mode"),
		),
		ToggleNotifications: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notifications"),
		),
		ClearData: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear all data"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		Back: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// bindingSet adapts a list of bindings to help.KeyMap.
type bindingSet []key.Binding

func (b bindingSet) ShortHelp() []key.Binding { return b }

func (b bindingSet) FullHelp() [][]key.Binding {
	m := [][]key.Binding{}
	for i := 0; i < len(b); i += 4 {
		end := min(i+4, len(b))
		m = append(m, b[i:end])
	}
	return m
}

func (k KeyMap) tasksHelp() bindingSet {
	return bindingSet{k.Add, k.Up, k.Down, k.Delete, k.ClearAll, k.NextTab, k.Quit}
}

func (k KeyMap) settingsHelp() bindingSet {
	return bindingSet{k.ToggleDark, k.ToggleNotifications, k.ClearData, k.NextTab, k.Back}
}

func (k KeyMap) confirmHelp() bindingSet {
	return bindingSet{k.Confirm, k.Cancel}
}
