package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the viewer
type KeyMap struct {
	Rerun    key.Binding
	Pattern  key.Binding
	Compound key.Binding
	Locale   key.Binding
	Export   key.Binding
	Up       key.Binding
	Down     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Rerun: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "re-run"),
		),
		Pattern: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "next pattern"),
		),
		Compound: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle compounding"),
		),
		Locale: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "toggle language"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rerun, k.Pattern, k.Compound, k.Locale, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Rerun, k.Pattern, k.Compound},
		{k.Locale, k.Export},
		{k.Up, k.Down},
		{k.Help, k.Quit},
	}
}
