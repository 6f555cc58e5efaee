package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings for the TUI application.
// It implements the help.KeyMap interface for bubbles/help integration.
type keyMap struct {
	Quit    key.Binding
	CPU     key.Binding
	RAM     key.Binding
	Disk    key.Binding
	Battery key.Binding
	Back    key.Binding
	Refresh key.Binding
	Help    key.Binding
}

// ShortHelp returns the compact set of keybindings shown by default in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Back, k.Quit}
}

// FullHelp returns the expanded keybinding groups shown when help is toggled.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CPU, k.RAM, k.Disk, k.Battery},
		{k.Back, k.Refresh},
		{k.Help, k.Quit},
	}
}

// keys holds the default key bindings used by the application.
var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	CPU:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "cpu chart")),
	RAM:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "ram chart")),
	Disk:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "disk chart")),
	Battery: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "battery chart")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Refresh: key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}
