// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// RegisterKeyMap defines the keybindings for the registration screen.
type RegisterKeyMap struct {
	// Focus
	Next key.Binding
	Prev key.Binding

	// Actions
	Submit key.Binding
	Login  key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// Register holds the default registration screen bindings.
var Register = RegisterKeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab/↓", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab/↑", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter", "ctrl+s"),
		key.WithHelp("enter", "register now"),
	),
	Login: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "login here"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

// ShortHelp returns the bindings shown in the collapsed help bar.
func (k RegisterKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Next, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help view.
func (k RegisterKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Submit, k.Login},
		{k.Help, k.Quit},
	}
}

// LoginKeyMap defines the keybindings for the login handoff screen.
type LoginKeyMap struct {
	Register key.Binding
	Quit     key.Binding
}

// Login holds the default login screen bindings.
var Login = LoginKeyMap{
	Register: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "back to register"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc", "q"),
		key.WithHelp("esc/q", "quit"),
	),
}

// ShortHelp returns the bindings shown in the help bar.
func (k LoginKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Register, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help view.
func (k LoginKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
