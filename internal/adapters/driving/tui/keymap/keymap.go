// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Toggle opens or closes the search palette.
	Toggle key.Binding

	// Close dismisses the palette and clears the query.
	Close key.Binding

	// Up navigates up in the result list.
	Up key.Binding

	// Down navigates down in the result list.
	Down key.Binding

	// Select opens the highlighted result.
	Select key.Binding

	// ClearRecent empties the recent-searches log.
	ClearRecent key.Binding
}

// DefaultKeyMap returns the default keybindings. The ctrl+k toggle
// mirrors the shortcut the site's search dialog uses.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "search"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		ClearRecent: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear recent"),
		),
	}
}

// ShortHelp returns the keybindings shown when the palette is closed.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Quit}
}

// PaletteHelp returns the keybindings shown while searching.
func (k *KeyMap) PaletteHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.Close}
}

// RecentHelp returns the keybindings shown over the recent-searches view.
func (k *KeyMap) RecentHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.ClearRecent, k.Close}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
