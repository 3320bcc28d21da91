package interactive

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds all the key bindings for the interactive TUI
type KeyMap struct {
	// Global
	Quit key.Binding
	Help key.Binding

	// View switching
	ViewCatalog  key.Binding
	ViewSessions key.Binding
	ViewPlugins  key.Binding
	ViewHistory  key.Binding
	ViewLogs     key.Binding

	// Navigation (vim-style)
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Selection
	Select key.Binding
	Back   key.Binding
	Tab    key.Binding
	Toggle key.Binding

	// Actions
	Run     key.Binding
	Delete  key.Binding
	Reset   key.Binding
	Refresh key.Binding
	Prompt  key.Binding
	Chart   key.Binding
	Clear   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),

		// View switching
		ViewCatalog: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "catalog"),
		),
		ViewSessions: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "panels"),
		),
		ViewPlugins: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "plugins"),
		),
		ViewHistory: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "history"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "logs"),
		),

		// Navigation (vim-style + arrows)
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "collapse"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "expand"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "page down"),
		),

		// Selection
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),

		// Actions
		Run: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "run"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "close"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		Prompt: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "quick run"),
		),
		Chart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chart"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear"),
		),
	}
}

// keys is the global key map instance
var keys = DefaultKeyMap()
