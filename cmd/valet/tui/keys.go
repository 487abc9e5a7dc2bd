package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the fleet dashboard
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageNext key.Binding
	PagePrev key.Binding
	PageSize key.Binding

	// sort by column (cycles asc, desc, none)
	SortName     key.Binding
	SortGroup    key.Binding
	SortLocation key.Binding
	SortStatus   key.Binding

	Search      key.Binding
	SearchClear key.Binding

	SelectMode key.Binding
	Select     key.Binding
	SelectAll  key.Binding

	// VM actions, on the cursor row or on the selection in select mode
	Start      key.Binding
	Deallocate key.Binding
	Poweroff   key.Binding
	Restart    key.Binding

	Confirm key.Binding
	Cancel  key.Binding

	Notifications key.Binding
	Dismiss       key.Binding
	ClearAll      key.Binding

	Refresh  key.Binding
	DarkMode key.Binding
	Quit     key.Binding
}

// DefaultKeyMap is the built-in key binding set
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageNext: key.NewBinding(
		key.WithKeys("right", "l", "pgdown"),
		key.WithHelp("→", "next page"),
	),
	PagePrev: key.NewBinding(
		key.WithKeys("left", "h", "pgup"),
		key.WithHelp("←", "prev page"),
	),
	PageSize: key.NewBinding(
		key.WithKeys("+"),
		key.WithHelp("+", "page size"),
	),
	SortName: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1-4", "sort"),
	),
	SortGroup: key.NewBinding(
		key.WithKeys("2"),
	),
	SortLocation: key.NewBinding(
		key.WithKeys("3"),
	),
	SortStatus: key.NewBinding(
		key.WithKeys("4"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	SearchClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	SelectMode: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "select mode"),
	),
	Select: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "select"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "select all"),
	),
	Start: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start"),
	),
	Deallocate: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "deallocate"),
	),
	Poweroff: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "power off"),
	),
	Restart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restart"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "cancel"),
	),
	Notifications: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "notifications"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "dismiss"),
	),
	ClearAll: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "clear all"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("R", "ctrl+r"),
		key.WithHelp("R", "refresh"),
	),
	DarkMode: key.NewBinding(
		key.WithKeys("T"),
		key.WithHelp("T", "theme"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
