package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the report viewer.
type KeyMap struct {
	// Form
	Submit       key.Binding
	NextFocus    key.Binding
	PrevOption   key.Binding
	NextOption   key.Binding
	ToggleOption key.Binding

	// Results
	SwitchTab   key.Binding
	PrevPanel   key.Binding
	NextPanel   key.Binding
	TogglePanel key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Copy        key.Binding

	// Scrolling
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding

	// Notice
	Dismiss key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "analyze"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next area"),
		),
		PrevOption: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "prev option"),
		),
		NextOption: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next option"),
		),
		ToggleOption: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle option"),
		),
		SwitchTab: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "table/json"),
		),
		PrevPanel: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev section"),
		),
		NextPanel: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next section"),
		),
		TogglePanel: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle section"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "collapse all"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy json"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc", "enter"),
			key.WithHelp("esc", "dismiss"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextFocus, k.SwitchTab, k.ExpandAll, k.CollapseAll, k.Copy, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.NextFocus, k.PrevOption, k.NextOption, k.ToggleOption},
		{k.SwitchTab, k.PrevPanel, k.NextPanel, k.TogglePanel, k.ExpandAll, k.CollapseAll, k.Copy},
		{k.Up, k.Down, k.HalfPageUp, k.HalfPageDown, k.GotoTop, k.GotoBottom},
		{k.Quit, k.ForceQuit},
	}
}
