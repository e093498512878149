package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings.
type keyMap struct {
	Quit      key.Binding
	Help      key.Binding
	EditTime  key.Binding
	EditName  key.Binding
	Add       key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	ClearAll  key.Binding
	Up        key.Binding
	Down      key.Binding
	TestSound key.Binding
	StopSound key.Binding
	NextSound key.Binding
	Theme     key.Binding
	Snooze    key.Binding
	Dismiss   key.Binding

	// Field editing.
	Confirm   key.Binding
	Cancel    key.Binding
	Backspace key.Binding
	Clear     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		EditTime: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "set time"),
		),
		EditName: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "name"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add alarm"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "on/off"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear all"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		TestSound: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "test sound"),
		),
		StopSound: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "stop sound"),
		),
		NextSound: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "next sound"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "theme"),
		),
		Snooze: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "snooze 5m"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dismiss"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", "tab"),
			key.WithHelp("enter", "done"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "erase digit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "clear"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.EditTime, k.EditName, k.Add, k.Toggle, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.EditTime, k.EditName, k.Add},
		{k.Up, k.Down, k.Toggle, k.Delete, k.ClearAll},
		{k.TestSound, k.StopSound, k.NextSound, k.Theme},
		{k.Snooze, k.Dismiss, k.Help, k.Quit},
	}
}

// editHelp lists the bindings active while the time field has focus.
type editHelp struct {
	keys keyMap
}

func (e editHelp) ShortHelp() []key.Binding {
	return []key.Binding{e.keys.Confirm, e.keys.Backspace, e.keys.Clear, e.keys.Cancel}
}

func (e editHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{e.ShortHelp()}
}

// ringHelp lists the bindings of the ring dialog.
type ringHelp struct {
	keys keyMap
}

func (r ringHelp) ShortHelp() []key.Binding {
	return []key.Binding{r.keys.Snooze, r.keys.Dismiss, r.keys.Quit}
}

func (r ringHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{r.ShortHelp()}
}
