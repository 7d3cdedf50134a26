package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start   key.Binding
	Stop    key.Binding
	Add     key.Binding
	Report  key.Binding
	Entries key.Binding
	Prev    key.Binding
	Next    key.Binding
	Close   key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add hours")),
		Report:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "daily report")),
		Entries: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "all entries")),
		Prev:    key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←", "prev day")),
		Next:    key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→", "next day")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Add, k.Report, k.Entries, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Stop, k.Add},
		{k.Report, k.Entries, k.Prev, k.Next},
		{k.Close, k.Quit},
	}
}
