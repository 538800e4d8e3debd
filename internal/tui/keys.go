package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	GridUp    key.Binding
	GridDown  key.Binding
	WidthUp   key.Binding
	WidthDown key.Binding
	Color     key.Binding
	Diagonal  key.Binding
	Numbers   key.Binding
	Fit       key.Binding
	Open      key.Binding
	Save      key.Binding
	Print     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		GridUp:    key.NewBinding(key.WithKeys("up", "k", "]"), key.WithHelp("↑", "more cells")),
		GridDown:  key.NewBinding(key.WithKeys("down", "j", "["), key.WithHelp("↓", "fewer cells")),
		WidthUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "thicker")),
		WidthDown: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "thinner")),
		Color:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "color")),
		Diagonal:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "diagonals")),
		Numbers:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "numbers")),
		Fit:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit mode")),
		Open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save png")),
		Print:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "print")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.GridUp, k.GridDown, k.Color, k.Diagonal, k.Numbers, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.GridUp, k.GridDown, k.WidthUp, k.WidthDown},
		{k.Color, k.Diagonal, k.Numbers, k.Fit},
		{k.Open, k.Save, k.Print, k.Quit},
	}
}
