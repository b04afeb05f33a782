package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit  key.Binding
	Reset key.Binding
	Next  key.Binding
	Save  key.Binding
}

// Tab/enter are handled by the huh form; they are listed for the help line only.
var keys = keyMap{
	Quit:  key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	Reset: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset form")),
	Next:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Save:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Save, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
