package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit         key.Binding
	EditFallback key.Binding
	Confirm      key.Binding
	Cancel       key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:         key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "salir")),
		EditFallback: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "cambiar respaldo")),
		Confirm:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "guardar")),
		Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancelar/limpiar")),
		NextPage:     key.NewBinding(key.WithKeys("pgdown", "ctrl+n"), key.WithHelp("pgdn", "siguiente")),
		PrevPage:     key.NewBinding(key.WithKeys("pgup", "ctrl+p"), key.WithHelp("pgup", "anterior")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.EditFallback, k.PrevPage, k.NextPage, k.Cancel, k.Quit}
}
