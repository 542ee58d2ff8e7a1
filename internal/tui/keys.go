package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	AddRect    key.Binding
	AddText    key.Binding
	Delete     key.Binding
	Edit       key.Binding
	Deselect   key.Binding
	Properties key.Binding
	Raise      key.Binding
	Lower      key.Binding
	Front      key.Binding
	Back       key.Binding
	Copy       key.Binding
	Paste      key.Binding
	ExportJSON key.Binding
	ExportHTML key.Binding
	ExportPNG  key.Binding
	ExportText key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		AddRect:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "add rectangle")),
		AddText:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "add text")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete", "backspace"), key.WithHelp("d/del", "delete")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit text")),
		Deselect:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "deselect")),
		Properties: key.NewBinding(key.WithKeys("tab", "enter"), key.WithHelp("tab", "properties")),
		Raise:      key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "raise")),
		Lower:      key.NewBinding(key.WithKeys("["), key.WithHelp("[", "lower")),
		Front:      key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "bring to front")),
		Back:       key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "send to back")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Paste:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
		ExportJSON: key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export json")),
		ExportHTML: key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "export html")),
		ExportPNG:  key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "export png")),
		ExportText: key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "export text")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
