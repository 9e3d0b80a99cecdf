package editor

import "github.com/charmbracelet/bubbles/key"

// keyMap binds the editor actions. Help text feeds the status bar.
type keyMap struct {
	Left        key.Binding
	Right       key.Binding
	SelectLeft  key.Binding
	SelectRight key.Binding
	Home        key.Binding
	End         key.Binding
	SelectHome  key.Binding
	SelectEnd   key.Binding
	Backspace   key.Binding
	Delete      key.Binding
	Enter       key.Binding
	Bold        key.Binding
	Italic      key.Binding
	Underline   key.Binding
	Highlight   key.Binding
	SizeUp      key.Binding
	SizeDown    key.Binding
	Save        key.Binding
	Cancel      key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:        key.NewBinding(key.WithKeys("left")),
		Right:       key.NewBinding(key.WithKeys("right")),
		SelectLeft:  key.NewBinding(key.WithKeys("shift+left")),
		SelectRight: key.NewBinding(key.WithKeys("shift+right")),
		Home:        key.NewBinding(key.WithKeys("home", "ctrl+a")),
		End:         key.NewBinding(key.WithKeys("end", "ctrl+e")),
		SelectHome:  key.NewBinding(key.WithKeys("shift+home")),
		SelectEnd:   key.NewBinding(key.WithKeys("shift+end")),
		Backspace:   key.NewBinding(key.WithKeys("backspace")),
		Delete:      key.NewBinding(key.WithKeys("delete")),
		Enter:       key.NewBinding(key.WithKeys("enter")),
		Bold: key.NewBinding(key.WithKeys("ctrl+b"),
			key.WithHelp("^B", "bold")),
		Italic: key.NewBinding(key.WithKeys("ctrl+l"),
			key.WithHelp("^L", "italic")),
		Underline: key.NewBinding(key.WithKeys("ctrl+u"),
			key.WithHelp("^U", "underline")),
		Highlight: key.NewBinding(key.WithKeys("ctrl+k"),
			key.WithHelp("^K", "highlight")),
		SizeUp: key.NewBinding(key.WithKeys("ctrl+up"),
			key.WithHelp("^↑", "bigger")),
		SizeDown: key.NewBinding(key.WithKeys("ctrl+down"),
			key.WithHelp("^↓", "smaller")),
		Save: key.NewBinding(key.WithKeys("ctrl+s"),
			key.WithHelp("^S", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc")),
		Quit: key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("^Q", "quit")),
	}
}

// helpEntries lists the bindings worth advertising, in display order.
func (k keyMap) helpEntries() []key.Binding {
	return []key.Binding{k.Bold, k.Italic, k.Underline, k.Highlight, k.SizeUp, k.SizeDown, k.Save, k.Quit}
}
