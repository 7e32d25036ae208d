package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	ShiftLeft   key.Binding
	ShiftRight  key.Binding
	Shrink      key.Binding
	Grow        key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	Today       key.Binding
	Tab         key.Binding
	ShiftTab    key.Binding
	Enter       key.Binding
	Add         key.Binding
	Rename      key.Binding
	Delete      key.Binding
	Help        key.Binding
	Quit        key.Binding
	Escape      key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	ShiftLeft:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "move a day earlier")),
	ShiftRight:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "move a day later")),
	Shrink:      key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "end a day earlier")),
	Grow:        key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "end a day later")),
	ZoomIn:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
	ZoomOut:     key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
	ScrollLeft:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "scroll left")),
	ScrollRight: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "scroll right")),
	Today:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "jump to today")),
	Tab:         key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	ShiftTab:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
	Rename:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename")),
	Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
