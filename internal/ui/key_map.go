package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	left   key.Binding
	right  key.Binding
	toggle key.Binding
	enter  key.Binding
	load   key.Binding
	reset  key.Binding
	add    key.Binding
	back   key.Binding
	quit   key.Binding
	abort  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		toggle: key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "expand")),
		enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		load:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "load data")),
		reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "collapse all")),
		add:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add word")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		abort:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.back, k.abort}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.toggle, k.enter, k.reset, k.add},
		{k.back, k.quit, k.abort},
	}
}
