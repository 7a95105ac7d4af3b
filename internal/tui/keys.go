package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	left     key.Binding
	right    key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	backtab  key.Binding
	upload   key.Binding
	download key.Binding
	refresh  key.Binding
	destroy  key.Binding
	logout   key.Binding
	copy     key.Binding
	yes      key.Binding
	no       key.Binding
	register key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	left:     key.NewBinding(key.WithKeys("left")),
	right:    key.NewBinding(key.WithKeys("right")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	tab:      key.NewBinding(key.WithKeys("tab", "down")),
	backtab:  key.NewBinding(key.WithKeys("shift+tab", "up")),
	upload:   key.NewBinding(key.WithKeys("u")),
	download: key.NewBinding(key.WithKeys("d")),
	refresh:  key.NewBinding(key.WithKeys("r")),
	destroy:  key.NewBinding(key.WithKeys("x")),
	logout:   key.NewBinding(key.WithKeys("l")),
	copy:     key.NewBinding(key.WithKeys("c")),
	yes:      key.NewBinding(key.WithKeys("y")),
	no:       key.NewBinding(key.WithKeys("n", "esc")),
	register: key.NewBinding(key.WithKeys("ctrl+r")),
}
