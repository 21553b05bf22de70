package tui

import "github.com/charmbracelet/bubbles/key"

type globalKeys struct {
	Quit, ForceQuit        key.Binding
	Todos, Add, Categories key.Binding
}

var appKeys = globalKeys{
	Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Todos:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "todos")),
	Add:        key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "add")),
	Categories: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "categories")),
}

type todoKeys struct {
	Toggle, Open, Delete       key.Binding
	Filter, FilterBack, Reload key.Binding
	Edit, Save, Blur, Close    key.Binding
}

var listKeys = todoKeys{
	Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f/F", "filter")),
	FilterBack: key.NewBinding(key.WithKeys("F")),
	Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title")),
	Save:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Blur:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "leave field")),
	Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
}

type formKeys struct {
	Next, Prev, Submit, Cancel key.Binding
	Left, Right                key.Binding
	New, Delete, Reload        key.Binding
}

var form = formKeys{
	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "category")),
	Right:  key.NewBinding(key.WithKeys("right", "l")),
	New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new category")),
	Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
}
