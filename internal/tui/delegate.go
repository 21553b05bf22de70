package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo-client/internal/model"
	"github.com/idilsaglam/todo-client/internal/ui"
)

// todoItem adapts a Todo to bubbles/list.Item.
type todoItem struct {
	todo     model.Todo
	category string
}

func (i todoItem) FilterValue() string { return i.todo.Title }

type categoryItem struct {
	category model.Category
}

func (i categoryItem) FilterValue() string { return i.category.Name }

// lineDelegate renders items on a single line.
type lineDelegate struct{}

func (d lineDelegate) Height() int                               { return 1 }
func (d lineDelegate) Spacing() int                              { return 0 }
func (d lineDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d lineDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	t := ui.Current()
	var line string
	switch it := item.(type) {
	case todoItem:
		box := t.Muted.Render(t.Box(false))
		title := it.todo.Title
		if it.todo.Completed {
			box = t.Success.Render(t.Box(true))
			title = t.Done.Render(title)
		}
		parts := []string{box, title}
		if desc := it.todo.DescriptionText(); desc != "" {
			parts = append(parts, t.Muted.Render(ui.Truncate(desc, 40)))
		}
		parts = append(parts, t.Accent.Render("["+it.category+"]"))
		line = strings.Join(parts, " ")
	case categoryItem:
		line = it.category.Name
		if desc := it.category.DescriptionText(); desc != "" {
			line += " " + t.Muted.Render(desc)
		}
	default:
		return
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprintln(w, prefix+line)
}

func newList() list.Model {
	l := list.New(nil, lineDelegate{}, 80, 10)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	l.Styles.PaginationStyle = ui.Current().Help
	return l
}

// selectClamped keeps the cursor inside the list after items change.
func selectClamped(l *list.Model) {
	n := len(l.Items())
	if n > 0 && l.Index() >= n {
		l.Select(n - 1)
	}
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}
