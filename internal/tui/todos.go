package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo-client/internal/model"
	"github.com/idilsaglam/todo-client/internal/query"
	"github.com/idilsaglam/todo-client/internal/ui"
)

// todosPage lists todos with a category filter and a detail drawer.
// The drawer is open whenever selected is non-nil.
type todosPage struct {
	env *env

	list   list.Model
	filter *int

	selected *model.Todo
	title    textinput.Model
	editing  bool

	todos      query.State[[]model.Todo]
	categories query.State[[]model.Category]

	save   *query.UpdateTodoMutation
	remove *query.DeleteTodoMutation
	failed string

	// submitted is the last title sent while save is pending.
	submitted string
}

func newTodosPage(e *env) *todosPage {
	return &todosPage{
		env:    e,
		list:   newList(),
		title:  newInput("Todo title...", 200),
		save:   query.UpdateTodo(e.cache, e.svc),
		remove: query.DeleteTodo(e.cache, e.svc),
	}
}

func (p *todosPage) enter() tea.Cmd { return nil }

func (p *todosPage) capturing() bool { return p.editing }

func (p *todosPage) sync() tea.Cmd {
	var c1, c2 tea.Cmd
	p.todos, c1 = query.Todos(p.env.cache, p.env.svc, p.filter)
	p.categories, c2 = query.Categories(p.env.cache, p.env.svc)

	items := make([]list.Item, 0, len(p.todos.Data))
	for _, t := range p.todos.Data {
		items = append(items, todoItem{todo: t, category: model.CategoryName(t.CategoryID, p.categories.Data)})
	}
	p.list.SetItems(items)
	selectClamped(&p.list)
	return tea.Batch(c1, c2)
}

func (p *todosPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case query.MutationMsg:
		p.settle(msg)
		return nil
	case tea.KeyMsg:
		if p.editing {
			return p.updateEditing(msg)
		}
		return p.updateBrowsing(msg)
	}
	return nil
}

func (p *todosPage) settle(msg query.MutationMsg) {
	if res, ok := p.save.Settle(msg); ok {
		if res.Err != nil {
			p.failed = "update todo"
			return
		}
		// Keep the drawer on the server's copy, but only if it still shows
		// the todo that was written.
		if p.selected != nil && p.selected.ID == res.Output.ID {
			updated := res.Output
			p.selected = &updated
		}
		return
	}
	if res, ok := p.remove.Settle(msg); ok {
		if res.Err != nil {
			p.failed = "delete todo"
			return
		}
		if p.selected != nil && p.selected.ID == res.Input {
			p.closeDrawer()
		}
	}
}

func (p *todosPage) updateBrowsing(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, listKeys.Toggle):
		if t, ok := p.current(); ok {
			return p.toggle(t)
		}
		return nil
	case key.Matches(msg, listKeys.Open):
		if t, ok := p.current(); ok {
			p.openDrawer(t)
		}
		return nil
	case key.Matches(msg, listKeys.Delete):
		if t, ok := p.current(); ok {
			p.failed = ""
			return p.remove.Mutate(t.ID)
		}
		return nil
	case key.Matches(msg, listKeys.Filter):
		p.cycleFilter(1)
		return nil
	case key.Matches(msg, listKeys.FilterBack):
		p.cycleFilter(-1)
		return nil
	case key.Matches(msg, listKeys.Reload):
		p.failed = ""
		p.env.cache.Invalidate(query.ResourceTodos)
		p.env.cache.Invalidate(query.ResourceCategories)
		return nil
	case p.selected != nil && key.Matches(msg, listKeys.Edit):
		p.editing = true
		p.title.Focus()
		return nil
	case p.selected != nil && key.Matches(msg, listKeys.Close):
		p.closeDrawer()
		return nil
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return cmd
}

func (p *todosPage) updateEditing(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, listKeys.Save):
		return p.commitTitle()
	case key.Matches(msg, listKeys.Blur):
		p.editing = false
		p.title.Blur()
		return p.commitTitle()
	case key.Matches(msg, listKeys.Close):
		cmd := p.commitTitle()
		p.closeDrawer()
		return cmd
	}
	var cmd tea.Cmd
	p.title, cmd = p.title.Update(msg)
	return cmd
}

func (p *todosPage) current() (model.Todo, bool) {
	it, ok := p.list.SelectedItem().(todoItem)
	return it.todo, ok
}

func (p *todosPage) toggle(t model.Todo) tea.Cmd {
	p.failed = ""
	return p.save.Mutate(query.TodoPatch{
		ID:    t.ID,
		Patch: model.TodoUpdate{Completed: model.Ptr(!t.Completed)},
	})
}

func (p *todosPage) openDrawer(t model.Todo) {
	p.selected = &t
	p.title.SetValue(t.Title)
	p.title.CursorEnd()
	p.title.Focus()
	p.editing = true
}

func (p *todosPage) closeDrawer() {
	p.selected = nil
	p.title.SetValue("")
	p.title.Blur()
	p.editing = false
}

// commitTitle writes the edited title when it differs from the last known
// one and from a write still in flight.
func (p *todosPage) commitTitle() tea.Cmd {
	if p.selected == nil || p.title.Value() == p.selected.Title {
		return nil
	}
	if p.save.Pending() && p.title.Value() == p.submitted {
		return nil
	}
	p.failed = ""
	p.submitted = p.title.Value()
	return p.save.Mutate(query.TodoPatch{
		ID:    p.selected.ID,
		Patch: model.TodoUpdate{Title: model.Ptr(p.title.Value())},
	})
}

// cycleFilter steps through "all" followed by every loaded category.
func (p *todosPage) cycleFilter(step int) {
	options := make([]*int, 0, len(p.categories.Data)+1)
	options = append(options, nil)
	cur := 0
	for _, c := range p.categories.Data {
		id := c.ID
		if p.filter != nil && *p.filter == id {
			cur = len(options)
		}
		options = append(options, &id)
	}
	next := (cur + step + len(options)) % len(options)
	p.filter = options[next]
	p.list.Select(0)
}

func (p *todosPage) filterLabel() string {
	if p.filter == nil {
		return "All categories"
	}
	return model.CategoryName(p.filter, p.categories.Data)
}

func (p *todosPage) help() []key.Binding {
	if p.editing {
		return []key.Binding{listKeys.Save, listKeys.Blur, listKeys.Close}
	}
	b := []key.Binding{listKeys.Toggle, listKeys.Open, listKeys.Delete, listKeys.Filter, listKeys.Reload}
	if p.selected != nil {
		b = append(b, listKeys.Edit, listKeys.Close)
	}
	return b
}

func (p *todosPage) view() string {
	t := ui.Current()
	var b strings.Builder

	b.WriteString(t.Title.Render("Todos"))
	b.WriteString("  ")
	b.WriteString(t.Muted.Render("Filter by category: "))
	b.WriteString(t.Accent.Render(p.filterLabel()))
	b.WriteString("\n")

	if p.todos.Loading() {
		b.WriteString(p.env.loading("Loading todos..."))
		return b.String()
	}

	done, pending := model.Stats(p.todos.Data)
	b.WriteString(t.Muted.Render(ui.ProgressBar(done, done+pending, 20)))
	b.WriteString("\n\n")

	if p.failed != "" {
		b.WriteString(failure(p.failed) + "\n")
	}
	if p.todos.Status == query.StatusError {
		b.WriteString(failure("load todos") + t.Muted.Render(" Press r to retry.") + "\n")
	}

	drawer := p.drawerView()
	height := p.env.bodyHeight() - 4 - lines(drawer)
	if height < 3 {
		height = 3
	}
	p.list.SetSize(p.env.width-2, height)

	if len(p.list.Items()) == 0 {
		b.WriteString(t.Muted.Render("No todos found. Create one!"))
	} else {
		b.WriteString(p.list.View())
	}
	if drawer != "" {
		b.WriteString("\n")
		b.WriteString(drawer)
	}
	return b.String()
}

func (p *todosPage) drawerView() string {
	if p.selected == nil {
		return ""
	}
	t := ui.Current()
	s := p.selected

	status := t.Pending.Render("Pending")
	if s.Completed {
		status = t.Success.Render("Completed")
	}

	rows := []string{
		t.Title.Render("Todo Details"),
		"Title",
		p.title.View(),
	}
	if p.save.Pending() {
		rows = append(rows, t.Muted.Render("Saving..."))
	}
	rows = append(rows, status+"  "+t.Accent.Render(model.CategoryName(s.CategoryID, p.categories.Data)))
	if desc := s.DescriptionText(); desc != "" {
		rows = append(rows, "", t.Title.Render("Description"), desc)
	}
	rows = append(rows,
		"",
		t.Muted.Render("Created: "+formatTimestamp(s.CreatedAt)),
		t.Muted.Render("Updated: "+formatTimestamp(s.UpdatedAt)),
	)
	return ui.Frame(strings.Join(rows, "\n"))
}

func lines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

// formatTimestamp renders a server timestamp in local time, or verbatim when
// it does not parse.
func formatTimestamp(ts string) string {
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return parsed.Local().Format("2006-01-02 15:04:05")
}
