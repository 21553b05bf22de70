package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo-client/internal/model"
	"github.com/idilsaglam/todo-client/internal/query"
	"github.com/idilsaglam/todo-client/internal/ui"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldCategory
	fieldCount
)

// addTodoPage is the create form. category 0 means no category; i > 0 is
// categories.Data[i-1].
type addTodoPage struct {
	env *env

	title       textinput.Model
	description textinput.Model
	category    int
	focus       int
	invalid     string

	categories query.State[[]model.Category]
	create     *query.CreateTodoMutation
}

func newAddTodoPage(e *env) *addTodoPage {
	p := &addTodoPage{
		env:         e,
		title:       newInput("What needs to be done?", 200),
		description: newInput("Optional details", 500),
		create:      query.CreateTodo(e.cache, e.svc),
	}
	p.reset()
	return p
}

func (p *addTodoPage) reset() {
	p.title.SetValue("")
	p.description.SetValue("")
	p.category = 0
	p.invalid = ""
	p.create.Reset()
	p.setFocus(fieldTitle)
}

func (p *addTodoPage) enter() tea.Cmd {
	p.reset()
	return nil
}

func (p *addTodoPage) capturing() bool { return p.focus != fieldCategory }

func (p *addTodoPage) sync() tea.Cmd {
	var cmd tea.Cmd
	p.categories, cmd = query.Categories(p.env.cache, p.env.svc)
	if p.category > len(p.categories.Data) {
		p.category = 0
	}
	return cmd
}

func (p *addTodoPage) setFocus(f int) {
	p.focus = (f + fieldCount) % fieldCount
	p.title.Blur()
	p.description.Blur()
	switch p.focus {
	case fieldTitle:
		p.title.Focus()
	case fieldDescription:
		p.description.Focus()
	}
}

func (p *addTodoPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case query.MutationMsg:
		res, ok := p.create.Settle(msg)
		if !ok || res.Err != nil {
			return nil
		}
		p.env.log.Info("todo created", "id", res.Output.ID)
		p.reset()
		if p.env.active != routeAdd {
			return nil
		}
		return navigate(routeTodos)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, form.Cancel):
			return navigate(routeTodos)
		case key.Matches(msg, form.Submit):
			return p.submit()
		case msg.String() == "enter":
			if p.focus == fieldCategory {
				return p.submit()
			}
			p.setFocus(p.focus + 1)
			return nil
		case key.Matches(msg, form.Next):
			p.setFocus(p.focus + 1)
			return nil
		case key.Matches(msg, form.Prev):
			p.setFocus(p.focus - 1)
			return nil
		case p.focus == fieldCategory && key.Matches(msg, form.Left):
			p.stepCategory(-1)
			return nil
		case p.focus == fieldCategory && key.Matches(msg, form.Right):
			p.stepCategory(1)
			return nil
		}

		var cmd tea.Cmd
		switch p.focus {
		case fieldTitle:
			p.title, cmd = p.title.Update(msg)
			p.invalid = ""
		case fieldDescription:
			p.description, cmd = p.description.Update(msg)
		}
		return cmd
	}
	return nil
}

func (p *addTodoPage) stepCategory(step int) {
	n := len(p.categories.Data) + 1
	p.category = (p.category + step + n) % n
}

func (p *addTodoPage) selectedCategory() *int {
	if p.category == 0 || p.category > len(p.categories.Data) {
		return nil
	}
	id := p.categories.Data[p.category-1].ID
	return &id
}

func (p *addTodoPage) submit() tea.Cmd {
	if p.create.Pending() {
		return nil
	}
	if strings.TrimSpace(p.title.Value()) == "" {
		p.invalid = "Title is required"
		p.setFocus(fieldTitle)
		return nil
	}
	return p.create.Mutate(model.TodoCreate{
		Title:       p.title.Value(),
		Description: model.OptionalText(p.description.Value()),
		CategoryID:  p.selectedCategory(),
	})
}

func (p *addTodoPage) help() []key.Binding {
	b := []key.Binding{form.Next, form.Submit, form.Cancel}
	if p.focus == fieldCategory {
		b = append(b, form.Left)
	}
	return b
}

func (p *addTodoPage) view() string {
	t := ui.Current()
	var b strings.Builder

	b.WriteString(t.Title.Render("Add todo") + "\n\n")
	if p.create.Pending() {
		b.WriteString(p.env.loading("Creating...") + "\n")
	}
	if p.create.Err() != nil {
		b.WriteString(failure("create todo") + "\n")
	}

	label := func(text string, field int) string {
		if p.focus == field {
			return t.Accent.Render(text)
		}
		return text
	}

	b.WriteString(label("Title *", fieldTitle) + "\n")
	b.WriteString(p.title.View() + "\n")
	if p.invalid != "" {
		b.WriteString(t.Error.Render(p.invalid) + "\n")
	}
	b.WriteString("\n" + label("Description", fieldDescription) + "\n")
	b.WriteString(p.description.View() + "\n")

	b.WriteString("\n" + label("Category", fieldCategory) + "\n")
	name := "No category"
	if id := p.selectedCategory(); id != nil {
		name = model.CategoryName(id, p.categories.Data)
	}
	selector := "‹ " + name + " ›"
	if p.focus == fieldCategory {
		selector = t.Selected.Render(selector)
	}
	b.WriteString("  " + selector)
	if p.categories.Loading() {
		b.WriteString("  " + p.env.loading("Loading categories..."))
	}
	return b.String()
}
