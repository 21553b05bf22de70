package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo-client/internal/model"
	"github.com/idilsaglam/todo-client/internal/query"
	"github.com/idilsaglam/todo-client/internal/ui"
)

const focusList = -1

// categoriesPage combines the create form with the category list.
// focus is focusList, fieldTitle (name) or fieldDescription.
type categoriesPage struct {
	env *env

	name        textinput.Model
	description textinput.Model
	focus       int
	invalid     string

	list       list.Model
	categories query.State[[]model.Category]

	create *query.CreateCategoryMutation
	remove *query.DeleteCategoryMutation
	failed string
}

func newCategoriesPage(e *env) *categoriesPage {
	return &categoriesPage{
		env:         e,
		name:        newInput("Category name", 100),
		description: newInput("Optional description", 300),
		focus:       focusList,
		list:        newList(),
		create:      query.CreateCategory(e.cache, e.svc),
		remove:      query.DeleteCategory(e.cache, e.svc),
	}
}

func (p *categoriesPage) enter() tea.Cmd {
	p.setFocus(focusList)
	p.invalid = ""
	return nil
}

func (p *categoriesPage) capturing() bool { return p.focus != focusList }

func (p *categoriesPage) sync() tea.Cmd {
	var cmd tea.Cmd
	p.categories, cmd = query.Categories(p.env.cache, p.env.svc)
	items := make([]list.Item, 0, len(p.categories.Data))
	for _, c := range p.categories.Data {
		items = append(items, categoryItem{category: c})
	}
	p.list.SetItems(items)
	selectClamped(&p.list)
	return cmd
}

func (p *categoriesPage) setFocus(f int) {
	p.focus = f
	p.name.Blur()
	p.description.Blur()
	switch f {
	case fieldTitle:
		p.name.Focus()
	case fieldDescription:
		p.description.Focus()
	}
}

func (p *categoriesPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case query.MutationMsg:
		p.settle(msg)
		return nil
	case tea.KeyMsg:
		if p.focus == focusList {
			return p.updateList(msg)
		}
		return p.updateForm(msg)
	}
	return nil
}

func (p *categoriesPage) settle(msg query.MutationMsg) {
	if res, ok := p.create.Settle(msg); ok {
		if res.Err == nil {
			p.env.log.Info("category created", "id", res.Output.ID)
			p.name.SetValue("")
			p.description.SetValue("")
		}
		return
	}
	if res, ok := p.remove.Settle(msg); ok && res.Err != nil {
		p.failed = "delete category"
	}
}

func (p *categoriesPage) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, form.New):
		p.setFocus(fieldTitle)
		return nil
	case key.Matches(msg, form.Delete):
		if it, ok := p.list.SelectedItem().(categoryItem); ok {
			p.failed = ""
			return p.remove.Mutate(it.category.ID)
		}
		return nil
	case key.Matches(msg, form.Reload):
		p.failed = ""
		p.env.cache.Invalidate(query.ResourceCategories)
		return nil
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return cmd
}

func (p *categoriesPage) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, form.Cancel):
		p.setFocus(focusList)
		return nil
	case key.Matches(msg, form.Submit):
		return p.submit()
	case msg.String() == "enter":
		if p.focus == fieldDescription {
			return p.submit()
		}
		p.setFocus(fieldDescription)
		return nil
	case msg.String() == "tab", msg.String() == "shift+tab":
		if p.focus == fieldTitle {
			p.setFocus(fieldDescription)
		} else {
			p.setFocus(fieldTitle)
		}
		return nil
	}

	var cmd tea.Cmd
	if p.focus == fieldTitle {
		p.name, cmd = p.name.Update(msg)
		p.invalid = ""
	} else {
		p.description, cmd = p.description.Update(msg)
	}
	return cmd
}

func (p *categoriesPage) submit() tea.Cmd {
	if p.create.Pending() {
		return nil
	}
	if strings.TrimSpace(p.name.Value()) == "" {
		p.invalid = "Name is required"
		p.setFocus(fieldTitle)
		return nil
	}
	return p.create.Mutate(model.CategoryCreate{
		Name:        p.name.Value(),
		Description: model.OptionalText(p.description.Value()),
	})
}

func (p *categoriesPage) help() []key.Binding {
	if p.focus != focusList {
		return []key.Binding{form.Next, form.Submit, form.Cancel}
	}
	return []key.Binding{form.New, form.Delete, form.Reload}
}

func (p *categoriesPage) view() string {
	t := ui.Current()
	var b strings.Builder

	b.WriteString(t.Title.Render("Manage categories") + "\n\n")

	if p.create.Pending() {
		b.WriteString(p.env.loading("Creating...") + "\n")
	}
	if p.create.Err() != nil {
		b.WriteString(failure("create category") + "\n")
	}
	nameLabel, descLabel := "Name *", "Description"
	if p.focus == fieldTitle {
		nameLabel = t.Accent.Render(nameLabel)
	}
	if p.focus == fieldDescription {
		descLabel = t.Accent.Render(descLabel)
	}
	fields := []string{nameLabel, p.name.View()}
	if p.invalid != "" {
		fields = append(fields, t.Error.Render(p.invalid))
	}
	fields = append(fields, descLabel, p.description.View())
	b.WriteString(ui.Frame(strings.Join(fields, "\n")) + "\n\n")

	if p.failed != "" {
		b.WriteString(failure(p.failed) + "\n")
	}
	if p.categories.Status == query.StatusError {
		b.WriteString(failure("load categories") + t.Muted.Render(" Press r to retry.") + "\n")
	}

	switch {
	case p.categories.Loading():
		b.WriteString(p.env.loading("Loading categories..."))
	case len(p.list.Items()) == 0:
		b.WriteString(t.Muted.Render("No categories yet. Create one above."))
	default:
		height := p.env.bodyHeight() - 8 - len(fields)
		if height < 3 {
			height = 3
		}
		p.list.SetSize(p.env.width-2, height)
		b.WriteString(p.list.View())
	}
	return b.String()
}
