package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/todo-client/internal/model"
	"github.com/idilsaglam/todo-client/internal/ui"
)

func (r *runner) list(args []string) int {
	fs := r.flags("ls")
	category := fs.Int("c", 0, "only todos in this category")
	group := fs.Bool("group", r.opt.Group, "group output by pending/done")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *category < 0 {
		r.usage("ls: not an id: " + strconv.Itoa(*category))
		return 2
	}

	todos, err := r.svc.ListTodos(r.ctx, optionalID(*category))
	if err != nil {
		return r.fail("load todos", err)
	}
	cats, err := r.svc.ListCategories(r.ctx)
	if err != nil {
		return r.fail("load categories", err)
	}

	t := ui.Current()
	d, p := model.Stats(todos)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(todos),
	)

	lines := []string{header, t.Muted.Render(ui.ProgressBar(d, d+p, 28))}
	if *category != 0 {
		lines = append(lines, t.Muted.Render("Category: "+model.CategoryName(category, cats)))
	}
	lines = append(lines, "")

	if *group {
		lines = append(lines, groupLines(todos, cats)...)
	} else {
		lines = append(lines, flatLines(todos, cats)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(r.opt.Out, lines)
	return 0
}

func (r *runner) show(id int) int {
	td, err := r.svc.GetTodo(r.ctx, id)
	if err != nil {
		return r.fail("load todo", err)
	}
	cats, err := r.svc.ListCategories(r.ctx)
	if err != nil {
		return r.fail("load categories", err)
	}

	t := ui.Current()
	status := t.Pending.Render("Pending")
	if td.Completed {
		status = t.Success.Render("Completed")
	}
	lines := []string{
		t.Title.Render(fmt.Sprintf("#%d %s", td.ID, td.Title)),
		status + "  " + t.Accent.Render(model.CategoryName(td.CategoryID, cats)),
	}
	if desc := td.DescriptionText(); desc != "" {
		lines = append(lines, "", desc)
	}
	lines = append(lines,
		"",
		t.Muted.Render("Created: "+td.CreatedAt),
		t.Muted.Render("Updated: "+td.UpdatedAt),
	)
	ui.Panel(r.opt.Out, lines)
	return 0
}

func (r *runner) add(args []string) int {
	fs := r.flags("add")
	desc := fs.String("d", "", "description")
	category := fs.Int("c", 0, "category id")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	title := joinArgs(fs.Args())
	if title == "" {
		r.usage("usage: todo add [-d desc] [-c id] <title...>")
		return 2
	}

	td, err := r.svc.CreateTodo(r.ctx, model.TodoCreate{
		Title:       title,
		Description: model.OptionalText(*desc),
		CategoryID:  optionalID(*category),
	})
	if err != nil {
		return r.fail("create todo", err)
	}
	r.opt.Logger.Info("todo created", "id", td.ID)
	ui.OK(r.opt.Out, fmt.Sprintf("added #%d", td.ID))
	return 0
}

func (r *runner) toggle(id int) int {
	td, err := r.svc.GetTodo(r.ctx, id)
	if err != nil {
		return r.fail("load todo", err)
	}
	td, err = r.svc.UpdateTodo(r.ctx, id, model.TodoUpdate{Completed: model.Ptr(!td.Completed)})
	if err != nil {
		return r.fail("update todo", err)
	}
	if td.Completed {
		ui.OK(r.opt.Out, fmt.Sprintf("#%d done", id))
	} else {
		ui.OK(r.opt.Out, fmt.Sprintf("#%d pending", id))
	}
	return 0
}

func (r *runner) edit(args []string) int {
	if len(args) < 2 {
		r.usage("usage: todo edit <id> <title...>")
		return 2
	}
	id, ok := r.parseID("edit", args[0])
	if !ok {
		return 2
	}
	title := joinArgs(args[1:])
	if title == "" {
		r.usage("edit: empty title")
		return 2
	}
	if _, err := r.svc.UpdateTodo(r.ctx, id, model.TodoUpdate{Title: &title}); err != nil {
		return r.fail("update todo", err)
	}
	ui.OK(r.opt.Out, "renamed")
	return 0
}

func (r *runner) move(args []string) int {
	if len(args) != 2 {
		r.usage("usage: todo move <id> <category-id|none>")
		return 2
	}
	id, ok := r.parseID("move", args[0])
	if !ok {
		return 2
	}
	target := model.Null[int]()
	if args[1] != "none" {
		cid, ok := r.parseID("move", args[1])
		if !ok {
			return 2
		}
		target = model.Some(cid)
	}
	if _, err := r.svc.UpdateTodo(r.ctx, id, model.TodoUpdate{CategoryID: target}); err != nil {
		return r.fail("update todo", err)
	}
	ui.OK(r.opt.Out, "moved")
	return 0
}

func (r *runner) remove(id int) int {
	if err := r.svc.DeleteTodo(r.ctx, id); err != nil {
		return r.fail("delete todo", err)
	}
	ui.OK(r.opt.Out, "removed")
	return 0
}

// -------------- rendering helpers --------------

func flatLines(todos []model.Todo, cats []model.Category) []string {
	t := ui.Current()
	if len(todos) == 0 {
		return []string{t.Muted.Render("No todos found. Create one!")}
	}
	out := make([]string, 0, len(todos))
	for _, td := range todos {
		idx := t.Muted.Render(fmt.Sprintf("%3d.", td.ID))
		box := t.Muted.Render(t.Box(false))
		title := ui.Truncate(td.Title, 60)
		if td.Completed {
			box = t.Success.Render(t.Box(true))
			title = t.Done.Render(title)
		}
		out = append(out, strings.Join([]string{
			idx, box, title,
			t.Accent.Render("[" + model.CategoryName(td.CategoryID, cats) + "]"),
		}, " "))
	}
	return out
}

func groupLines(todos []model.Todo, cats []model.Category) []string {
	t := ui.Current()
	var pend, done []model.Todo
	for _, td := range todos {
		if td.Completed {
			done = append(done, td)
		} else {
			pend = append(pend, td)
		}
	}
	section := func(title string, items []model.Todo) []string {
		lines := []string{t.Accent.Render(title)}
		if len(items) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, flatLines(items, cats)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
