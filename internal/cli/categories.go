package cli

import (
	"fmt"

	"github.com/idilsaglam/todo-client/internal/model"
	"github.com/idilsaglam/todo-client/internal/ui"
)

func (r *runner) category(args []string) int {
	if len(args) == 0 {
		r.usage("usage: todo cat <ls|add|rename|rm> [args]")
		return 2
	}
	sub, a := args[0], args[1:]
	switch sub {
	case "ls":
		return r.listCategories()
	case "add":
		return r.addCategory(a)
	case "rename":
		return r.renameCategory(a)
	case "rm":
		return r.withID("cat rm", a, r.removeCategory)
	}
	r.usage("unknown cat subcommand: " + sub)
	return 2
}

func (r *runner) listCategories() int {
	cats, err := r.svc.ListCategories(r.ctx)
	if err != nil {
		return r.fail("load categories", err)
	}
	t := ui.Current()
	lines := []string{t.Title.Render("Categories"), ""}
	if len(cats) == 0 {
		lines = append(lines, t.Muted.Render("No categories yet."))
	}
	for _, c := range cats {
		line := fmt.Sprintf("%s %s", t.Muted.Render(fmt.Sprintf("%3d.", c.ID)), c.Name)
		if desc := c.DescriptionText(); desc != "" {
			line += " " + t.Muted.Render(ui.Truncate(desc, 50))
		}
		lines = append(lines, line)
	}
	ui.Panel(r.opt.Out, lines)
	return 0
}

func (r *runner) addCategory(args []string) int {
	fs := r.flags("cat add")
	desc := fs.String("d", "", "description")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	name := joinArgs(fs.Args())
	if name == "" {
		r.usage("usage: todo cat add [-d desc] <name...>")
		return 2
	}
	c, err := r.svc.CreateCategory(r.ctx, model.CategoryCreate{
		Name:        name,
		Description: model.OptionalText(*desc),
	})
	if err != nil {
		return r.fail("create category", err)
	}
	r.opt.Logger.Info("category created", "id", c.ID)
	ui.OK(r.opt.Out, fmt.Sprintf("added category #%d", c.ID))
	return 0
}

func (r *runner) renameCategory(args []string) int {
	if len(args) < 2 {
		r.usage("usage: todo cat rename <id> <name...>")
		return 2
	}
	id, ok := r.parseID("cat rename", args[0])
	if !ok {
		return 2
	}
	name := joinArgs(args[1:])
	if name == "" {
		r.usage("cat rename: empty name")
		return 2
	}
	if _, err := r.svc.UpdateCategory(r.ctx, id, model.CategoryUpdate{Name: &name}); err != nil {
		return r.fail("update category", err)
	}
	ui.OK(r.opt.Out, "renamed")
	return 0
}

func (r *runner) removeCategory(id int) int {
	if err := r.svc.DeleteCategory(r.ctx, id); err != nil {
		return r.fail("delete category", err)
	}
	ui.OK(r.opt.Out, "removed")
	return 0
}
