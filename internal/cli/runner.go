// Package cli implements the one-shot subcommands that sit beside the TUI.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo-client/internal/model"
	"github.com/idilsaglam/todo-client/internal/ui"
)

// Service is the backend surface the commands use. *api.Client satisfies it.
type Service interface {
	ListTodos(ctx context.Context, categoryID *int) ([]model.Todo, error)
	GetTodo(ctx context.Context, id int) (model.Todo, error)
	CreateTodo(ctx context.Context, data model.TodoCreate) (model.Todo, error)
	UpdateTodo(ctx context.Context, id int, patch model.TodoUpdate) (model.Todo, error)
	DeleteTodo(ctx context.Context, id int) error

	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, data model.CategoryCreate) (model.Category, error)
	UpdateCategory(ctx context.Context, id int, patch model.CategoryUpdate) (model.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

// Options tune output behavior from root flags.
type Options struct {
	Group bool // list grouped by pending/done

	Out, Err io.Writer
	Logger   *log.Logger
}

type runner struct {
	ctx context.Context
	svc Service
	opt Options
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, svc Service, args []string, opt Options) int {
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}
	if opt.Logger == nil {
		opt.Logger = log.New(io.Discard)
	}
	r := &runner{ctx: ctx, svc: svc, opt: opt}

	if len(args) == 0 {
		PrintHelp(opt.Err)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0
	case "ls":
		return r.list(a)
	case "show":
		return r.withID("show", a, r.show)
	case "add":
		return r.add(a)
	case "done":
		return r.withID("done", a, r.toggle)
	case "edit":
		return r.edit(a)
	case "move":
		return r.move(a)
	case "rm":
		return r.withID("rm", a, r.remove)
	case "cat":
		return r.category(a)
	}

	r.usage("unknown subcommand: " + cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todo - a terminal client for the todo service

Usage:
  todo [flags] [subcommand] [args]

With no subcommand the interactive UI starts.

Subcommands:
  ui                          Start the interactive UI
  ls [-c id] [-group]         List todos, optionally for one category
  show <id>                   Show one todo
  add [-d desc] [-c id] <title...>
                              Create a todo
  done <id>                   Toggle completion
  edit <id> <title...>        Rename a todo
  move <id> <category-id|none>
                              Move a todo to a category, or out of any
  rm <id>                     Delete a todo
  cat ls                      List categories
  cat add [-d desc] <name...> Create a category
  cat rename <id> <name...>   Rename a category
  cat rm <id>                 Delete a category (todos keep their reference)

Flags:
  -api url          Backend base URL (env TODO_API_URL)
  -config file      Extra TOML config file
  -log-file path    Write logs to a file (env TODO_LOG_FILE)
  -log-level level  debug, info, warn, error (env TODO_LOG_LEVEL)
  -theme name       classic, neon or mono (env TODO_THEME)

Examples:
  todo add -c 1 "Buy milk"
  todo ls -group
  todo done 2
  todo cat add -d "Things for the office" Work
`)
}

// -------------- shared helpers ----------------

func (r *runner) usage(msg string) {
	ui.Fail(r.opt.Err, msg)
}

// fail reports a backend error on stderr and in the log.
func (r *runner) fail(op string, err error) int {
	r.opt.Logger.Error("command failed", "op", op, "err", err)
	ui.Fail(r.opt.Err, "Failed to "+op+": "+err.Error())
	return 1
}

func (r *runner) withID(cmd string, args []string, fn func(id int) int) int {
	if len(args) != 1 {
		r.usage("usage: todo " + cmd + " <id>")
		return 2
	}
	id, ok := r.parseID(cmd, args[0])
	if !ok {
		return 2
	}
	return fn(id)
}

func (r *runner) parseID(cmd, raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		r.usage(cmd + ": not an id: " + raw)
		return 0, false
	}
	return id, true
}

// flags builds a subcommand flag set that reports to stderr.
func (r *runner) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(r.opt.Err)
	return fs
}

// optionalID maps the "unset" flag value 0 to nil.
func optionalID(id int) *int {
	if id == 0 {
		return nil
	}
	return &id
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
