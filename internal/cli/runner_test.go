package cli

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/idilsaglam/todo-client/internal/api"
	"github.com/idilsaglam/todo-client/internal/apitest"
	"github.com/idilsaglam/todo-client/internal/logging"
	"github.com/idilsaglam/todo-client/internal/model"
)

type env struct {
	srv      *apitest.Server
	svc      *api.Client
	out, err bytes.Buffer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	return &env{srv: srv, svc: api.New(srv.URL)}
}

func (e *env) run(args ...string) int {
	e.out.Reset()
	e.err.Reset()
	return Run(context.Background(), e.svc, args, Options{
		Out:    &e.out,
		Err:    &e.err,
		Logger: logging.Discard(),
	})
}

func TestUsageErrors(t *testing.T) {
	e := newEnv(t)
	for _, args := range [][]string{
		{},
		{"bogus"},
		{"add"},
		{"done"},
		{"done", "x"},
		{"rm", "0"},
		{"edit", "1"},
		{"move", "1"},
		{"move", "1", "work"},
		{"cat"},
		{"cat", "add"},
		{"cat", "rename", "1"},
		{"ls", "-nope"},
	} {
		if code := e.run(args...); code != 2 {
			t.Errorf("%v: exit %d, want 2", args, code)
		}
	}
	if len(e.srv.Requests()) != 0 {
		t.Errorf("usage errors reached the backend: %+v", e.srv.Requests())
	}
}

func TestHelp(t *testing.T) {
	e := newEnv(t)
	if code := e.run("help"); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(e.out.String(), "cat rename <id> <name...>") {
		t.Errorf("help output:\n%s", e.out.String())
	}
}

func TestAddListToggle(t *testing.T) {
	e := newEnv(t)
	work := e.srv.SeedCategory("Work")

	if code := e.run("add", "-d", "2 liters", "-c", "1", "Buy", "milk"); code != 0 {
		t.Fatalf("add: exit %d: %s", code, e.err.String())
	}
	if !strings.Contains(e.out.String(), "added #1") {
		t.Errorf("add output: %q", e.out.String())
	}
	if code := e.run("add", "Call mom"); code != 0 {
		t.Fatalf("add: exit %d", code)
	}

	todos, err := e.svc.ListTodos(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(todos) != 2 || todos[0].DescriptionText() != "2 liters" || *todos[0].CategoryID != work.ID || todos[1].Description != nil {
		t.Fatalf("created: %+v", todos)
	}

	if code := e.run("done", "1"); code != 0 {
		t.Fatalf("done: exit %d", code)
	}
	if code := e.run("ls"); code != 0 {
		t.Fatalf("ls: exit %d", code)
	}
	out := e.out.String()
	for _, want := range []string{"Buy milk", "[Work]", "Call mom", "[No category]", "50%"} {
		if !strings.Contains(out, want) {
			t.Errorf("ls output missing %q:\n%s", want, out)
		}
	}

	if code := e.run("ls", "-c", "1"); code != 0 {
		t.Fatalf("ls -c: exit %d", code)
	}
	if strings.Contains(e.out.String(), "Call mom") {
		t.Errorf("filtered ls shows other todos:\n%s", e.out.String())
	}
	if n := e.srv.Count(http.MethodGet, "/todos?category_id=1"); n != 1 {
		t.Errorf("filtered GET count: %d", n)
	}
}

func TestListGrouped(t *testing.T) {
	e := newEnv(t)
	e.srv.SeedTodo("Buy milk", nil)
	if code := e.run("ls", "-group"); code != 0 {
		t.Fatalf("exit %d", code)
	}
	out := e.out.String()
	if !strings.Contains(out, "Pending") || !strings.Contains(out, "(none)") {
		t.Errorf("grouped output:\n%s", out)
	}
}

func TestShowEditRemove(t *testing.T) {
	e := newEnv(t)
	e.srv.SeedTodo("Buy milk", model.Ptr(42))

	if code := e.run("edit", "1", "Buy", "oat", "milk"); code != 0 {
		t.Fatalf("edit: exit %d", code)
	}
	if code := e.run("show", "1"); code != 0 {
		t.Fatalf("show: exit %d", code)
	}
	if out := e.out.String(); !strings.Contains(out, "#1 Buy oat milk") || !strings.Contains(out, "Unknown") {
		t.Errorf("show output:\n%s", out)
	}

	if code := e.run("rm", "1"); code != 0 {
		t.Fatalf("rm: exit %d", code)
	}
	if code := e.run("show", "1"); code != 1 {
		t.Errorf("show after rm: exit %d, want 1", code)
	}
	if !strings.Contains(e.err.String(), "Failed to load todo") {
		t.Errorf("stderr: %q", e.err.String())
	}
}

func TestMove(t *testing.T) {
	e := newEnv(t)
	work := e.srv.SeedCategory("Work")
	e.srv.SeedTodo("Report", nil)

	if code := e.run("move", "1", "1"); code != 0 {
		t.Fatalf("move: exit %d: %s", code, e.err.String())
	}
	td, err := e.svc.GetTodo(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if td.CategoryID == nil || *td.CategoryID != work.ID {
		t.Fatalf("after move: %+v", td.CategoryID)
	}

	if code := e.run("move", "1", "none"); code != 0 {
		t.Fatalf("move none: exit %d", code)
	}
	if td, _ = e.svc.GetTodo(context.Background(), 1); td.CategoryID != nil {
		t.Errorf("category not cleared: %v", *td.CategoryID)
	}

	if code := e.run("move", "1", "7"); code != 1 {
		t.Errorf("unknown category: exit %d, want 1", code)
	}
}

func TestCategoryCommands(t *testing.T) {
	e := newEnv(t)
	e.srv.SeedTodo("Report", nil)

	if code := e.run("cat", "add", "-d", "Office", "Work"); code != 0 {
		t.Fatalf("cat add: exit %d", code)
	}
	if code := e.run("cat", "rename", "1", "Job"); code != 0 {
		t.Fatalf("cat rename: exit %d", code)
	}
	if code := e.run("cat", "ls"); code != 0 {
		t.Fatalf("cat ls: exit %d", code)
	}
	if out := e.out.String(); !strings.Contains(out, "Job") || !strings.Contains(out, "Office") {
		t.Errorf("cat ls output:\n%s", out)
	}
	if code := e.run("cat", "rm", "1"); code != 0 {
		t.Fatalf("cat rm: exit %d", code)
	}
	if code := e.run("cat", "ls"); code != 0 || !strings.Contains(e.out.String(), "No categories yet.") {
		t.Errorf("cat ls after rm: exit %d\n%s", code, e.out.String())
	}
	if n := e.srv.Count(http.MethodDelete, "/todos/1"); n != 0 {
		t.Error("category delete must not touch todos")
	}
}

func TestBackendFailure(t *testing.T) {
	e := newEnv(t)
	e.srv.FailAll(true)
	if code := e.run("ls"); code != 1 {
		t.Errorf("exit %d, want 1", code)
	}
	if !strings.Contains(e.err.String(), "Failed to load todos") {
		t.Errorf("stderr: %q", e.err.String())
	}
}
