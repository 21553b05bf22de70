package tui

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/idilsaglam/todo-client/internal/model"
	"github.com/idilsaglam/todo-client/internal/query"
)

func TestTodosPageShowsLoadingThenList(t *testing.T) {
	h := newHarness(t)
	work := h.srv.SeedCategory("Work")
	h.srv.SeedTodo("Buy milk", &work.ID)
	h.srv.SeedTodo("Call mom", nil)
	h.srv.SeedTodo("Orphan", model.Ptr(99))

	cmd := h.app.Init()
	if v := h.app.View(); !strings.Contains(v, "Loading todos...") {
		t.Errorf("view before fetch should show the loading indicator:\n%s", v)
	}
	h.run(cmd)

	p := h.todos()
	if p.todos.Status != query.StatusSuccess || len(p.list.Items()) != 3 {
		t.Fatalf("todos not loaded: %+v", p.todos)
	}
	v := h.app.View()
	for _, want := range []string{"Buy milk", "[Work]", "[No category]", "[Unknown]", "All categories"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}
}

func TestTodosPageEmptyState(t *testing.T) {
	h := newHarness(t)
	h.start()
	if v := h.app.View(); !strings.Contains(v, "No todos found. Create one!") {
		t.Errorf("empty state missing:\n%s", v)
	}
}

func TestToggleSendsOnlyCompleted(t *testing.T) {
	h := newHarness(t)
	td := h.srv.SeedTodo("Buy milk", nil)
	h.start()

	h.send(keySpace)

	p := h.todos()
	got := p.todos.Data[0]
	if !got.Completed || got.Title != "Buy milk" || got.ID != td.ID {
		t.Errorf("after toggle: %+v", got)
	}
	if n := h.srv.Count(http.MethodPut, "/todos/"+strconv.Itoa(td.ID)); n != 1 {
		t.Errorf("PUT count: got %d, want 1", n)
	}
	if n := h.srv.Count(http.MethodGet, "/todos"); n != 2 {
		t.Errorf("list should be refetched once after the write: got %d GETs", n)
	}
}

func TestToggleRefreshesSelection(t *testing.T) {
	h := newHarness(t)
	h.srv.SeedTodo("Buy milk", nil)
	h.start()

	h.send(keyEnter) // open drawer, title focused
	h.send(keyTab)   // leave the field, drawer stays open
	p := h.todos()
	if p.selected == nil || p.editing {
		t.Fatalf("drawer state: selected=%v editing=%v", p.selected, p.editing)
	}

	h.send(keySpace)
	if p.selected == nil || !p.selected.Completed {
		t.Errorf("selection not refreshed from the update response: %+v", p.selected)
	}
	if v := h.app.View(); !strings.Contains(v, "Completed") {
		t.Errorf("drawer should show the new status:\n%s", v)
	}
}

func TestFilterCyclesAndCachesPerFilter(t *testing.T) {
	h := newHarness(t)
	work := h.srv.SeedCategory("Work")
	home := h.srv.SeedCategory("Home")
	h.srv.SeedTodo("Report", &work.ID)
	h.srv.SeedTodo("Dishes", &home.ID)
	h.start()

	h.send(keyEnter, keyTab) // drawer open must survive filter changes
	h.send(runes("f"))
	p := h.todos()
	if p.filter == nil || *p.filter != work.ID {
		t.Fatalf("filter: got %v, want %d", p.filter, work.ID)
	}
	if len(p.todos.Data) != 1 || p.todos.Data[0].Title != "Report" {
		t.Errorf("filtered list: %+v", p.todos.Data)
	}
	if p.selected == nil {
		t.Error("filter change closed the drawer")
	}
	if got := p.filterLabel(); got != "Work" {
		t.Errorf("filter label: got %q, want Work", got)
	}

	h.send(runes("F"))
	if p.filter != nil || len(p.todos.Data) != 2 {
		t.Errorf("back to all: filter=%v todos=%d", p.filter, len(p.todos.Data))
	}
	if n := h.srv.Count(http.MethodGet, "/todos"); n != 1 {
		t.Errorf("unfiltered list should come from cache: got %d GETs", n)
	}

	h.send(runes("F"))
	if p.filter == nil || *p.filter != home.ID {
		t.Errorf("F from all should wrap to the last category: %v", p.filter)
	}
}

func TestEditTitleCommitsOnlyWhenChanged(t *testing.T) {
	h := newHarness(t)
	td := h.srv.SeedTodo("Buy milk", nil)
	h.start()
	path := "/todos/" + strconv.Itoa(td.ID)

	h.send(keyEnter)
	h.send(keyEnter) // unchanged: no write
	if n := h.srv.Count(http.MethodPut, path); n != 0 {
		t.Fatalf("unchanged title was written: %d PUTs", n)
	}

	h.send(keyCtrlU)
	h.typeText("Buy oat milk")
	h.send(keyEnter)

	p := h.todos()
	if p.selected == nil || p.selected.Title != "Buy oat milk" {
		t.Fatalf("selection not replaced by server copy: %+v", p.selected)
	}
	if p.todos.Data[0].Title != "Buy oat milk" {
		t.Errorf("list not refetched: %+v", p.todos.Data)
	}

	h.send(keyTab) // blur with no change
	if n := h.srv.Count(http.MethodPut, path); n != 1 {
		t.Errorf("PUT count: got %d, want 1", n)
	}
}

func TestRepeatedSaveWhileInFlightWritesOnce(t *testing.T) {
	h := newHarness(t)
	td := h.srv.SeedTodo("Buy milk", nil)
	h.start()

	h.send(keyEnter)
	h.typeText("!")
	_, first := h.app.Update(keyEnter)
	_, second := h.app.Update(keyEnter)
	h.run(first)
	h.run(second)

	if n := h.srv.Count(http.MethodPut, "/todos/"+strconv.Itoa(td.ID)); n != 1 {
		t.Errorf("PUT count: got %d, want 1", n)
	}
	if got := h.todos().selected; got == nil || got.Title != "Buy milk!" {
		t.Errorf("selection after save: %+v", got)
	}

	h.send(keyCtrlU)
	h.typeText("Oat milk")
	h.send(keyEnter)
	if n := h.srv.Count(http.MethodPut, "/todos/"+strconv.Itoa(td.ID)); n != 2 {
		t.Errorf("a new title after settling should be written: %d PUTs", n)
	}
}

func TestEscCommitsThenClosesDrawer(t *testing.T) {
	h := newHarness(t)
	h.srv.SeedTodo("Buy milk", nil)
	h.start()

	h.send(keyEnter)
	h.typeText("!")
	h.send(keyEsc)

	p := h.todos()
	if p.selected != nil || p.title.Value() != "" || p.editing {
		t.Errorf("drawer should be closed and cleared: %+v %q", p.selected, p.title.Value())
	}
	if p.todos.Data[0].Title != "Buy milk!" {
		t.Errorf("blur on close should commit: %+v", p.todos.Data[0])
	}
}

func TestDeleteRemovesAndClosesDrawer(t *testing.T) {
	h := newHarness(t)
	h.srv.SeedTodo("Buy milk", nil)
	keep := h.srv.SeedTodo("Call mom", nil)
	h.start()

	h.send(keyEnter, keyTab)
	h.send(runes("d"))

	p := h.todos()
	if p.selected != nil {
		t.Error("deleting the selected todo should close the drawer")
	}
	if len(p.todos.Data) != 1 || p.todos.Data[0].ID != keep.ID {
		t.Errorf("list after delete: %+v", p.todos.Data)
	}
}

func TestDeleteOtherTodoKeepsDrawer(t *testing.T) {
	h := newHarness(t)
	h.srv.SeedTodo("Buy milk", nil)
	h.srv.SeedTodo("Call mom", nil)
	h.start()

	h.send(keyEnter, keyTab, keyDown)
	h.send(runes("d"))

	p := h.todos()
	if p.selected == nil || p.selected.Title != "Buy milk" {
		t.Errorf("drawer should stay on the other todo: %+v", p.selected)
	}
	if len(p.todos.Data) != 1 {
		t.Errorf("list after delete: %+v", p.todos.Data)
	}
}

func TestFailuresAreShown(t *testing.T) {
	h := newHarness(t)
	h.srv.SeedTodo("Buy milk", nil)
	h.start()

	h.srv.FailNext(1)
	h.send(keySpace)
	if v := h.app.View(); !strings.Contains(v, "Failed to update todo.") {
		t.Errorf("update failure not surfaced:\n%s", v)
	}
	if h.todos().todos.Data[0].Completed {
		t.Error("failed toggle must not change the list")
	}

	h.srv.FailNext(1)
	h.send(runes("d"))
	if v := h.app.View(); !strings.Contains(v, "Failed to delete todo.") {
		t.Errorf("delete failure not surfaced:\n%s", v)
	}
}

func TestReloadRetriesFailedQuery(t *testing.T) {
	h := newHarness(t)
	h.srv.SeedTodo("Buy milk", nil)
	h.srv.FailAll(true)
	h.start()

	if v := h.app.View(); !strings.Contains(v, "Failed to load todos.") {
		t.Errorf("load failure not surfaced:\n%s", v)
	}

	h.srv.FailAll(false)
	h.send(runes("r"))
	p := h.todos()
	if p.todos.Status != query.StatusSuccess || len(p.todos.Data) != 1 {
		t.Errorf("reload: %+v", p.todos)
	}
}
