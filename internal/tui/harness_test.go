package tui

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo-client/internal/api"
	"github.com/idilsaglam/todo-client/internal/apitest"
	"github.com/idilsaglam/todo-client/internal/logging"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyCtrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyCtrlU = tea.KeyMsg{Type: tea.KeyCtrlU}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// harness drives the App the way the Bubble Tea runtime would, but runs
// every command synchronously so tests observe settled state.
type harness struct {
	t    *testing.T
	app  *App
	srv  *apitest.Server
	quit bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	client := api.New(srv.URL, api.WithLogger(logging.Discard()))
	return &harness{
		t:   t,
		app: New(context.Background(), client, logging.Discard()),
		srv: srv,
	}
}

func (h *harness) start() {
	h.t.Helper()
	h.run(h.app.Init())
}

func (h *harness) send(msgs ...tea.Msg) {
	h.t.Helper()
	for _, msg := range msgs {
		_, cmd := h.app.Update(msg)
		h.run(cmd)
	}
}

func (h *harness) typeText(s string) {
	h.t.Helper()
	for _, r := range s {
		h.send(runes(string(r)))
	}
}

func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := h.exec(c).(type) {
		case nil, spinner.TickMsg:
		case tea.QuitMsg:
			h.quit = true
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := h.app.Update(msg)
			queue = append(queue, next)
		}
	}
}

func (h *harness) exec(c tea.Cmd) tea.Msg {
	h.t.Helper()
	done := make(chan tea.Msg, 1)
	go func() { done <- c() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(5 * time.Second):
		h.t.Fatal("command did not finish")
		return nil
	}
}

func (h *harness) todos() *todosPage { return h.app.pages[routeTodos].(*todosPage) }

func (h *harness) add() *addTodoPage { return h.app.pages[routeAdd].(*addTodoPage) }

func (h *harness) categories() *categoriesPage {
	return h.app.pages[routeCategories].(*categoriesPage)
}
