// Package tui is the interactive client: a shell with three pages backed by
// the query cache.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo-client/internal/query"
	"github.com/idilsaglam/todo-client/internal/ui"
)

type route int

const (
	routeTodos route = iota
	routeAdd
	routeCategories
)

var routeNames = [...]string{"Todos", "Add todo", "Categories"}

func (r route) String() string { return routeNames[r] }

type navigateMsg struct{ to route }

func navigate(to route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

// env is shared by every page. It is only touched from Update.
type env struct {
	cache   *query.Cache
	svc     query.Service
	log     *log.Logger
	spinner spinner.Model
	active  route
	width   int
	height  int
}

// page is one screen of the shell.
type page interface {
	// enter is called when the page becomes active.
	enter() tea.Cmd
	// sync observes the page's queries and returns fetches for missing or
	// stale entries.
	sync() tea.Cmd
	update(msg tea.Msg) tea.Cmd
	view() string
	// capturing reports whether a text field has focus, in which case the
	// shell leaves single-letter keys to the page.
	capturing() bool
	help() []key.Binding
}

// App is the navigation shell.
type App struct {
	env   *env
	pages [3]page
	help  help.Model
}

// New builds the shell. Fetches and mutations run under ctx.
func New(ctx context.Context, svc query.Service, logger *log.Logger) *App {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = ui.Current().Accent

	e := &env{
		cache:   query.NewCache(ctx, logger),
		svc:     svc,
		log:     logger,
		spinner: sp,
		width:   80,
		height:  24,
	}
	h := help.New()
	h.Styles.ShortKey = ui.Current().Accent
	h.Styles.ShortDesc = ui.Current().Help

	a := &App{env: e, help: h}
	a.pages[routeTodos] = newTodosPage(e)
	a.pages[routeAdd] = newAddTodoPage(e)
	a.pages[routeCategories] = newCategoriesPage(e)
	return a
}

// Run starts the interactive client and blocks until it quits.
func Run(ctx context.Context, svc query.Service, logger *log.Logger) error {
	p := tea.NewProgram(New(ctx, svc, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.env.spinner.Tick, a.page().enter(), a.page().sync())
}

func (a *App) page() page { return a.pages[a.env.active] }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, appKeys.ForceQuit) {
			return a, tea.Quit
		}
		if !a.page().capturing() {
			switch {
			case key.Matches(msg, appKeys.Quit):
				return a, tea.Quit
			case key.Matches(msg, appKeys.Todos):
				return a, a.switchTo(routeTodos)
			case key.Matches(msg, appKeys.Add):
				return a, a.switchTo(routeAdd)
			case key.Matches(msg, appKeys.Categories):
				return a, a.switchTo(routeCategories)
			}
		}
		cmds = append(cmds, a.page().update(msg))

	case navigateMsg:
		return a, a.switchTo(msg.to)

	case query.FetchedMsg:
		a.env.cache.Resolve(msg)

	case query.MutationMsg:
		// Every page sees the result; only the issuing mutation settles it.
		for _, p := range a.pages {
			cmds = append(cmds, p.update(msg))
		}

	case tea.WindowSizeMsg:
		a.env.width, a.env.height = msg.Width, msg.Height
		a.help.Width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.env.spinner, cmd = a.env.spinner.Update(msg)
		return a, cmd

	default:
		cmds = append(cmds, a.page().update(msg))
	}

	cmds = append(cmds, a.page().sync())
	return a, tea.Batch(cmds...)
}

// switchTo switches the active page.
func (a *App) switchTo(to route) tea.Cmd {
	if to == a.env.active {
		return nil
	}
	a.env.log.Debug("navigate", "from", a.env.active, "to", to)
	a.env.active = to
	return tea.Batch(a.page().enter(), a.page().sync())
}

func (a *App) View() string {
	t := ui.Current()

	tabs := make([]string, 0, len(routeNames))
	for i, name := range routeNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if route(i) == a.env.active {
			tabs = append(tabs, t.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, t.Tab.Render(label))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		t.Title.Render("Todo App")+"  ",
		strings.Join(tabs, " "),
	)

	bindings := a.page().help()
	if !a.page().capturing() {
		bindings = append(bindings, appKeys.Todos, appKeys.Add, appKeys.Categories, appKeys.Quit)
	} else {
		bindings = append(bindings, appKeys.ForceQuit)
	}
	footer := a.help.ShortHelpView(bindings)

	return header + "\n\n" + a.page().view() + "\n\n" + footer
}

// failure renders the single user-visible failure message for an operation.
func failure(op string) string {
	return ui.Current().Error.Render(fmt.Sprintf("%s Failed to %s.", ui.Current().SymFail, op))
}

// loading renders the shared spinner with a label.
func (e *env) loading(label string) string {
	return e.spinner.View() + " " + ui.Current().Muted.Render(label)
}

// bodyHeight is the room left for a page below the header and above the footer.
func (e *env) bodyHeight() int {
	h := e.height - 6
	if h < 3 {
		h = 3
	}
	return h
}
