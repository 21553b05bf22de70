// Package apitest runs an in-memory todo backend for tests. It follows the
// REST contract the client expects: 201 on create, 404 for unknown ids,
// 400 for an unknown category reference and partial updates.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/idilsaglam/todo-client/internal/model"
)

// Request is one recorded request line.
type Request struct {
	Method    string
	Path      string // path plus raw query, relative to the base URL
	RequestID string
}

// Server is a fake backend. URL is the base URL to hand to api.New.
type Server struct {
	URL string

	srv *httptest.Server

	mu         sync.Mutex
	todos      []model.Todo
	categories []model.Category
	nextTodo   int
	nextCat    int
	failNext   int
	failAll    bool
	requests   []Request
	gate       chan struct{}
}

const basePath = "/api"

// New starts a fake backend. Close it with t.Cleanup(s.Close).
func New() *Server {
	s := &Server{}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	g := e.Group(basePath, s.record, s.inject)
	g.GET("/todos", s.listTodos)
	g.POST("/todos", s.createTodo)
	g.GET("/todos/:id", s.getTodo)
	g.PUT("/todos/:id", s.updateTodo)
	g.DELETE("/todos/:id", s.deleteTodo)
	g.GET("/categories", s.listCategories)
	g.POST("/categories", s.createCategory)
	g.GET("/categories/:id", s.getCategory)
	g.PUT("/categories/:id", s.updateCategory)
	g.DELETE("/categories/:id", s.deleteCategory)

	s.srv = httptest.NewServer(e)
	s.URL = s.srv.URL + basePath
	return s
}

func (s *Server) Close() { s.srv.Close() }

// FailNext makes the next n requests answer 500.
func (s *Server) FailNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = n
}

// FailAll makes every request answer 500 until called with false.
func (s *Server) FailAll(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAll = on
}

// Hold blocks every request until the returned release func is called.
func (s *Server) Hold() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gate = gate
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.gate = nil
			s.mu.Unlock()
			close(gate)
		})
	}
}

// Requests returns a copy of the recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests matched method and path (query included).
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// SeedCategory stores a category directly, bypassing HTTP.
func (s *Server) SeedCategory(name string) model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCat++
	c := model.Category{ID: s.nextCat, Name: name}
	s.categories = append(s.categories, c)
	return c
}

// SeedTodo stores a todo directly, bypassing HTTP.
func (s *Server) SeedTodo(title string, categoryID *int) model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertTodo(model.TodoCreate{Title: title, CategoryID: categoryID})
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		r := c.Request()
		path := r.URL.Path[len(basePath):]
		if r.URL.RawQuery != "" {
			path += "?" + r.URL.RawQuery
		}
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    r.Method,
			Path:      path,
			RequestID: r.Header.Get("X-Request-ID"),
		})
		gate := s.gate
		s.mu.Unlock()
		if gate != nil {
			<-gate
		}
		return next(c)
	}
}

func (s *Server) inject(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		fail := s.failAll || s.failNext > 0
		if s.failNext > 0 {
			s.failNext--
		}
		s.mu.Unlock()
		if fail {
			return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "injected failure"})
		}
		return next(c)
	}
}

func (s *Server) listTodos(c echo.Context) error {
	var filter *int
	if raw := c.QueryParam("category_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "invalid category_id"})
		}
		filter = &id
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		if t.InCategory(filter) {
			out = append(out, t)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getTodo(c echo.Context) error {
	id, ok := paramID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.todoIndex(id)
	if !ok || i < 0 {
		return notFound(c, "Todo not found")
	}
	return c.JSON(http.StatusOK, s.todos[i])
}

func (s *Server) createTodo(c echo.Context) error {
	var in model.TodoCreate
	if err := c.Bind(&in); err != nil || in.Title == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "title is required"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.CategoryID != nil && s.categoryIndex(*in.CategoryID) < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Category not found"})
	}
	return c.JSON(http.StatusCreated, s.insertTodo(in))
}

func (s *Server) updateTodo(c echo.Context) error {
	id, ok := paramID(c)
	var patch model.TodoUpdate
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": err.Error()})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if cid := patch.CategoryID.Value; cid != nil && s.categoryIndex(*cid) < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Category not found"})
	}
	i := s.todoIndex(id)
	if !ok || i < 0 {
		return notFound(c, "Todo not found")
	}
	t := &s.todos[i]
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description.Set {
		t.Description = patch.Description.Value
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.CategoryID.Set {
		t.CategoryID = patch.CategoryID.Value
	}
	t.UpdatedAt = now()
	return c.JSON(http.StatusOK, *t)
}

func (s *Server) deleteTodo(c echo.Context) error {
	id, ok := paramID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.todoIndex(id)
	if !ok || i < 0 {
		return notFound(c, "Todo not found")
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	return c.JSON(http.StatusOK, echo.Map{"message": "Todo deleted successfully"})
}

func (s *Server) listCategories(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getCategory(c echo.Context) error {
	id, ok := paramID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.categoryIndex(id)
	if !ok || i < 0 {
		return notFound(c, "Category not found")
	}
	return c.JSON(http.StatusOK, s.categories[i])
}

func (s *Server) createCategory(c echo.Context) error {
	var in model.CategoryCreate
	if err := c.Bind(&in); err != nil || in.Name == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "name is required"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCat++
	cat := model.Category{ID: s.nextCat, Name: in.Name, Description: in.Description}
	s.categories = append(s.categories, cat)
	return c.JSON(http.StatusCreated, cat)
}

func (s *Server) updateCategory(c echo.Context) error {
	id, ok := paramID(c)
	var patch model.CategoryUpdate
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": err.Error()})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.categoryIndex(id)
	if !ok || i < 0 {
		return notFound(c, "Category not found")
	}
	cat := &s.categories[i]
	if patch.Name != nil {
		cat.Name = *patch.Name
	}
	if patch.Description != nil {
		cat.Description = patch.Description
	}
	return c.JSON(http.StatusOK, *cat)
}

// deleteCategory leaves todos that reference the category untouched.
func (s *Server) deleteCategory(c echo.Context) error {
	id, ok := paramID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.categoryIndex(id)
	if !ok || i < 0 {
		return notFound(c, "Category not found")
	}
	s.categories = append(s.categories[:i], s.categories[i+1:]...)
	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted successfully"})
}

// insertTodo must be called with s.mu held.
func (s *Server) insertTodo(in model.TodoCreate) model.Todo {
	s.nextTodo++
	ts := now()
	t := model.Todo{
		ID:          s.nextTodo,
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	s.todos = append(s.todos, t)
	return t
}

func (s *Server) todoIndex(id int) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) categoryIndex(id int) int {
	for i, c := range s.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func paramID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	return id, err == nil
}

func notFound(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"detail": detail})
}

func now() string { return time.Now().UTC().Format(time.RFC3339Nano) }
