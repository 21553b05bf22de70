package query

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo-client/internal/model"
)

const ResourceTodos = "todos"

// TodoService is the slice of the API client the todo queries need.
type TodoService interface {
	ListTodos(ctx context.Context, categoryID *int) ([]model.Todo, error)
	GetTodo(ctx context.Context, id int) (model.Todo, error)
	CreateTodo(ctx context.Context, data model.TodoCreate) (model.Todo, error)
	UpdateTodo(ctx context.Context, id int, patch model.TodoUpdate) (model.Todo, error)
	DeleteTodo(ctx context.Context, id int) error
}

// TodoListKey is distinct per filter value; nil means all todos.
func TodoListKey(categoryID *int) Key {
	if categoryID == nil {
		return Key{Resource: ResourceTodos}
	}
	return Key{Resource: ResourceTodos, Param: "category=" + strconv.Itoa(*categoryID)}
}

func TodoKey(id int) Key {
	return Key{Resource: ResourceTodos, Param: "id=" + strconv.Itoa(id)}
}

func Todos(c *Cache, svc TodoService, categoryID *int) (State[[]model.Todo], tea.Cmd) {
	var filter *int
	if categoryID != nil {
		v := *categoryID
		filter = &v
	}
	return Observe(c, TodoListKey(filter), func(ctx context.Context) ([]model.Todo, error) {
		return svc.ListTodos(ctx, filter)
	})
}

func Todo(c *Cache, svc TodoService, id int) (State[model.Todo], tea.Cmd) {
	return Observe(c, TodoKey(id), func(ctx context.Context) (model.Todo, error) {
		return svc.GetTodo(ctx, id)
	})
}

// TodoPatch is the input of the update mutation.
type TodoPatch struct {
	ID    int
	Patch model.TodoUpdate
}

type (
	CreateTodoMutation = Mutation[model.TodoCreate, model.Todo]
	UpdateTodoMutation = Mutation[TodoPatch, model.Todo]
	DeleteTodoMutation = Mutation[int, struct{}]
)

func CreateTodo(c *Cache, svc TodoService) *CreateTodoMutation {
	return NewMutation(c, "create todo", svc.CreateTodo, ResourceTodos)
}

func UpdateTodo(c *Cache, svc TodoService) *UpdateTodoMutation {
	return NewMutation(c, "update todo", func(ctx context.Context, in TodoPatch) (model.Todo, error) {
		return svc.UpdateTodo(ctx, in.ID, in.Patch)
	}, ResourceTodos)
}

func DeleteTodo(c *Cache, svc TodoService) *DeleteTodoMutation {
	return NewMutation(c, "delete todo", func(ctx context.Context, id int) (struct{}, error) {
		return struct{}{}, svc.DeleteTodo(ctx, id)
	}, ResourceTodos)
}
