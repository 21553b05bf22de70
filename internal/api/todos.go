package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/idilsaglam/todo-client/internal/model"
)

// ListTodos returns todos in server order, optionally restricted to one category.
func (c *Client) ListTodos(ctx context.Context, categoryID *int) ([]model.Todo, error) {
	path := "/todos"
	if categoryID != nil {
		q := url.Values{}
		q.Set("category_id", strconv.Itoa(*categoryID))
		path += "?" + q.Encode()
	}
	var todos []model.Todo
	if err := c.do(ctx, "list todos", http.MethodGet, path, nil, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

func (c *Client) GetTodo(ctx context.Context, id int) (model.Todo, error) {
	var t model.Todo
	err := c.do(ctx, "get todo", http.MethodGet, todoPath(id), nil, &t)
	return t, err
}

func (c *Client) CreateTodo(ctx context.Context, data model.TodoCreate) (model.Todo, error) {
	var t model.Todo
	err := c.do(ctx, "create todo", http.MethodPost, "/todos", data, &t)
	return t, err
}

// UpdateTodo sends a partial patch; fields left nil are not changed.
func (c *Client) UpdateTodo(ctx context.Context, id int, patch model.TodoUpdate) (model.Todo, error) {
	var t model.Todo
	err := c.do(ctx, "update todo", http.MethodPut, todoPath(id), patch, &t)
	return t, err
}

func (c *Client) DeleteTodo(ctx context.Context, id int) error {
	return c.do(ctx, "delete todo", http.MethodDelete, todoPath(id), nil, nil)
}

func todoPath(id int) string { return fmt.Sprintf("/todos/%d", id) }
