package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/idilsaglam/todo-client/internal/model"
)

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	if err := c.do(ctx, "list categories", http.MethodGet, "/categories", nil, &cats); err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []model.Category{}
	}
	return cats, nil
}

func (c *Client) GetCategory(ctx context.Context, id int) (model.Category, error) {
	var cat model.Category
	err := c.do(ctx, "get category", http.MethodGet, categoryPath(id), nil, &cat)
	return cat, err
}

func (c *Client) CreateCategory(ctx context.Context, data model.CategoryCreate) (model.Category, error) {
	var cat model.Category
	err := c.do(ctx, "create category", http.MethodPost, "/categories", data, &cat)
	return cat, err
}

func (c *Client) UpdateCategory(ctx context.Context, id int, patch model.CategoryUpdate) (model.Category, error) {
	var cat model.Category
	err := c.do(ctx, "update category", http.MethodPut, categoryPath(id), patch, &cat)
	return cat, err
}

func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.do(ctx, "delete category", http.MethodDelete, categoryPath(id), nil, nil)
}

func categoryPath(id int) string { return fmt.Sprintf("/categories/%d", id) }
