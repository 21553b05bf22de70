package query

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo-client/internal/model"
)

const ResourceCategories = "categories"

type CategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int) (model.Category, error)
	CreateCategory(ctx context.Context, data model.CategoryCreate) (model.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

// Service is everything the pages read and write.
type Service interface {
	TodoService
	CategoryService
}

func CategoryListKey() Key { return Key{Resource: ResourceCategories} }

func CategoryKey(id int) Key {
	return Key{Resource: ResourceCategories, Param: "id=" + strconv.Itoa(id)}
}

func Categories(c *Cache, svc CategoryService) (State[[]model.Category], tea.Cmd) {
	return Observe(c, CategoryListKey(), svc.ListCategories)
}

func Category(c *Cache, svc CategoryService, id int) (State[model.Category], tea.Cmd) {
	return Observe(c, CategoryKey(id), func(ctx context.Context) (model.Category, error) {
		return svc.GetCategory(ctx, id)
	})
}

type (
	CreateCategoryMutation = Mutation[model.CategoryCreate, model.Category]
	DeleteCategoryMutation = Mutation[int, struct{}]
)

func CreateCategory(c *Cache, svc CategoryService) *CreateCategoryMutation {
	return NewMutation(c, "create category", svc.CreateCategory, ResourceCategories)
}

func DeleteCategory(c *Cache, svc CategoryService) *DeleteCategoryMutation {
	return NewMutation(c, "delete category", func(ctx context.Context, id int) (struct{}, error) {
		return struct{}{}, svc.DeleteCategory(ctx, id)
	}, ResourceCategories)
}
