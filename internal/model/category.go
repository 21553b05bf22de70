package model

const (
	NoCategoryLabel      = "No category"
	UnknownCategoryLabel = "Unknown"
)

// Category is a named grouping a todo may reference.
type Category struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type CategoryCreate struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type CategoryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (c Category) DescriptionText() string {
	if c.Description == nil {
		return ""
	}
	return *c.Description
}

// CategoryName resolves a weak category reference against the loaded set.
func CategoryName(id *int, categories []Category) string {
	if id == nil {
		return NoCategoryLabel
	}
	for _, c := range categories {
		if c.ID == *id {
			return c.Name
		}
	}
	return UnknownCategoryLabel
}
