package model

// Todo is the domain model for a todo entry as returned by the backend.
// ID and timestamps are server-assigned; timestamps stay ISO-8601 strings.
type Todo struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	CategoryID  *int    `json:"category_id"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// TodoCreate is the body of a create request. Omitted optionals fall back to
// the server defaults (completed=false, category=null).
type TodoCreate struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	CategoryID  *int    `json:"category_id,omitempty"`
}

// TodoUpdate is a partial patch: unset fields are not sent and stay
// untouched. Description and CategoryID can also be cleared with Null.
type TodoUpdate struct {
	Title       *string          `json:"title,omitempty"`
	Description Nullable[string] `json:"description,omitzero"`
	Completed   *bool            `json:"completed,omitempty"`
	CategoryID  Nullable[int]    `json:"category_id,omitzero"`
}

// Empty reports whether the patch changes nothing.
func (u TodoUpdate) Empty() bool {
	return u.Title == nil && !u.Description.Set && u.Completed == nil && !u.CategoryID.Set
}

// DescriptionText returns the description or "" when absent.
func (t Todo) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// InCategory reports whether the todo references the given category.
// A nil id matches every todo.
func (t Todo) InCategory(id *int) bool {
	if id == nil {
		return true
	}
	return t.CategoryID != nil && *t.CategoryID == *id
}

// Stats counts done and pending todos.
func Stats(todos []Todo) (done, pending int) {
	for _, t := range todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// Ptr returns a pointer to v. Handy for building partial patches.
func Ptr[T any](v T) *T { return &v }

// OptionalText maps "" to nil so empty inputs are sent as absent.
func OptionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
