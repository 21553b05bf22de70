package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCategoryName(t *testing.T) {
	cats := []Category{{ID: 1, Name: "Work"}, {ID: 2, Name: "Home"}}
	tests := []struct {
		name string
		id   *int
		want string
	}{
		{"nil reference", nil, NoCategoryLabel},
		{"known", Ptr(2), "Home"},
		{"missing", Ptr(9), UnknownCategoryLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryName(tt.id, cats); got != tt.want {
				t.Errorf("CategoryName: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTodoUpdateSendsOnlySuppliedFields(t *testing.T) {
	b, err := json.Marshal(TodoUpdate{Completed: Ptr(true)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(b); got != `{"completed":true}` {
		t.Errorf("body: got %s", got)
	}
	if !(TodoUpdate{}).Empty() {
		t.Error("zero patch should be empty")
	}
}

func TestTodoUpdateClearsWithNull(t *testing.T) {
	b, err := json.Marshal(TodoUpdate{CategoryID: Null[int](), Description: Some("milk")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(b); got != `{"description":"milk","category_id":null}` {
		t.Errorf("body: got %s", got)
	}

	var patch TodoUpdate
	if err := json.Unmarshal([]byte(`{"category_id":null,"completed":true}`), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !patch.CategoryID.Set || patch.CategoryID.Value != nil {
		t.Errorf("explicit null lost: %+v", patch.CategoryID)
	}
	if patch.Description.Set {
		t.Error("absent description decoded as set")
	}
	if patch.Empty() {
		t.Error("patch with fields should not be empty")
	}
}

func TestTodoCreateOmitsAbsentOptionals(t *testing.T) {
	b, err := json.Marshal(TodoCreate{Title: "Buy milk", Description: OptionalText("")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if strings.Contains(s, "description") || strings.Contains(s, "category_id") {
		t.Errorf("absent optionals leaked into body: %s", s)
	}
}

func TestTodoDecodesNulls(t *testing.T) {
	var td Todo
	raw := `{"id":3,"title":"x","description":null,"completed":false,"category_id":null,"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}`
	if err := json.Unmarshal([]byte(raw), &td); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if td.Description != nil || td.CategoryID != nil {
		t.Errorf("nulls should decode as nil: %+v", td)
	}
	if !td.InCategory(nil) || td.InCategory(Ptr(1)) {
		t.Error("InCategory mismatch for uncategorized todo")
	}
}

func TestStats(t *testing.T) {
	done, pending := Stats([]Todo{{Completed: true}, {}, {}})
	if done != 1 || pending != 2 {
		t.Errorf("Stats: got %d/%d, want 1/2", done, pending)
	}
}
