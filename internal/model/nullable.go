package model

import (
	"bytes"
	"encoding/json"
)

// Nullable is a patch field with three states: absent (zero value, omitted
// with omitzero), explicit null, or a value.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Some sets the field to v.
func Some[T any](v T) Nullable[T] { return Nullable[T]{Set: true, Value: &v} }

// Null sends an explicit null, clearing the field on the server.
func Null[T any]() Nullable[T] { return Nullable[T]{Set: true} }

func (n Nullable[T]) IsZero() bool { return !n.Set }

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}
