package query

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

var mutationSeq atomic.Uint64

// MutationMsg carries a mutation result back to the event loop. Only the
// Mutation that issued it (matched by ID) settles it.
type MutationMsg struct {
	ID     uint64
	Name   string
	Input  any
	Output any
	Err    error
}

// Result is a typed view of a settled MutationMsg.
type Result[I, O any] struct {
	Input  I
	Output O
	Err    error
}

// Mutation wraps a write call, tracks pending/error state and invalidates
// the given resources when a call succeeds.
type Mutation[I, O any] struct {
	id          uint64
	name        string
	cache       *Cache
	fn          func(context.Context, I) (O, error)
	invalidates []string

	pending int
	err     error
}

func NewMutation[I, O any](c *Cache, name string, fn func(context.Context, I) (O, error), invalidates ...string) *Mutation[I, O] {
	return &Mutation[I, O]{
		id:          mutationSeq.Add(1),
		name:        name,
		cache:       c,
		fn:          fn,
		invalidates: invalidates,
	}
}

func (m *Mutation[I, O]) Name() string { return m.name }

// Pending reports whether any call is still in flight.
func (m *Mutation[I, O]) Pending() bool { return m.pending > 0 }

// Err is the error of the most recently settled call.
func (m *Mutation[I, O]) Err() error { return m.err }

// Reset clears the error state.
func (m *Mutation[I, O]) Reset() { m.err = nil }

// Mutate marks the mutation pending and returns the command performing it.
func (m *Mutation[I, O]) Mutate(in I) tea.Cmd {
	m.pending++
	m.err = nil
	id, name, ctx, fn := m.id, m.name, m.cache.Context(), m.fn
	return func() tea.Msg {
		out, err := fn(ctx, in)
		return MutationMsg{ID: id, Name: name, Input: in, Output: out, Err: err}
	}
}

// Settle applies msg if it belongs to this mutation. On success the
// configured resources are invalidated before Settle returns.
func (m *Mutation[I, O]) Settle(msg tea.Msg) (Result[I, O], bool) {
	mm, ok := msg.(MutationMsg)
	if !ok || mm.ID != m.id {
		return Result[I, O]{}, false
	}
	if m.pending > 0 {
		m.pending--
	}

	res := Result[I, O]{Err: mm.Err}
	res.Input, _ = mm.Input.(I)
	res.Output, _ = mm.Output.(O)

	if mm.Err != nil {
		m.err = mm.Err
		m.cache.log.Error("mutation failed", "mutation", m.name, "err", mm.Err)
		return res, true
	}
	m.err = nil
	for _, r := range m.invalidates {
		m.cache.Invalidate(r)
	}
	return res, true
}
