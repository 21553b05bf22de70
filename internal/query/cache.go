// Package query caches service results by key and exposes them as
// non-blocking load states for the Bubble Tea event loop.
//
// Fetches run as tea.Cmds off the loop; their results come back as
// FetchedMsg and are applied with Cache.Resolve from Update, so entries
// only change on the loop.
package query

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Key identifies one cached entry. Resource groups entries for invalidation;
// Param distinguishes filters and ids within a resource.
type Key struct {
	Resource string
	Param    string
}

func (k Key) String() string {
	if k.Param == "" {
		return k.Resource
	}
	return k.Resource + "/" + k.Param
}

// State is a snapshot of one entry. Data keeps the last successful value
// even while refetching or after a failed refetch.
type State[T any] struct {
	Status   Status
	Data     T
	Err      error
	Stale    bool
	Fetching bool
}

func (s State[T]) Loading() bool { return s.Status == StatusLoading }

// FetchedMsg carries a fetch result back to the event loop.
type FetchedMsg struct {
	Key  Key
	Gen  uint64
	Data any
	Err  error
}

type entry struct {
	status   Status
	data     any
	err      error
	stale    bool
	inflight bool
	gen      uint64
}

// Cache is the client-side query cache.
type Cache struct {
	ctx context.Context
	log *log.Logger

	mu      sync.Mutex
	entries map[Key]*entry
}

// NewCache creates a cache whose fetches run under ctx.
func NewCache(ctx context.Context, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.Default()
	}
	return &Cache{ctx: ctx, log: logger, entries: make(map[Key]*entry)}
}

// Context is the context fetches and mutations run under.
func (c *Cache) Context() context.Context { return c.ctx }

// Observe returns the current state for key without blocking. When the entry
// is missing or stale and no fetch is in flight, it also returns the command
// that fetches it. Repeated calls while a fetch is in flight return nil.
func Observe[T any](c *Cache, key Key, fetch func(context.Context) (T, error)) (State[T], tea.Cmd) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &entry{status: StatusLoading}
		c.entries[key] = e
	}

	var cmd tea.Cmd
	if (!ok || e.stale) && !e.inflight {
		e.inflight = true
		gen, ctx := e.gen, c.ctx
		c.log.Debug("fetch", "key", key)
		cmd = func() tea.Msg {
			data, err := fetch(ctx)
			return FetchedMsg{Key: key, Gen: gen, Data: data, Err: err}
		}
	}
	return snapshot[T](e), cmd
}

// Peek returns the current state for key without scheduling a fetch.
func Peek[T any](c *Cache, key Key) State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return State[T]{Status: StatusLoading}
	}
	return snapshot[T](e)
}

func snapshot[T any](e *entry) State[T] {
	s := State[T]{Status: e.status, Err: e.err, Stale: e.stale, Fetching: e.inflight}
	if v, ok := e.data.(T); ok {
		s.Data = v
	}
	return s
}

// Resolve applies a fetch result. A result whose generation predates an
// invalidation is stored but stays stale, so the next Observe refetches.
func (c *Cache) Resolve(msg FetchedMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[msg.Key]
	if !ok {
		return
	}
	e.inflight = false
	if msg.Err != nil {
		c.log.Error("query failed", "key", msg.Key, "err", msg.Err)
		e.status = StatusError
		e.err = msg.Err
		e.stale = msg.Gen != e.gen
		return
	}
	e.status = StatusSuccess
	e.data = msg.Data
	e.err = nil
	e.stale = msg.Gen != e.gen
}

// Invalidate marks every entry of resource stale and returns how many
// entries were marked.
func (c *Cache) Invalidate(resource string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if k.Resource != resource {
			continue
		}
		e.stale = true
		e.gen++
		n++
	}
	if n > 0 {
		c.log.Debug("invalidate", "resource", resource, "entries", n)
	}
	return n
}
