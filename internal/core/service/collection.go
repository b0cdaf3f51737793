package service

import (
	"slices"
	"sync"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
)

// Collection is the mutex-guarded cache behind one service. Rows keep the
// order the API returned them in; newest-first ordering is a view concern.
type Collection[T domain.Entity] struct {
	mu     sync.RWMutex
	items  []T
	err    error
	detail *T
}

func NewCollection[T domain.Entity]() *Collection[T] {
	return &Collection[T]{}
}

// Data returns a copy of the cached rows.
func (c *Collection[T]) Data() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Replace swaps the whole cache and clears the last fetch error.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = slices.Clone(items)
	c.err = nil
}

func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

func (c *Collection[T]) Assign(id string, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.IndexFunc(c.items, func(v T) bool { return v.EntityID() == id })
	if i < 0 {
		return false
	}
	c.items[i] = item
	return true
}

func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(v T) bool { return v.EntityID() == id })
	return len(c.items) != n
}

// Find returns the cached row with the given id.
func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, v := range c.items {
		if v.EntityID() == id {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Err is the error of the last failed fetch, nil after a successful one.
func (c *Collection[T]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func (c *Collection[T]) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Detail is the record loaded by the last GetDetail call.
func (c *Collection[T]) Detail() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.detail == nil {
		var zero T
		return zero, false
	}
	return *c.detail, true
}

func (c *Collection[T]) setDetail(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detail = &v
}
