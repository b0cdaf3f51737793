package service

import (
	"context"
	"sync"
)

// ---------------------------------------------------------------------------
// stubClient is an in-memory ports.ResourceClient that records every call.
// ---------------------------------------------------------------------------

type stubClient[T any] struct {
	mu sync.Mutex

	rows    []T
	detail  T
	created T
	updated T

	getErr, postErr, putErr, deleteErr, detailErr error

	queries []string
	posted  []T
	put     map[string]T
	deleted []string
}

func newStubClient[T any](rows ...T) *stubClient[T] {
	return &stubClient[T]{rows: rows, put: make(map[string]T)}
}

func (c *stubClient[T]) Get(_ context.Context, query string) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries = append(c.queries, query)
	if c.getErr != nil {
		return nil, c.getErr
	}
	return append([]T(nil), c.rows...), nil
}

func (c *stubClient[T]) GetDetail(_ context.Context, _ string) (T, error) {
	if c.detailErr != nil {
		var zero T
		return zero, c.detailErr
	}
	return c.detail, nil
}

func (c *stubClient[T]) Post(_ context.Context, data T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posted = append(c.posted, data)
	if c.postErr != nil {
		var zero T
		return zero, c.postErr
	}
	return c.created, nil
}

func (c *stubClient[T]) Put(_ context.Context, id string, data T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.put[id] = data
	if c.putErr != nil {
		var zero T
		return zero, c.putErr
	}
	return c.updated, nil
}

func (c *stubClient[T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, id)
	return c.deleteErr
}
