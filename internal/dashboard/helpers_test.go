package dashboard

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
)

// fakeClient is an in-memory ports.ResourceClient with server-assigned ids.
type fakeClient[T domain.Entity] struct {
	mu sync.Mutex

	rows   []T
	nextID int
	withID func(T, string) T

	// classOf enables ?className= queries. Other queries return every row.
	classOf func(T) string

	getErr, postErr, putErr, deleteErr error

	gets    int
	posted  []T
	deleted []string
	// beforePut runs inside Put, before it answers.
	beforePut func()
}

func newAdsClient(rows ...domain.Ads) *fakeClient[domain.Ads] {
	return &fakeClient[domain.Ads]{
		rows:   rows,
		nextID: 100,
		withID: func(a domain.Ads, id string) domain.Ads { a.ID = id; return a },
	}
}

func newPersonClient(rows ...domain.Person) *fakeClient[domain.Person] {
	return &fakeClient[domain.Person]{
		rows:    rows,
		nextID:  100,
		withID:  func(p domain.Person, id string) domain.Person { p.ID = id; return p },
		classOf: func(p domain.Person) string { return p.ClassName },
	}
}

func (c *fakeClient[T]) Get(_ context.Context, query string) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	class, ok := strings.CutPrefix(query, "?className=")
	if !ok || c.classOf == nil {
		return append([]T(nil), c.rows...), nil
	}
	class, _ = url.QueryUnescape(class)
	var out []T
	for _, r := range c.rows {
		if c.classOf(r) == class {
			out = append(out, r)
		}
	}
	return out, nil
}

func (c *fakeClient[T]) GetDetail(_ context.Context, id string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.rows {
		if r.EntityID() == id {
			return r, nil
		}
	}
	var zero T
	return zero, domain.ErrNotFound
}

func (c *fakeClient[T]) Post(_ context.Context, data T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posted = append(c.posted, data)
	if c.postErr != nil {
		var zero T
		return zero, c.postErr
	}
	c.nextID++
	created := c.withID(data, strconv.Itoa(c.nextID))
	c.rows = append(c.rows, created)
	return created, nil
}

func (c *fakeClient[T]) Put(_ context.Context, id string, data T) (T, error) {
	if c.beforePut != nil {
		c.beforePut()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.putErr != nil {
		var zero T
		return zero, c.putErr
	}
	for i, r := range c.rows {
		if r.EntityID() == id {
			c.rows[i] = c.withID(data, id)
		}
	}
	return c.withID(data, id), nil
}

func (c *fakeClient[T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, id)
	if c.deleteErr != nil {
		return c.deleteErr
	}
	kept := c.rows[:0]
	for _, r := range c.rows {
		if r.EntityID() != id {
			kept = append(kept, r)
		}
	}
	c.rows = kept
	return nil
}

func (c *fakeClient[T]) getCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gets
}

func ids[T domain.Entity](rows []T) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.EntityID()
	}
	return out
}
