package ports

import (
	"context"
	"fmt"
	"strings"
)

// Record is one stored document of the mock REST API. The "id" key is
// assigned by the store.
type Record map[string]any

// ResourceFilter narrows a List call. Search matches any string field
// case-insensitively; Fields must match exactly.
type ResourceFilter struct {
	Search string
	Fields map[string]string
}

// ResourceStore persists mock API resources.
type ResourceStore interface {
	List(ctx context.Context, resource string, filter ResourceFilter) ([]Record, error)
	Get(ctx context.Context, resource, id string) (Record, error)
	Create(ctx context.Context, resource string, rec Record) (Record, error)
	Replace(ctx context.Context, resource, id string, rec Record) (Record, error)
	Delete(ctx context.Context, resource, id string) error
}

// Match reports whether rec passes the filter.
func (f ResourceFilter) Match(rec Record) bool {
	for k, want := range f.Fields {
		v, ok := rec[k]
		if !ok || fmt.Sprint(v) != want {
			return false
		}
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	for _, v := range rec {
		s, ok := v.(string)
		if ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}
