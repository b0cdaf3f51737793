package ports

import "context"

// Cache is the in-memory copy of a collection the dashboard renders from.
type Cache[T any] interface {
	Data() []T
	Replace(items []T)
	Append(item T)
	// Assign overwrites the entry with the given id. It reports false when
	// no entry matches.
	Assign(id string, item T) bool
	Remove(id string) bool
	Err() error
}

// EntityService is the CRUD surface shared by the ads, teacher and student
// services. Fetch-style methods replace the cache and return the new rows.
type EntityService[T any] interface {
	Name() string
	Cache() Cache[T]

	FetchData(ctx context.Context, query string) ([]T, error)
	Search(ctx context.Context, keyword string) ([]T, error)
	// FilterByClass returns domain.ErrNotFilterable for collections without
	// a class field.
	FilterByClass(ctx context.Context, className string) ([]T, error)

	Add(ctx context.Context, item T) (T, error)
	Edit(ctx context.Context, id string, item T) (T, error)
	Delete(ctx context.Context, id string) error
	GetDetail(ctx context.Context, id string) (T, error)
}

// Generations hands out monotonically increasing tokens per key. A mutation
// response is applied only while its token is still the current one.
type Generations interface {
	Next(ctx context.Context, key string) (uint64, error)
	Current(ctx context.Context, key string) (uint64, error)
}
