package ports

import "context"

// ResourceClient talks to one REST resource of the remote API. Query is
// appended verbatim to the resource URL ("" or "?search=...").
type ResourceClient[T any] interface {
	Get(ctx context.Context, query string) ([]T, error)
	GetDetail(ctx context.Context, id string) (T, error)
	Post(ctx context.Context, data T) (T, error)
	Put(ctx context.Context, id string, data T) (T, error)
	Delete(ctx context.Context, id string) error
}
