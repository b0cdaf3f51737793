package service

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/ports"
)

// entityService is the CRUD core shared by the ads and person services.
// Failures are logged under a fixed message and returned unchanged.
type entityService[T domain.Entity] struct {
	name   string
	client ports.ResourceClient[T]
	cache  *Collection[T]
	log    zerolog.Logger

	// outbound prepares a record right before POST or PUT.
	outbound func(T) T
	// inbound normalises records decoded from the API.
	inbound func(T) T

	filterable bool
}

func newEntityService[T domain.Entity](name string, client ports.ResourceClient[T], log zerolog.Logger) entityService[T] {
	identity := func(v T) T { return v }
	return entityService[T]{
		name:     name,
		client:   client,
		cache:    NewCollection[T](),
		log:      log.With().Str("service", name).Logger(),
		outbound: identity,
		inbound:  identity,
	}
}

func (s *entityService[T]) Name() string { return s.name }

func (s *entityService[T]) Cache() ports.Cache[T] { return s.cache }

// Collection exposes the concrete cache for callers that need Find or Detail.
func (s *entityService[T]) Collection() *Collection[T] { return s.cache }

// FetchData loads the collection and replaces the cache with the result.
// On failure the cache keeps its rows and records the error.
func (s *entityService[T]) FetchData(ctx context.Context, query string) ([]T, error) {
	rows, err := s.client.Get(ctx, query)
	if err != nil {
		s.cache.setErr(err)
		s.log.Error().Err(err).Str("query", query).Msgf("Failed to fetch %s!", s.name)
		return nil, err
	}
	for i := range rows {
		rows[i] = s.inbound(rows[i])
	}
	s.cache.Replace(rows)
	return rows, nil
}

// Search asks the API for rows matching keyword.
func (s *entityService[T]) Search(ctx context.Context, keyword string) ([]T, error) {
	return s.FetchData(ctx, "?search="+url.QueryEscape(keyword))
}

func (s *entityService[T]) FilterByClass(ctx context.Context, className string) ([]T, error) {
	if !s.filterable {
		return nil, domain.ErrNotFilterable
	}
	return s.FetchData(ctx, "?className="+url.QueryEscape(className))
}

// Add posts item. The caller decides whether to append the response to the cache.
func (s *entityService[T]) Add(ctx context.Context, item T) (T, error) {
	created, err := s.client.Post(ctx, s.outbound(item))
	if err != nil {
		s.log.Error().Err(err).Msgf("Failed to add %s!", s.name)
		return created, err
	}
	return s.inbound(created), nil
}

func (s *entityService[T]) Edit(ctx context.Context, id string, item T) (T, error) {
	updated, err := s.client.Put(ctx, id, s.outbound(item))
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msgf("Failed to edit %s!", s.name)
		return updated, err
	}
	return s.inbound(updated), nil
}

func (s *entityService[T]) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("id", id).Msgf("Failed to delete %s!", s.name)
		return err
	}
	return nil
}

// GetDetail loads one record and keeps it as the current detail.
func (s *entityService[T]) GetDetail(ctx context.Context, id string) (T, error) {
	v, err := s.client.GetDetail(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msgf("Failed to get %s detail!", s.name)
		return v, err
	}
	v = s.inbound(v)
	s.cache.setDetail(v)
	return v, nil
}
