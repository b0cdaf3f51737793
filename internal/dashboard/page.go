package dashboard

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/ports"
	"github.com/schoolhub/admin-dashboard/internal/core/service"
	"github.com/schoolhub/admin-dashboard/internal/core/validate"
	"github.com/schoolhub/admin-dashboard/internal/infrastructure/queue"
	"github.com/schoolhub/admin-dashboard/pkg/debounce"
)

// Mutator runs tasks sharing a key one after another. *queue.Dispatcher
// satisfies it.
type Mutator interface {
	Do(ctx context.Context, key string, task queue.Task) error
}

type PageConfig struct {
	// ActionDelay postpones every mutation so the spinner is visible.
	ActionDelay time.Duration
	// Generations defaults to an in-memory store.
	Generations ports.Generations
	// Mutator defaults to running tasks inline.
	Mutator Mutator
	Log     zerolog.Logger
}

// Page wires one entity service to one list controller and reconciles the
// service cache after each mutation.
type Page[T domain.Entity] struct {
	svc   ports.EntityService[T]
	ctl   *ListController[T]
	gens  ports.Generations
	mut   Mutator
	delay time.Duration
	log   zerolog.Logger

	related ports.EntityService[T]
}

func NewPage[T domain.Entity](svc ports.EntityService[T], ctl *ListController[T], cfg PageConfig) *Page[T] {
	p := &Page[T]{
		svc:   svc,
		ctl:   ctl,
		gens:  cfg.Generations,
		mut:   cfg.Mutator,
		delay: cfg.ActionDelay,
		log:   cfg.Log.With().Str("page", svc.Name()).Logger(),
	}
	if p.gens == nil {
		p.gens = service.NewMemoryGenerations()
	}
	ctl.Bind(Handlers[T]{
		Add:       p.handleAdd,
		Edit:      p.handleEdit,
		Delete:    p.handleDelete,
		GetDetail: p.handleGetDetail,
		Detail:    p.handleDetail,
		Search:    p.handleSearch,
		Filter:    p.handleFilter,
		Reload:    p.Init,
	})
	return p
}

func (p *Page[T]) Controller() *ListController[T] { return p.ctl }

func (p *Page[T]) Service() ports.EntityService[T] { return p.svc }

// SetRelated installs the service that answers the class lookup of the
// detail panel. It must not share its cache with the page's service, so the
// lookup leaves the list alone. Call before serving.
func (p *Page[T]) SetRelated(svc ports.EntityService[T]) { p.related = svc }

// Init loads the full list and displays it.
func (p *Page[T]) Init(ctx context.Context) error {
	p.ctl.Loading(true)
	defer p.ctl.Loading(false)

	rows, err := p.svc.FetchData(ctx, "")
	if err != nil {
		p.ctl.ShowEmpty(EmptyNoData)
		p.ctl.Toast(ToastError, MsgLoadFailed)
		return err
	}
	p.ctl.DisplayList(rows)
	return nil
}

// handleSearch filters the cached rows. The cache is loaded first when a
// keyword is given and the cache is empty or its last load failed.
func (p *Page[T]) handleSearch(ctx context.Context, raw string) error {
	keyword := strings.ToLower(strings.TrimSpace(raw))
	cache := p.svc.Cache()

	if keyword != "" && (len(cache.Data()) == 0 || cache.Err() != nil) {
		p.ctl.Loading(true)
		_, err := p.svc.FetchData(ctx, "")
		p.ctl.Loading(false)
		if err != nil {
			p.log.Warn().Err(err).Msg("search reload failed")
		}
	}

	keyword = validate.NormalizeKeyword(keyword)
	match := p.ctl.Schema().Matches
	var found []T
	for _, row := range cache.Data() {
		if match(row, keyword) {
			found = append(found, row)
		}
	}

	if len(found) == 0 {
		p.ctl.ShowEmpty(EmptyNoResults)
		return nil
	}
	p.ctl.DisplayList(found)
	return nil
}

func (p *Page[T]) handleFilter(ctx context.Context, className string) error {
	if className == "" {
		return p.Init(ctx)
	}

	p.ctl.Loading(true)
	defer p.ctl.Loading(false)

	rows, err := p.svc.FilterByClass(ctx, className)
	if err != nil || len(rows) == 0 {
		p.ctl.ShowEmpty(EmptyNoFilterMatch)
		return err
	}
	p.ctl.DisplayList(rows)
	return nil
}

func (p *Page[T]) handleAdd(ctx context.Context, item T) error {
	return p.mutate(ctx, p.key("+"), func(ctx context.Context) error {
		created, err := p.svc.Add(ctx, item)
		if err != nil {
			return err
		}
		p.svc.Cache().Append(created)
		p.ctl.DisplayList(p.svc.Cache().Data())
		return nil
	})
}

func (p *Page[T]) handleEdit(ctx context.Context, id string, item T) error {
	key := p.key(id)
	token, err := p.gens.Next(ctx, key)
	if err != nil {
		return err
	}
	return p.mutate(ctx, key, func(ctx context.Context) error {
		updated, err := p.svc.Edit(ctx, id, item)
		if err != nil {
			return err
		}
		if p.stale(ctx, key, token) {
			return domain.ErrStaleResponse
		}
		if updated.EntityID() == "" {
			updated = item
		}
		p.svc.Cache().Assign(id, updated)
		p.ctl.DisplayList(p.svc.Cache().Data())
		return nil
	})
}

func (p *Page[T]) handleDelete(ctx context.Context, id string) error {
	key := p.key(id)
	token, err := p.gens.Next(ctx, key)
	if err != nil {
		return err
	}
	return p.mutate(ctx, key, func(ctx context.Context) error {
		if err := p.svc.Delete(ctx, id); err != nil {
			return err
		}
		if p.stale(ctx, key, token) {
			return domain.ErrStaleResponse
		}
		p.svc.Cache().Remove(id)
		p.ctl.DisplayList(p.svc.Cache().Data())
		return nil
	})
}

func (p *Page[T]) handleGetDetail(ctx context.Context, id string) error {
	item, err := p.svc.GetDetail(ctx, id)
	if err != nil {
		p.ctl.Toast(ToastError, MsgLoadFailed)
		return err
	}
	p.ctl.OpenEdit(item)
	return nil
}

// handleDetail loads id for the detail panel.
func (p *Page[T]) handleDetail(ctx context.Context, id string) error {
	p.ctl.Loading(true)
	defer p.ctl.Loading(false)

	item, err := p.svc.GetDetail(ctx, id)
	if err != nil {
		p.ctl.Toast(ToastError, MsgLoadFailed)
		return err
	}
	p.showDetail(ctx, item)
	return nil
}

// showDetail opens the panel on item with the rows of its class. A failed
// class lookup still shows the item.
func (p *Page[T]) showDetail(ctx context.Context, item T) {
	var related []T
	if class := p.ctl.Schema().Get(item, "className"); p.related != nil && class != "" {
		rows, err := p.related.FilterByClass(ctx, class)
		if err != nil {
			p.log.Warn().Err(err).Str("className", class).Msg("class lookup failed")
		}
		related = rows
	}
	p.ctl.ShowDetail(item, related)
}

// mutate runs task after the configured delay, serialised per key.
func (p *Page[T]) mutate(ctx context.Context, key string, task queue.Task) error {
	delayed := func(ctx context.Context) error {
		return debounce.Delay(ctx, p.delay, task)
	}
	if p.mut == nil {
		return delayed(ctx)
	}
	return p.mut.Do(ctx, key, delayed)
}

// stale reports whether a newer mutation of key was issued after token.
func (p *Page[T]) stale(ctx context.Context, key string, token uint64) bool {
	cur, err := p.gens.Current(ctx, key)
	if err != nil {
		p.log.Warn().Err(err).Str("key", key).Msg("generation check failed")
		return false
	}
	return cur != token
}

func (p *Page[T]) key(id string) string {
	return p.svc.Name() + ":" + id
}

// IsStale reports whether err only means the response was superseded.
func IsStale(err error) bool {
	return errors.Is(err, domain.ErrStaleResponse)
}
