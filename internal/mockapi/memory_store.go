package mockapi

import (
	"context"
	"strconv"
	"sync"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/ports"
)

// MemoryStore keeps resources in process memory. Ids are sequential per
// resource, starting at "1", and List preserves insertion order.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]ports.Record
	seq  map[string]int
}

var _ ports.ResourceStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]ports.Record),
		seq:  make(map[string]int),
	}
}

func (s *MemoryStore) List(_ context.Context, resource string, filter ports.ResourceFilter) ([]ports.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ports.Record, 0, len(s.data[resource]))
	for _, rec := range s.data[resource] {
		if filter.Match(rec) {
			out = append(out, clone(rec))
		}
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, resource, id string) (ports.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(resource, id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	return clone(s.data[resource][i]), nil
}

func (s *MemoryStore) Create(_ context.Context, resource string, rec ports.Record) (ports.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq[resource]++
	stored := clone(rec)
	stored["id"] = strconv.Itoa(s.seq[resource])
	s.data[resource] = append(s.data[resource], stored)
	return clone(stored), nil
}

func (s *MemoryStore) Replace(_ context.Context, resource, id string, rec ports.Record) (ports.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(resource, id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	stored := clone(rec)
	stored["id"] = id
	s.data[resource][i] = stored
	return clone(stored), nil
}

func (s *MemoryStore) Delete(_ context.Context, resource, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(resource, id)
	if i < 0 {
		return domain.ErrNotFound
	}
	rows := s.data[resource]
	s.data[resource] = append(rows[:i:i], rows[i+1:]...)
	return nil
}

// indexOf must be called with mu held.
func (s *MemoryStore) indexOf(resource, id string) int {
	for i, rec := range s.data[resource] {
		if rec["id"] == id {
			return i
		}
	}
	return -1
}

func clone(rec ports.Record) ports.Record {
	out := make(ports.Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
