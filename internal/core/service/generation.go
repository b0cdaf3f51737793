package service

import (
	"context"
	"sync"

	"github.com/schoolhub/admin-dashboard/internal/core/ports"
)

// MemoryGenerations keeps generation counters in process memory.
type MemoryGenerations struct {
	mu   sync.Mutex
	gens map[string]uint64
}

var _ ports.Generations = (*MemoryGenerations)(nil)

func NewMemoryGenerations() *MemoryGenerations {
	return &MemoryGenerations{gens: make(map[string]uint64)}
}

func (g *MemoryGenerations) Next(_ context.Context, key string) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gens[key]++
	return g.gens[key], nil
}

func (g *MemoryGenerations) Current(_ context.Context, key string) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gens[key], nil
}
