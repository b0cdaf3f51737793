package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const generationTTL = 24 * time.Hour

// GenerationStore keeps per-entity mutation generations in Redis so several
// dashboard replicas agree on which response is the latest.
// Key format: gen:<collection>:<id>
type GenerationStore struct {
	client *redis.Client
}

func NewGenerationStore(client *redis.Client) *GenerationStore {
	return &GenerationStore{client: client}
}

// Next bumps and returns the generation for key.
func (g *GenerationStore) Next(ctx context.Context, key string) (uint64, error) {
	k := g.key(key)
	pipe := g.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, generationTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("generation next: %w", err)
	}
	return uint64(incr.Val()), nil
}

// Current returns the latest generation for key, 0 when none was issued.
func (g *GenerationStore) Current(ctx context.Context, key string) (uint64, error) {
	n, err := g.client.Get(ctx, g.key(key)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("generation current: %w", err)
	}
	return n, nil
}

func (g *GenerationStore) key(key string) string {
	return "gen:" + key
}
