package redis

import (
	"context"
	"fmt"
	"strings"

	red "github.com/redis/go-redis/v9"

	"github.com/grocify/account-guard/internal/core/port"
)

const defaultBreachKey = "breached_digests"

// BreachSetRepository answers membership queries against the corpus of
// breached credential digests, stored as a Redis set. The corpus is loaded
// out of band; this repository only reads it, plus a seeding helper.
type BreachSetRepository struct {
	client *red.Client
	key    string
}

// NewBreachSetRepository constructs a repository reading the provided set key.
func NewBreachSetRepository(client *red.Client, key string) *BreachSetRepository {
	key = strings.TrimSpace(key)
	if key == "" {
		key = defaultBreachKey
	}

	return &BreachSetRepository{client: client, key: key}
}

// Contains reports whether the digest appears in the breach corpus.
func (r *BreachSetRepository) Contains(ctx context.Context, digest string) (bool, error) {
	member, err := r.client.SIsMember(ctx, r.key, digest).Result()
	if err != nil {
		return false, fmt.Errorf("redis sismember breach: %w", err)
	}

	return member, nil
}

// Add inserts digests into the corpus, used by seeding tooling and tests.
func (r *BreachSetRepository) Add(ctx context.Context, digests ...string) error {
	if len(digests) == 0 {
		return nil
	}

	members := make([]any, len(digests))
	for i, d := range digests {
		members[i] = d
	}

	if err := r.client.SAdd(ctx, r.key, members...).Err(); err != nil {
		return fmt.Errorf("redis sadd breach: %w", err)
	}

	return nil
}

var _ port.BreachedHashSource = (*BreachSetRepository)(nil)
