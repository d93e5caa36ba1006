package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	red "github.com/redis/go-redis/v9"

	"github.com/grocify/account-guard/internal/core/domain"
	"github.com/grocify/account-guard/internal/core/port"
	"github.com/grocify/account-guard/internal/repository"
)

const (
	defaultLockPrefix = "lock"

	fieldFailureCount = "failure_count"
	fieldLastFailure  = "last_failure"

	// recordFailureRetries bounds optimistic retries when concurrent writers
	// race on the same identity.
	recordFailureRetries = 5
)

// LockRepository persists per-identity failure records in Redis hashes.
type LockRepository struct {
	client *red.Client
	prefix string
}

// NewLockRepository constructs a repository with the provided Redis client and key prefix.
func NewLockRepository(client *red.Client, keyPrefix string) *LockRepository {
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultLockPrefix
	}

	return &LockRepository{client: client, prefix: prefix}
}

// Get retrieves the failure record for an identity.
func (r *LockRepository) Get(ctx context.Context, identity string) (*domain.IdentityLock, error) {
	values, err := r.client.HGetAll(ctx, r.key(identity)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall lock: %w", err)
	}
	if len(values) == 0 {
		return nil, repository.ErrNotFound
	}

	lock, err := parseLock(values)
	if err != nil {
		return nil, err
	}

	return &lock, nil
}

// RecordFailure applies one failure to the identity's record atomically: a
// record whose previous failure is older than resetWindow restarts at 1,
// otherwise the count increments. The returned record is the stored state.
// Concurrent writers on the same identity are serialized with WATCH; writers
// on different identities never contend.
func (r *LockRepository) RecordFailure(ctx context.Context, identity string, at time.Time, resetWindow time.Duration) (domain.IdentityLock, error) {
	key := r.key(identity)

	var result domain.IdentityLock

	txn := func(tx *red.Tx) error {
		values, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("redis hgetall lock: %w", err)
		}

		next := domain.IdentityLock{FailureCount: 1, LastFailureUnix: at.Unix()}
		if len(values) > 0 {
			prev, err := parseLock(values)
			if err != nil {
				return err
			}
			if at.Unix()-prev.LastFailureUnix <= int64(resetWindow.Seconds()) {
				next.FailureCount = prev.FailureCount + 1
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe red.Pipeliner) error {
			pipe.HSet(ctx, key, map[string]any{
				fieldFailureCount: strconv.Itoa(next.FailureCount),
				fieldLastFailure:  strconv.FormatInt(next.LastFailureUnix, 10),
			})
			return nil
		})
		if err != nil {
			return err
		}

		result = next
		return nil
	}

	for i := 0; i < recordFailureRetries; i++ {
		err := r.client.Watch(ctx, txn, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, red.TxFailedErr) {
			continue
		}
		return domain.IdentityLock{}, fmt.Errorf("record failure: %w", err)
	}

	return domain.IdentityLock{}, fmt.Errorf("record failure for %q: too much contention", identity)
}

// Delete clears the failure record for an identity.
func (r *LockRepository) Delete(ctx context.Context, identity string) error {
	deleted, err := r.client.Del(ctx, r.key(identity)).Result()
	if err != nil {
		return fmt.Errorf("redis delete lock: %w", err)
	}
	if deleted == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *LockRepository) key(identity string) string {
	return fmt.Sprintf("%s:%s", r.prefix, identity)
}

func parseLock(values map[string]string) (domain.IdentityLock, error) {
	count, err := strconv.Atoi(values[fieldFailureCount])
	if err != nil {
		return domain.IdentityLock{}, fmt.Errorf("parse failure_count: %w", err)
	}

	last, err := strconv.ParseInt(values[fieldLastFailure], 10, 64)
	if err != nil {
		return domain.IdentityLock{}, fmt.Errorf("parse last_failure: %w", err)
	}

	return domain.IdentityLock{FailureCount: count, LastFailureUnix: last}, nil
}

var _ port.LockStore = (*LockRepository)(nil)
