package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	red "github.com/redis/go-redis/v9"

	"github.com/grocify/account-guard/internal/repository"
)

func newTestRedis(t *testing.T) (*red.Client, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := red.NewClient(&red.Options{Addr: server.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		server.Close()
	})

	return client, server
}

func TestLockRepository_RecordFailureIncrementsWithinWindow(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewLockRepository(client, "lock")

	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	window := 15 * time.Minute

	lock, err := repo.RecordFailure(ctx, "ip:203.0.113.7", base, window)
	if err != nil {
		t.Fatalf("RecordFailure returned error: %v", err)
	}
	if lock.FailureCount != 1 {
		t.Fatalf("expected failure count 1, got %d", lock.FailureCount)
	}

	lock, err = repo.RecordFailure(ctx, "ip:203.0.113.7", base.Add(5*time.Minute), window)
	if err != nil {
		t.Fatalf("RecordFailure returned error: %v", err)
	}
	if lock.FailureCount != 2 {
		t.Fatalf("expected failure count 2, got %d", lock.FailureCount)
	}
	if lock.LastFailureUnix != base.Add(5*time.Minute).Unix() {
		t.Fatalf("expected last failure to advance, got %d", lock.LastFailureUnix)
	}
}

func TestLockRepository_RecordFailureRestartsAfterWindow(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewLockRepository(client, "lock")

	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	window := 15 * time.Minute

	for i := 0; i < 3; i++ {
		if _, err := repo.RecordFailure(ctx, "login:alice", base, window); err != nil {
			t.Fatalf("RecordFailure returned error: %v", err)
		}
	}

	lock, err := repo.RecordFailure(ctx, "login:alice", base.Add(window+time.Second), window)
	if err != nil {
		t.Fatalf("RecordFailure returned error: %v", err)
	}
	if lock.FailureCount != 1 {
		t.Fatalf("expected stale record to restart at 1, got %d", lock.FailureCount)
	}
}

func TestLockRepository_IdentitiesAreIndependent(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewLockRepository(client, "lock")

	ctx := context.Background()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if _, err := repo.RecordFailure(ctx, "login:alice", at, time.Hour); err != nil {
		t.Fatalf("RecordFailure returned error: %v", err)
	}
	if _, err := repo.RecordFailure(ctx, "login:bob", at, time.Hour); err != nil {
		t.Fatalf("RecordFailure returned error: %v", err)
	}

	lock, err := repo.Get(ctx, "login:bob")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if lock.FailureCount != 1 {
		t.Fatalf("expected bob to have 1 failure, got %d", lock.FailureCount)
	}
}

func TestLockRepository_GetMiss(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewLockRepository(client, "lock")

	if _, err := repo.Get(context.Background(), "login:ghost"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLockRepository_Delete(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewLockRepository(client, "lock")

	ctx := context.Background()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if _, err := repo.RecordFailure(ctx, "login:alice", at, time.Hour); err != nil {
		t.Fatalf("RecordFailure returned error: %v", err)
	}

	if err := repo.Delete(ctx, "login:alice"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := repo.Get(ctx, "login:alice"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := repo.Delete(ctx, "login:alice"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestBreachSetRepository_Contains(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewBreachSetRepository(client, "breached")

	ctx := context.Background()

	if err := repo.Add(ctx, "AF3C4E8D"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	found, err := repo.Contains(ctx, "AF3C4E8D")
	if err != nil {
		t.Fatalf("Contains returned error: %v", err)
	}
	if !found {
		t.Fatalf("expected digest to be a member")
	}

	found, err = repo.Contains(ctx, "00000000")
	if err != nil {
		t.Fatalf("Contains returned error: %v", err)
	}
	if found {
		t.Fatalf("expected digest to be absent")
	}
}
