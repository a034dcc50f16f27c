package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (int, error) {
		calls.Add(1)
		return 7, nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiredEntryIsReloaded(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore[int](time.Second)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", 1)
	if v, ok := store.Get(context.Background(), "k"); !ok || v != 1 {
		t.Fatalf("expected cached value, got %d ok=%t", v, ok)
	}

	now = now.Add(2 * time.Second)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_DeleteDuringLoadSkipsCaching(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore[string](time.Minute)
	loading := make(chan struct{})
	release := make(chan struct{})

	done := make(chan string, 1)
	go func() {
		v, _ := store.GetOrLoad(ctx, "k", func(context.Context) (string, error) {
			close(loading)
			<-release
			return "stale", nil
		})
		done <- v
	}()

	<-loading
	store.Delete(ctx, "k")
	close(release)

	if got := <-done; got != "stale" {
		t.Fatalf("in-flight caller should still get its value, got %q", got)
	}
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("value loaded before invalidation must not be cached")
	}
}

func TestStore_DeletePrefixAndLoaderError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore[int](0)
	store.Set(ctx, "team:1", 1)
	store.Set(ctx, "team:2", 2)
	store.Set(ctx, "settings", 3)

	store.DeletePrefix(ctx, "team:")
	if _, ok := store.Get(ctx, "team:1"); ok {
		t.Fatalf("team:1 should be gone")
	}
	if v, ok := store.Get(ctx, "settings"); !ok || v != 3 {
		t.Fatalf("settings should stay cached")
	}

	boom := errors.New("boom")
	if _, err := store.GetOrLoad(ctx, "team:1", func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, ok := store.Get(ctx, "team:1"); ok {
		t.Fatalf("failed load must not be cached")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
