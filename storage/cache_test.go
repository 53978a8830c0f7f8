package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"todo-api/domain"
	"todo-api/todo"
)

func newTestCache(t *testing.T) (*Cache, *todo.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := todo.NewStore()
	return NewCache(store, client, time.Minute), store, mr
}

func TestCacheServesDefaultListingFromRedis(t *testing.T) {
	cache, store, mr := newTestCache(t)
	store.Create("u1", "a")
	store.Create("u1", "b")

	first := cache.List("u1", domain.ListQuery{})
	if len(first) != 2 {
		t.Fatalf("expected 2 items, got %d", len(first))
	}
	if !mr.Exists("todos:u1") {
		t.Fatal("listing was not cached")
	}

	// Bypass the cache wrapper to mutate the engine; the stale cached copy
	// must keep being served until eviction.
	store.Create("u1", "c")
	stale := cache.List("u1", domain.ListQuery{})
	if len(stale) != 2 {
		t.Fatalf("expected cached listing of 2, got %d", len(stale))
	}
}

func TestCacheEvictsOnMutation(t *testing.T) {
	cache, _, mr := newTestCache(t)
	cache.Create("u1", "a")

	cache.List("u1", domain.ListQuery{})
	cache.Stats("u1")
	if !mr.Exists("todos:u1") || !mr.Exists("stats:u1") {
		t.Fatal("expected warm cache")
	}

	cache.Create("u1", "b")
	if mr.Exists("todos:u1") || mr.Exists("stats:u1") {
		t.Fatal("mutation did not evict cache entries")
	}

	items := cache.List("u1", domain.ListQuery{})
	if len(items) != 2 {
		t.Fatalf("expected fresh listing of 2, got %d", len(items))
	}
}

func TestCacheEvictionIsScopedPerUser(t *testing.T) {
	cache, _, mr := newTestCache(t)
	cache.Create("u1", "a")
	cache.Create("u2", "b")
	cache.List("u1", domain.ListQuery{})
	cache.List("u2", domain.ListQuery{})

	cache.Create("u1", "c")
	if mr.Exists("todos:u1") {
		t.Fatal("u1 cache should be evicted")
	}
	if !mr.Exists("todos:u2") {
		t.Fatal("u2 cache should survive u1's mutation")
	}
}

func TestCacheBypassesNonDefaultQueries(t *testing.T) {
	cache, _, mr := newTestCache(t)
	cache.Create("u1", "alpha")

	cache.List("u1", domain.ListQuery{Search: "alp"})
	cache.List("u1", domain.ListQuery{Filter: domain.FilterActive})
	cache.List("u1", domain.ListQuery{SortBy: domain.SortByTitle})
	if len(mr.Keys()) != 0 {
		t.Fatalf("non-default queries must not be cached, found keys %v", mr.Keys())
	}
}

func TestCacheStats(t *testing.T) {
	cache, _, mr := newTestCache(t)
	item := cache.Create("u1", "a")

	if got := cache.Stats("u1"); got.Active != 1 {
		t.Fatalf("expected 1 active, got %+v", got)
	}
	if !mr.Exists("stats:u1") {
		t.Fatal("stats were not cached")
	}

	if _, ok := cache.Toggle(item.ID, "u1"); !ok {
		t.Fatal("toggle failed")
	}
	if got := cache.Stats("u1"); got.Completed != 1 {
		t.Fatalf("stats stale after toggle: %+v", got)
	}
}

func TestCacheReorderEvicts(t *testing.T) {
	cache, _, mr := newTestCache(t)
	a := cache.Create("u1", "a")
	cache.List("u1", domain.ListQuery{})

	if err := cache.Reorder("u1", []domain.ReorderItem{{TodoID: a.ID, Order: 3}}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if mr.Exists("todos:u1") {
		t.Fatal("reorder did not evict the listing")
	}
}

func TestCacheFailedReorderKeepsCache(t *testing.T) {
	cache, _, mr := newTestCache(t)
	cache.Create("u1", "a")
	cache.List("u1", domain.ListQuery{})

	if err := cache.Reorder("u1", []domain.ReorderItem{{TodoID: "missing", Order: 3}}); err == nil {
		t.Fatal("expected reorder failure")
	}
	if !mr.Exists("todos:u1") {
		t.Fatal("failed reorder must not evict; nothing changed")
	}
}

func TestCacheSurvivesRedisOutage(t *testing.T) {
	cache, _, mr := newTestCache(t)
	cache.Create("u1", "a")
	mr.Close()

	items := cache.List("u1", domain.ListQuery{})
	if len(items) != 1 {
		t.Fatalf("expected engine fallback, got %d items", len(items))
	}
	if got := cache.Stats("u1"); got.Total != 1 {
		t.Fatalf("expected engine fallback stats, got %+v", got)
	}
}

func TestCacheCorruptEntryFallsBack(t *testing.T) {
	cache, _, mr := newTestCache(t)
	cache.Create("u1", "a")

	if err := mr.Set("todos:u1", "not json"); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}
	items := cache.List("u1", domain.ListQuery{})
	if len(items) != 1 {
		t.Fatalf("expected fallback listing, got %d items", len(items))
	}

	// The corrupt entry is dropped and replaced on the next read.
	data, err := redis.NewClient(&redis.Options{Addr: mr.Addr()}).Get(context.Background(), "todos:u1").Result()
	if err != nil {
		t.Fatalf("expected re-populated cache: %v", err)
	}
	if data == "not json" {
		t.Fatal("corrupt entry survived")
	}
}
