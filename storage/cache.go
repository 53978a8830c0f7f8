package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"todo-api/domain"
)

type backend interface {
	Create(userID, title string) domain.Todo
	Find(id, userID string) (domain.Todo, bool)
	List(userID string, q domain.ListQuery) []domain.Todo
	Update(id, userID, title string, order *int) (domain.Todo, error)
	Toggle(id, userID string) (domain.Todo, bool)
	Delete(id, userID string) (domain.Todo, bool)
	DeleteWhere(userID string, filter domain.StatusFilter)
	Reorder(userID string, moves []domain.ReorderItem) error
	Stats(userID string) domain.Stats
}

// Cache wraps the todo engine with Redis-backed caching for the default
// listing and the stats counters. Every mutation for a user evicts that
// user's entries; Redis failures silently fall back to the engine so the
// cache can never fail a request.
type Cache struct {
	base  backend
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a caching wrapper using the provided Redis client and TTL.
func NewCache(base backend, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base engine is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{base: base, redis: client, ttl: ttl}
}

func (c *Cache) Create(userID, title string) domain.Todo {
	item := c.base.Create(userID, title)
	c.evict(userID)
	return item
}

func (c *Cache) Find(id, userID string) (domain.Todo, bool) {
	return c.base.Find(id, userID)
}

func (c *Cache) List(userID string, q domain.ListQuery) []domain.Todo {
	if !defaultListing(q) {
		return c.base.List(userID, q)
	}
	if items, ok := c.loadListFromCache(userID); ok {
		return items
	}
	items := c.base.List(userID, q)
	c.storeList(userID, items)
	return items
}

func (c *Cache) Update(id, userID, title string, order *int) (domain.Todo, error) {
	item, err := c.base.Update(id, userID, title, order)
	if err != nil {
		return item, err
	}
	c.evict(userID)
	return item, nil
}

func (c *Cache) Toggle(id, userID string) (domain.Todo, bool) {
	item, ok := c.base.Toggle(id, userID)
	if ok {
		c.evict(userID)
	}
	return item, ok
}

func (c *Cache) Delete(id, userID string) (domain.Todo, bool) {
	item, ok := c.base.Delete(id, userID)
	if ok {
		c.evict(userID)
	}
	return item, ok
}

func (c *Cache) DeleteWhere(userID string, filter domain.StatusFilter) {
	c.base.DeleteWhere(userID, filter)
	c.evict(userID)
}

func (c *Cache) Reorder(userID string, moves []domain.ReorderItem) error {
	if err := c.base.Reorder(userID, moves); err != nil {
		return err
	}
	c.evict(userID)
	return nil
}

func (c *Cache) Stats(userID string) domain.Stats {
	if st, ok := c.loadStatsFromCache(userID); ok {
		return st
	}
	st := c.base.Stats(userID)
	c.storeStats(userID, st)
	return st
}

// defaultListing reports whether the query is the plain unfiltered listing,
// the only shape worth caching: search text and non-default selectors are
// too high-cardinality for fixed keys.
func defaultListing(q domain.ListQuery) bool {
	q = q.Normalize()
	return q.Search == "" &&
		q.Filter == domain.FilterAll &&
		q.SortBy == domain.SortByOrder &&
		q.Direction == domain.SortAsc
}

func (c *Cache) loadListFromCache(userID string) ([]domain.Todo, bool) {
	if c.redis == nil {
		return nil, false
	}
	ctx := context.Background()
	data, err := c.redis.Get(ctx, listCacheKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			_ = c.redis.Del(ctx, listCacheKey(userID)).Err()
		}
		return nil, false
	}
	var items []domain.Todo
	if err := json.Unmarshal(data, &items); err != nil {
		_ = c.redis.Del(ctx, listCacheKey(userID)).Err()
		return nil, false
	}
	return items, true
}

func (c *Cache) loadStatsFromCache(userID string) (domain.Stats, bool) {
	if c.redis == nil {
		return domain.Stats{}, false
	}
	ctx := context.Background()
	data, err := c.redis.Get(ctx, statsCacheKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			_ = c.redis.Del(ctx, statsCacheKey(userID)).Err()
		}
		return domain.Stats{}, false
	}
	var st domain.Stats
	if err := json.Unmarshal(data, &st); err != nil {
		_ = c.redis.Del(ctx, statsCacheKey(userID)).Err()
		return domain.Stats{}, false
	}
	return st, true
}

func (c *Cache) storeList(userID string, items []domain.Todo) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = c.redis.Set(context.Background(), listCacheKey(userID), data, c.ttl).Err()
}

func (c *Cache) storeStats(userID string, st domain.Stats) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(st)
	if err != nil {
		return
	}
	_ = c.redis.Set(context.Background(), statsCacheKey(userID), data, c.ttl).Err()
}

func (c *Cache) evict(userID string) {
	if c.redis == nil {
		return
	}
	_, _ = c.redis.Del(context.Background(), listCacheKey(userID), statsCacheKey(userID)).Result()
}

func listCacheKey(userID string) string {
	return "todos:" + userID
}

func statsCacheKey(userID string) string {
	return "stats:" + userID
}
