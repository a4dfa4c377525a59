package cache

import (
	"container/list"
	"context"
	"sync"

	"codgate/internal/metrics"
	"codgate/internal/model"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=lru.go -destination=./mocks/cache_mock.go -package=mocks Cache

// Cache keeps resolved customer matches keyed by "shop|normalized-phone",
// so repeated autofill lookups skip the store entirely. It is a convenience
// cache: entries may be stale and are refreshed on directory upserts.
type Cache interface {
	Set(ctx context.Context, key string, match *model.CustomerMatch)
	Get(ctx context.Context, key string) (*model.CustomerMatch, bool)
	Invalidate(ctx context.Context, key string)
}

// lruCache is an LRU (Least Recently Used) implementation of Cache.
type lruCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	queue    *list.List
	tracer   trace.Tracer
}

type cacheItem struct {
	key   string
	match *model.CustomerMatch
}

// NewLRUCache creates an LRU cache with the given capacity.
func NewLRUCache(capacity int) Cache {
	return &lruCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		queue:    list.New(),
		tracer:   otel.Tracer("customer-cache"),
	}
}

func (c *lruCache) Set(ctx context.Context, key string, match *model.CustomerMatch) {
	_, span := c.tracer.Start(ctx, "Cache.Set")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capacity <= 0 {
		return
	}

	if element, exists := c.items[key]; exists {
		c.queue.MoveToFront(element)
		element.Value.(*cacheItem).match = match
		return
	}

	if c.queue.Len() >= c.capacity {
		c.removeOldest()
	}

	item := &cacheItem{key: key, match: match}
	element := c.queue.PushFront(item)
	c.items[key] = element

	metrics.CacheSize.Set(float64(c.queue.Len()))
}

func (c *lruCache) Get(ctx context.Context, key string) (*model.CustomerMatch, bool) {
	_, span := c.tracer.Start(ctx, "Cache.Get")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if element, exists := c.items[key]; exists {
		c.queue.MoveToFront(element)
		return element.Value.(*cacheItem).match, true
	}

	return nil, false
}

// Invalidate drops an entry so the next lookup re-reads the store. Called
// after a directory upsert changes the customer's data.
func (c *lruCache) Invalidate(ctx context.Context, key string) {
	_, span := c.tracer.Start(ctx, "Cache.Invalidate")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if element, exists := c.items[key]; exists {
		c.queue.Remove(element)
		delete(c.items, key)
		metrics.CacheSize.Set(float64(c.queue.Len()))
	}
}

// removeOldest evicts the least recently used entry (mutex already held).
func (c *lruCache) removeOldest() {
	element := c.queue.Back()
	if element != nil {
		item := c.queue.Remove(element).(*cacheItem)
		delete(c.items, item.key)

		metrics.CacheEvictions.Inc()
		metrics.CacheSize.Set(float64(c.queue.Len()))
	}
}
