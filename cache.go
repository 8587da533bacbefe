package mpath

import (
	"container/list"
)

// PathCaching memoizes successful searches for a Pathfinder.
//
// Implementations must not hand out a result they still own: CachePath keeps
// its own copy and CachedPath returns one the caller may Close.
type PathCaching interface {
	CachedPath(agent Agent, from, to Coordinate) (*PathResult, bool, error)
	CachePath(agent Agent, from, to Coordinate, result *PathResult) error
	ClearCache() error
	Close() error
}

type cacheKey struct {
	agentSize int
	from      Coordinate
	to        Coordinate
}

type cacheEntry struct {
	key    cacheKey
	result *PathResult
}

// CacheStats are lifetime counters of a PathCache.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// CacheOption configures a PathCache.
type CacheOption func(*PathCache)

// WithCacheCapacity bounds the cache to n entries, evicting the least
// recently used one. n <= 0 means unbounded.
func WithCacheCapacity(n int) CacheOption {
	return func(c *PathCache) { c.capacity = n }
}

// PathCache is the default PathCaching implementation, keyed by agent size
// and both endpoints. It is owned by one Pathfinder and, like it, is not
// safe for concurrent use.
type PathCache struct {
	capacity int
	items    map[cacheKey]*list.Element
	order    *list.List // front is most recent
	stats    CacheStats
	closed   bool
}

// NewPathCache creates an empty cache.
func NewPathCache(options ...CacheOption) *PathCache {
	c := &PathCache{
		items: make(map[cacheKey]*list.Element),
		order: list.New(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// CachedPath returns a clone of the stored result for the key, if any.
func (c *PathCache) CachedPath(agent Agent, from, to Coordinate) (*PathResult, bool, error) {
	if c.closed {
		return nil, false, ErrCacheClosed
	}
	if agent == nil {
		return nil, false, ErrNilAgent
	}

	elem, ok := c.items[cacheKey{agentSize: agent.Size(), from: from, to: to}]
	if !ok {
		c.stats.Misses++
		return nil, false, nil
	}

	c.stats.Hits++
	c.order.MoveToFront(elem)
	result, err := elem.Value.(*cacheEntry).result.Clone()
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// CachePath stores a clone of a successful result, replacing and releasing
// any earlier entry for the key. Failed results are ignored. The caller keeps
// ownership of result.
func (c *PathCache) CachePath(agent Agent, from, to Coordinate, result *PathResult) error {
	if c.closed {
		return ErrCacheClosed
	}
	if agent == nil {
		return ErrNilAgent
	}
	if result == nil || !result.IsSuccess() {
		return nil
	}

	stored, err := result.Clone()
	if err != nil {
		return err
	}

	key := cacheKey{agentSize: agent.Size(), from: from, to: to}
	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*cacheEntry)
		_ = entry.result.Close()
		entry.result = stored
		c.order.MoveToFront(elem)
		return nil
	}

	if c.capacity > 0 && c.order.Len() >= c.capacity {
		c.evictOldest()
	}
	c.items[key] = c.order.PushFront(&cacheEntry{key: key, result: stored})
	return nil
}

// ClearCache releases every entry. Stats are kept.
func (c *PathCache) ClearCache() error {
	if c.closed {
		return ErrCacheClosed
	}
	c.releaseAll()
	return nil
}

// Close releases every entry. Any later call other than Close fails with
// ErrCacheClosed.
func (c *PathCache) Close() error {
	if c.closed {
		return nil
	}
	c.releaseAll()
	c.closed = true
	return nil
}

// Len returns the number of cached paths.
func (c *PathCache) Len() int { return c.order.Len() }

// Stats returns the lifetime hit, miss and eviction counts.
func (c *PathCache) Stats() CacheStats { return c.stats }

func (c *PathCache) evictOldest() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	entry := c.order.Remove(elem).(*cacheEntry)
	delete(c.items, entry.key)
	_ = entry.result.Close()
	c.stats.Evictions++
}

func (c *PathCache) releaseAll() {
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		_ = elem.Value.(*cacheEntry).result.Close()
	}
	clear(c.items)
	c.order.Init()
}
