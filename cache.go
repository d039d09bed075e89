package filesniff

import (
	"bytes"
	"container/list"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ============================================================================
// Cache Interface
// ============================================================================

// Cache stores classification results keyed by header content.
//
// Implementations should be thread-safe.
type Cache interface {
	// Get returns the result stored for header.
	Get(header []byte) (*Result, bool)

	// Set stores result for header.
	Set(header []byte, result *Result)

	// Clear removes all entries.
	Clear()
}

// CacheStats provides statistics about cache usage.
// Implementations may optionally support this interface.
type CacheStats interface {
	// Stats returns cache statistics.
	Stats() CacheStatistics
}

// CacheStatistics contains cache performance metrics.
type CacheStatistics struct {
	Hits      int64
	Misses    int64
	Size      int64
	Evictions int64
	HitRate   float64
}

// ============================================================================
// In-Memory Cache Implementation
// ============================================================================

const defaultCacheMaxEntries = 1024

// cacheEntry represents a single cache entry with expiration.
type cacheEntry struct {
	key        uint64
	header     []byte
	result     *Result
	expiration time.Time
	hasExpiry  bool
}

// MemoryCache is an in-memory LRU cache keyed by the xxhash of the header.
// The header itself is kept alongside the result, so two headers with the
// same hash never share an entry.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[uint64]*list.Element
	lru        *list.List
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	hits      int64
	misses    int64
	evictions int64
}

// CacheOption configures a MemoryCache.
type CacheOption func(*MemoryCache)

// WithCacheTTL sets how long entries live. Zero means no expiry.
func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(c *MemoryCache) {
		c.ttl = ttl
	}
}

// WithCacheMaxEntries bounds the number of entries. The least recently used
// entry is evicted first. Values below one select the default.
func WithCacheMaxEntries(n int) CacheOption {
	return func(c *MemoryCache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// NewMemoryCache creates a new in-memory cache.
func NewMemoryCache(opts ...CacheOption) *MemoryCache {
	c := &MemoryCache{
		entries:    make(map[uint64]*list.Element),
		lru:        list.New(),
		maxEntries: defaultCacheMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves the result stored for header.
func (c *MemoryCache) Get(header []byte) (*Result, bool) {
	key := xxhash.Sum64(header)

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.entries[key]
	if !exists {
		c.misses++
		return nil, false
	}

	entry := elem.Value.(*cacheEntry)
	if !bytes.Equal(entry.header, header) {
		c.misses++
		return nil, false
	}

	// Check expiration
	if entry.hasExpiry && c.now().After(entry.expiration) {
		c.removeElement(elem)
		c.misses++
		return nil, false
	}

	c.lru.MoveToFront(elem)
	c.hits++
	return entry.result, true
}

// Set stores result for header, replacing any entry with the same key.
func (c *MemoryCache) Set(header []byte, result *Result) {
	key := xxhash.Sum64(header)

	entry := &cacheEntry{
		key:    key,
		header: append([]byte(nil), header...),
		result: result,
	}
	if c.ttl > 0 {
		entry.expiration = c.now().Add(c.ttl)
		entry.hasExpiry = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.entries[key]; exists {
		elem.Value = entry
		c.lru.MoveToFront(elem)
		return
	}

	c.entries[key] = c.lru.PushFront(entry)
	for c.lru.Len() > c.maxEntries {
		c.removeElement(c.lru.Back())
		c.evictions++
	}
}

// Clear removes all values from the cache.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]*list.Element)
	c.lru.Init()
}

// Len returns the number of entries, including expired ones not yet
// removed.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns cache statistics.
func (c *MemoryCache) Stats() CacheStatistics {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	return CacheStatistics{
		Hits:      c.hits,
		Misses:    c.misses,
		Size:      int64(c.lru.Len()),
		Evictions: c.evictions,
		HitRate:   hitRate,
	}
}

// Cleanup removes expired entries from the cache.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for elem := c.lru.Front(); elem != nil; {
		next := elem.Next()
		entry := elem.Value.(*cacheEntry)
		if entry.hasExpiry && now.After(entry.expiration) {
			c.removeElement(elem)
		}
		elem = next
	}
}

func (c *MemoryCache) removeElement(elem *list.Element) {
	entry := c.lru.Remove(elem).(*cacheEntry)
	delete(c.entries, entry.key)
}

// Ensure MemoryCache implements Cache and CacheStats
var (
	_ Cache      = (*MemoryCache)(nil)
	_ CacheStats = (*MemoryCache)(nil)
)
