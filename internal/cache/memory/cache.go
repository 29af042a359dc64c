package memory

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/kmullins/linkgen/internal/cache"
	"github.com/kmullins/linkgen/internal/domain"
)

// Cache implements cache.SyncableCache using in-memory storage
type Cache struct {
	data     map[string]*domain.CacheEntry
	mutex    sync.RWMutex
	stopChan chan struct{}
	running  bool
}

// New creates a new in-memory cache
func New() *Cache {
	return &Cache{
		data:     make(map[string]*domain.CacheEntry),
		stopChan: make(chan struct{}),
	}
}

// Get retrieves a cache entry by key
func (c *Cache) Get(ctx context.Context, key string) (*domain.CacheEntry, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.data[key]
	if !exists {
		return nil, false
	}

	return copyEntry(entry), true
}

// Set stores a cache entry
func (c *Cache) Set(ctx context.Context, key string, entry *domain.CacheEntry) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = copyEntry(entry)
	return nil
}

// Delete removes a cache entry
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// RecordHit increments the hit count for a key
func (c *Cache) RecordHit(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if entry, exists := c.data[key]; exists {
		entry.HitCount++
		entry.LastHitAt = time.Now()
		entry.Dirty = true
	}

	return nil
}

// GetDirtyEntries returns all cache entries that need to be synced to the database
func (c *Cache) GetDirtyEntries(ctx context.Context) (map[string]*domain.CacheEntry, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	dirty := make(map[string]*domain.CacheEntry)
	for key, entry := range c.data {
		if entry.Dirty {
			dirty[key] = copyEntry(entry)
		}
	}

	return dirty, nil
}

// MarkClean marks a cache entry as clean (synced to database)
func (c *Cache) MarkClean(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if entry, exists := c.data[key]; exists {
		entry.Dirty = false
	}

	return nil
}

// LoadData loads data into the cache from a map
func (c *Cache) LoadData(ctx context.Context, data map[string]*domain.CacheEntry) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]*domain.CacheEntry, len(data))
	for key, entry := range data {
		c.data[key] = copyEntry(entry)
	}

	return nil
}

// StartBackgroundSync starts background synchronization with the given interval
func (c *Cache) StartBackgroundSync(ctx context.Context, interval time.Duration, syncFunc func(map[string]*domain.CacheEntry) error) error {
	c.mutex.Lock()
	if c.running {
		c.mutex.Unlock()
		return nil // Already running
	}
	c.running = true
	c.mutex.Unlock()

	go c.backgroundSync(ctx, interval, syncFunc)
	return nil
}

// StopBackgroundSync stops background synchronization
func (c *Cache) StopBackgroundSync() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.running {
		return nil
	}

	c.running = false
	close(c.stopChan)

	// Create new channel for potential restart
	c.stopChan = make(chan struct{})
	return nil
}

// backgroundSync runs the background synchronization loop
func (c *Cache) backgroundSync(ctx context.Context, interval time.Duration, syncFunc func(map[string]*domain.CacheEntry) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.mutex.RLock()
	stopChan := c.stopChan
	c.mutex.RUnlock()

	for {
		select {
		case <-ticker.C:
			c.syncDirty(ctx, syncFunc)
		case <-stopChan:
			// Final sync before stopping
			c.syncDirty(ctx, syncFunc)
			return
		case <-ctx.Done():
			return
		}
	}
}

// syncDirty flushes dirty entries through the sync function
func (c *Cache) syncDirty(ctx context.Context, syncFunc func(map[string]*domain.CacheEntry) error) {
	dirtyEntries, err := c.GetDirtyEntries(ctx)
	if err != nil {
		log.Printf("Error getting dirty entries: %v", err)
		return
	}

	if len(dirtyEntries) == 0 {
		return
	}

	if err := syncFunc(dirtyEntries); err != nil {
		log.Printf("Error syncing cache entries: %v", err)
		return
	}

	for key := range dirtyEntries {
		if err := c.MarkClean(ctx, key); err != nil {
			log.Printf("Error marking entry %s as clean: %v", key, err)
		}
	}
}

// Close closes the cache (stops background sync)
func (c *Cache) Close() error {
	return c.StopBackgroundSync()
}

// copyEntry guards against external mutation of stored entries
func copyEntry(entry *domain.CacheEntry) *domain.CacheEntry {
	return &domain.CacheEntry{
		TargetURL: entry.TargetURL,
		HitCount:  entry.HitCount,
		LastHitAt: entry.LastHitAt,
		Dirty:     entry.Dirty,
	}
}

// Ensure Cache implements the interfaces
var _ cache.Cache = (*Cache)(nil)
var _ cache.SyncableCache = (*Cache)(nil)
