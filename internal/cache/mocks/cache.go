package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/kmullins/linkgen/internal/domain"
)

// SyncableCache is a mock implementation of cache.SyncableCache
type SyncableCache struct {
	mock.Mock
}

// Get retrieves a cache entry by key
func (m *SyncableCache) Get(ctx context.Context, key string) (*domain.CacheEntry, bool) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.CacheEntry), args.Bool(1)
}

// Set stores a cache entry
func (m *SyncableCache) Set(ctx context.Context, key string, entry *domain.CacheEntry) error {
	args := m.Called(ctx, key, entry)
	return args.Error(0)
}

// Delete removes a cache entry
func (m *SyncableCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// RecordHit increments the hit count for a key
func (m *SyncableCache) RecordHit(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// GetDirtyEntries returns all cache entries that need to be synced
func (m *SyncableCache) GetDirtyEntries(ctx context.Context) (map[string]*domain.CacheEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.CacheEntry), args.Error(1)
}

// MarkClean marks a cache entry as clean
func (m *SyncableCache) MarkClean(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// LoadData loads data into the cache from a map
func (m *SyncableCache) LoadData(ctx context.Context, data map[string]*domain.CacheEntry) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

// StartBackgroundSync starts background synchronization
func (m *SyncableCache) StartBackgroundSync(ctx context.Context, interval time.Duration, syncFunc func(map[string]*domain.CacheEntry) error) error {
	args := m.Called(ctx, interval, syncFunc)
	return args.Error(0)
}

// StopBackgroundSync stops background synchronization
func (m *SyncableCache) StopBackgroundSync() error {
	args := m.Called()
	return args.Error(0)
}

// Close closes the cache
func (m *SyncableCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
