package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmullins/linkgen/internal/domain"
)

func TestCache_New(t *testing.T) {
	cache := New()
	assert.NotNil(t, cache)
	assert.NotNil(t, cache.data)
	assert.NotNil(t, cache.stopChan)
	assert.False(t, cache.running)
}

func TestCache_SetAndGet(t *testing.T) {
	cache := New()
	defer cache.Close()
	ctx := context.Background()

	entry := &domain.CacheEntry{
		TargetURL: "https://example.com",
		HitCount:  3,
		LastHitAt: time.Now(),
		Dirty:     false,
	}

	// Test Set
	err := cache.Set(ctx, "vq5ejng0p6", entry)
	assert.NoError(t, err)

	// Test Get - exists
	retrieved, exists := cache.Get(ctx, "vq5ejng0p6")
	assert.True(t, exists)
	require.NotNil(t, retrieved)
	assert.Equal(t, entry.TargetURL, retrieved.TargetURL)
	assert.Equal(t, entry.HitCount, retrieved.HitCount)
	assert.Equal(t, entry.Dirty, retrieved.Dirty)

	// Verify it's a copy (modifying retrieved shouldn't affect cache)
	retrieved.HitCount = 999
	retrieved2, _ := cache.Get(ctx, "vq5ejng0p6")
	assert.Equal(t, 3, retrieved2.HitCount)

	// Test Get - doesn't exist
	retrieved, exists = cache.Get(ctx, "nonexistent")
	assert.False(t, exists)
	assert.Nil(t, retrieved)
}

func TestCache_RecordHit(t *testing.T) {
	cache := New()
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "vq5ejng0p6", &domain.CacheEntry{TargetURL: "https://example.com"}))

	for i := 0; i < 5; i++ {
		require.NoError(t, cache.RecordHit(ctx, "vq5ejng0p6"))
	}

	entry, exists := cache.Get(ctx, "vq5ejng0p6")
	require.True(t, exists)
	assert.Equal(t, 5, entry.HitCount)
	assert.True(t, entry.Dirty)
	assert.False(t, entry.LastHitAt.IsZero())

	// Recording a hit for an unknown key is a no-op
	assert.NoError(t, cache.RecordHit(ctx, "nonexistent"))
}

func TestCache_DirtyTracking(t *testing.T) {
	cache := New()
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "clean", &domain.CacheEntry{TargetURL: "https://example.com/a"}))
	require.NoError(t, cache.Set(ctx, "dirty", &domain.CacheEntry{TargetURL: "https://example.com/b"}))
	require.NoError(t, cache.RecordHit(ctx, "dirty"))

	dirty, err := cache.GetDirtyEntries(ctx)
	require.NoError(t, err)
	require.Len(t, dirty, 1)
	assert.Contains(t, dirty, "dirty")

	require.NoError(t, cache.MarkClean(ctx, "dirty"))

	dirty, err = cache.GetDirtyEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, dirty)
}

func TestCache_LoadDataReplacesContents(t *testing.T) {
	cache := New()
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "old", &domain.CacheEntry{TargetURL: "https://example.com/old"}))

	err := cache.LoadData(ctx, map[string]*domain.CacheEntry{
		"new": {TargetURL: "https://example.com/new", HitCount: 1},
	})
	require.NoError(t, err)

	_, exists := cache.Get(ctx, "old")
	assert.False(t, exists)

	entry, exists := cache.Get(ctx, "new")
	assert.True(t, exists)
	assert.Equal(t, "https://example.com/new", entry.TargetURL)
}

func TestCache_Delete(t *testing.T) {
	cache := New()
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "vq5ejng0p6", &domain.CacheEntry{TargetURL: "https://example.com"}))
	require.NoError(t, cache.Delete(ctx, "vq5ejng0p6"))

	_, exists := cache.Get(ctx, "vq5ejng0p6")
	assert.False(t, exists)
}

func TestCache_BackgroundSync(t *testing.T) {
	cache := New()
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "vq5ejng0p6", &domain.CacheEntry{TargetURL: "https://example.com"}))
	require.NoError(t, cache.RecordHit(ctx, "vq5ejng0p6"))

	var mu sync.Mutex
	synced := make(map[string]int)

	err := cache.StartBackgroundSync(ctx, 10*time.Millisecond, func(dirty map[string]*domain.CacheEntry) error {
		mu.Lock()
		defer mu.Unlock()
		for key, entry := range dirty {
			synced[key] = entry.HitCount
		}
		return nil
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return synced["vq5ejng0p6"] == 1
	}, 2*time.Second, 5*time.Millisecond, "background sync never flushed the dirty entry")

	require.NoError(t, cache.StopBackgroundSync())

	// Entry was marked clean by the sync
	dirty, err := cache.GetDirtyEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, dirty)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := New()
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "shared", &domain.CacheEntry{TargetURL: "https://example.com"}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cache.RecordHit(ctx, "shared")
				cache.Get(ctx, "shared")
			}
		}()
	}
	wg.Wait()

	entry, exists := cache.Get(ctx, "shared")
	require.True(t, exists)
	assert.Equal(t, 1000, entry.HitCount)
}
