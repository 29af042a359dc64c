package repository

import (
	"context"
	"time"

	"github.com/kmullins/linkgen/internal/domain"
)

// LinkRepository defines the interface for short link data operations
type LinkRepository interface {
	// CreateLink stores a new key to target URL mapping
	CreateLink(ctx context.Context, key, targetURL string, createdAt time.Time) (*domain.LinkEntry, error)

	// GetLink retrieves a link entry by its key
	GetLink(ctx context.Context, key string) (*domain.LinkEntry, error)

	// GetAllLinks retrieves all link entries ordered by creation date (desc)
	GetAllLinks(ctx context.Context) ([]*domain.LinkEntry, error)

	// UpdateHits updates the hit count and last hit timestamp for a link
	UpdateHits(ctx context.Context, key string, hitCount int, lastHitAt time.Time) error

	// DeleteLink removes a link entry by its key
	DeleteLink(ctx context.Context, key string) error

	// LinkExists checks if a key exists
	LinkExists(ctx context.Context, key string) (bool, error)

	// LoadCacheData loads all link data for cache initialization
	LoadCacheData(ctx context.Context) (map[string]*domain.CacheEntry, error)

	// GetCounter returns the persisted counter watermark for a named counter,
	// or zero when none has been stored yet
	GetCounter(ctx context.Context, name string) (uint64, error)

	// SetCounter persists the counter watermark for a named counter
	SetCounter(ctx context.Context, name string, value uint64) error

	// Close closes the repository connection
	Close() error
}
