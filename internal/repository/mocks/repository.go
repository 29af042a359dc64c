package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/kmullins/linkgen/internal/domain"
)

// LinkRepository is a mock implementation of repository.LinkRepository
type LinkRepository struct {
	mock.Mock
}

// CreateLink stores a new key to target URL mapping
func (m *LinkRepository) CreateLink(ctx context.Context, key, targetURL string, createdAt time.Time) (*domain.LinkEntry, error) {
	args := m.Called(ctx, key, targetURL, createdAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkEntry), args.Error(1)
}

// GetLink retrieves a link entry by its key
func (m *LinkRepository) GetLink(ctx context.Context, key string) (*domain.LinkEntry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkEntry), args.Error(1)
}

// GetAllLinks retrieves all link entries
func (m *LinkRepository) GetAllLinks(ctx context.Context) ([]*domain.LinkEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LinkEntry), args.Error(1)
}

// UpdateHits updates the hit count and last hit timestamp for a link
func (m *LinkRepository) UpdateHits(ctx context.Context, key string, hitCount int, lastHitAt time.Time) error {
	args := m.Called(ctx, key, hitCount, lastHitAt)
	return args.Error(0)
}

// DeleteLink removes a link entry by its key
func (m *LinkRepository) DeleteLink(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// LinkExists checks if a key exists
func (m *LinkRepository) LinkExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// LoadCacheData loads all link data for cache initialization
func (m *LinkRepository) LoadCacheData(ctx context.Context) (map[string]*domain.CacheEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.CacheEntry), args.Error(1)
}

// GetCounter returns the persisted counter watermark
func (m *LinkRepository) GetCounter(ctx context.Context, name string) (uint64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(uint64), args.Error(1)
}

// SetCounter persists the counter watermark
func (m *LinkRepository) SetCounter(ctx context.Context, name string, value uint64) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

// Close closes the repository connection
func (m *LinkRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
