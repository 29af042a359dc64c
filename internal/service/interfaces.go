package service

import (
	"context"
	"time"

	"github.com/kmullins/linkgen/internal/domain"
)

// LinkService defines the interface for short link operations
type LinkService interface {
	// CreateLink issues a new key and stores the key to target URL mapping
	CreateLink(ctx context.Context, targetURL string) (*domain.LinkEntry, error)

	// CreateLinkQR issues a new key, stores the mapping, then renders its QR
	// image. The mapping is persisted before rendering: a failed render
	// still consumes the key
	CreateLinkQR(ctx context.Context, targetURL string) (*domain.LinkEntry, []byte, error)

	// ResolveLink retrieves the target URL for a key and records a hit
	ResolveLink(ctx context.Context, key string) (string, error)

	// GetLinkInfo retrieves detailed information about a short link
	GetLinkInfo(ctx context.Context, key string) (*domain.LinkEntry, error)

	// DeleteLink removes a short link
	DeleteLink(ctx context.Context, key string) error

	// GetAllLinks retrieves all short links with current cache data
	GetAllLinks(ctx context.Context) ([]*domain.LinkEntry, error)

	// RenderKeyQR renders the QR image for an existing key
	RenderKeyQR(ctx context.Context, key string) ([]byte, error)

	// ShortURL returns the public short URL for a key
	ShortURL(key string) string

	// InitializeCache loads data from repository into cache
	InitializeCache(ctx context.Context) error

	// StartCacheSync starts background cache synchronization
	StartCacheSync(ctx context.Context, interval time.Duration) error

	// StopCacheSync stops background cache synchronization
	StopCacheSync() error

	// Close closes the service and its dependencies
	Close() error
}
