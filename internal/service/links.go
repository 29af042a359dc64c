package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/kmullins/linkgen/internal/cache"
	"github.com/kmullins/linkgen/internal/domain"
	"github.com/kmullins/linkgen/internal/linkgen"
	"github.com/kmullins/linkgen/internal/qr"
	"github.com/kmullins/linkgen/internal/repository"
)

// counterName is the repository counter the service reserves key blocks from
const counterName = "links"

// Config holds service configuration
type Config struct {
	// CounterStep is the size of the counter blocks reserved in the
	// repository. Larger steps mean fewer writes; keys inside an unused
	// block are skipped after a crash, never reissued.
	CounterStep uint64
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{CounterStep: 100}
}

// linkService implements LinkService
type linkService struct {
	repo     repository.LinkRepository
	cache    cache.SyncableCache
	renderer qr.Renderer

	// mu serializes generator access and counter reservation. The generator
	// itself carries no locking: batching both under one mutex keeps key
	// issuance and watermark persistence consistent.
	mu        sync.Mutex
	gen       *linkgen.Generator
	reserved  uint64
	step      uint64
	qrPayload linkgen.QRPayload
}

// NewLinkService creates a link service. The generator starts from the
// counter watermark persisted in the repository (or genCfg.InitialCounter if
// that is higher), so restarts never reissue keys.
func NewLinkService(ctx context.Context, repo repository.LinkRepository, cache cache.SyncableCache, genCfg linkgen.Config, renderer qr.Renderer, cfg Config) (LinkService, error) {
	watermark, err := repo.GetCounter(ctx, counterName)
	if err != nil {
		return nil, fmt.Errorf("failed to read counter watermark: %w", err)
	}
	if watermark > genCfg.InitialCounter {
		genCfg.InitialCounter = watermark
	}

	gen, err := linkgen.New(genCfg, renderer)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	step := cfg.CounterStep
	if step == 0 {
		step = 1
	}

	return &linkService{
		repo:      repo,
		cache:     cache,
		renderer:  renderer,
		gen:       gen,
		reserved:  genCfg.InitialCounter,
		step:      step,
		qrPayload: genCfg.QRPayload,
	}, nil
}

// nextLink reserves counter space if needed and issues the next link.
// Counter reservation is written before any key from the block is issued.
func (s *linkService) nextLink(ctx context.Context) (linkgen.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen.Counter() >= s.reserved {
		next := s.gen.Counter() + s.step
		if err := s.repo.SetCounter(ctx, counterName, next); err != nil {
			return linkgen.Link{}, fmt.Errorf("failed to reserve counter block: %w", err)
		}
		s.reserved = next
	}

	link, err := s.gen.GenerateURL()
	if err != nil {
		return linkgen.Link{}, fmt.Errorf("failed to generate key: %w", err)
	}
	return link, nil
}

// CreateLink issues a new key and stores the key to target URL mapping
func (s *linkService) CreateLink(ctx context.Context, targetURL string) (*domain.LinkEntry, error) {
	parsedURL, err := url.ParseRequestURI(targetURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	// Only allow HTTP and HTTPS schemes
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL: only HTTP and HTTPS are supported")
	}

	link, err := s.nextLink(ctx)
	if err != nil {
		return nil, err
	}

	createdAt := time.Now()
	entry, err := s.repo.CreateLink(ctx, link.Key, targetURL, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	cacheEntry := &domain.CacheEntry{
		TargetURL: targetURL,
		HitCount:  0,
		LastHitAt: createdAt,
		Dirty:     false,
	}
	if err := s.cache.Set(ctx, link.Key, cacheEntry); err != nil {
		// Log error but don't fail the operation
		log.Printf("Warning: failed to cache new entry %s: %v", link.Key, err)
	}

	return entry, nil
}

// CreateLinkQR issues a new key, stores the mapping, then renders its QR
// image. The counter advance and the stored mapping survive a failed render.
func (s *linkService) CreateLinkQR(ctx context.Context, targetURL string) (*domain.LinkEntry, []byte, error) {
	if s.renderer == nil {
		return nil, nil, linkgen.ErrNoRenderer
	}

	entry, err := s.CreateLink(ctx, targetURL)
	if err != nil {
		return nil, nil, err
	}

	png, err := s.renderQR(entry.Key)
	if err != nil {
		return entry, nil, fmt.Errorf("failed to render QR for %s: %w", entry.Key, err)
	}

	return entry, png, nil
}

// ResolveLink retrieves the target URL for a key and records a hit
func (s *linkService) ResolveLink(ctx context.Context, key string) (string, error) {
	// Try cache first
	if entry, exists := s.cache.Get(ctx, key); exists {
		if err := s.cache.RecordHit(ctx, key); err != nil {
			log.Printf("Warning: failed to record hit in cache for %s: %v", key, err)
		}

		return entry.TargetURL, nil
	}

	// Fall back to database
	entry, err := s.repo.GetLink(ctx, key)
	if err != nil {
		return "", fmt.Errorf("key not found")
	}

	cacheEntry := &domain.CacheEntry{
		TargetURL: entry.TargetURL,
		HitCount:  entry.HitCount + 1,
		LastHitAt: time.Now(),
		Dirty:     true,
	}
	if err := s.cache.Set(ctx, key, cacheEntry); err != nil {
		log.Printf("Warning: failed to cache entry %s: %v", key, err)
	}

	return entry.TargetURL, nil
}

// GetLinkInfo retrieves detailed information about a short link
func (s *linkService) GetLinkInfo(ctx context.Context, key string) (*domain.LinkEntry, error) {
	entry, err := s.repo.GetLink(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("key not found")
	}

	// Update with cache data if available
	if cacheEntry, exists := s.cache.Get(ctx, key); exists {
		entry.HitCount = cacheEntry.HitCount
		entry.LastHitAt = &cacheEntry.LastHitAt
	}

	return entry, nil
}

// DeleteLink removes a short link
func (s *linkService) DeleteLink(ctx context.Context, key string) error {
	exists, err := s.repo.LinkExists(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check link existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("key not found")
	}

	if err := s.repo.DeleteLink(ctx, key); err != nil {
		return fmt.Errorf("failed to delete link from database: %w", err)
	}

	if err := s.cache.Delete(ctx, key); err != nil {
		log.Printf("Warning: failed to delete from cache %s: %v", key, err)
	}

	return nil
}

// GetAllLinks retrieves all short links with current cache data
func (s *linkService) GetAllLinks(ctx context.Context) ([]*domain.LinkEntry, error) {
	entries, err := s.repo.GetAllLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get links from database: %w", err)
	}

	for _, entry := range entries {
		if cacheEntry, exists := s.cache.Get(ctx, entry.Key); exists {
			entry.HitCount = cacheEntry.HitCount
			entry.LastHitAt = &cacheEntry.LastHitAt
		}
	}

	return entries, nil
}

// RenderKeyQR renders the QR image for an existing key
func (s *linkService) RenderKeyQR(ctx context.Context, key string) ([]byte, error) {
	if s.renderer == nil {
		return nil, linkgen.ErrNoRenderer
	}

	exists, err := s.repo.LinkExists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check link existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("key not found")
	}

	return s.renderQR(key)
}

// renderQR renders the configured payload (full URL or bare key) for a key
func (s *linkService) renderQR(key string) ([]byte, error) {
	payload := s.gen.URLFor(key)
	if s.qrPayload == linkgen.PayloadKey {
		payload = key
	}
	return s.renderer.Render(payload)
}

// ShortURL returns the public short URL for a key
func (s *linkService) ShortURL(key string) string {
	return s.gen.URLFor(key)
}

// StartCacheSync starts the background cache synchronization
func (s *linkService) StartCacheSync(ctx context.Context, interval time.Duration) error {
	syncFunc := func(dirtyEntries map[string]*domain.CacheEntry) error {
		for key, entry := range dirtyEntries {
			if err := s.repo.UpdateHits(ctx, key, entry.HitCount, entry.LastHitAt); err != nil {
				return fmt.Errorf("failed to sync entry %s: %w", key, err)
			}
		}
		return nil
	}

	return s.cache.StartBackgroundSync(ctx, interval, syncFunc)
}

// StopCacheSync stops the background cache synchronization
func (s *linkService) StopCacheSync() error {
	return s.cache.StopBackgroundSync()
}

// InitializeCache loads data from the repository into the cache
func (s *linkService) InitializeCache(ctx context.Context) error {
	data, err := s.repo.LoadCacheData(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cache data: %w", err)
	}

	return s.cache.LoadData(ctx, data)
}

// Close closes the service and its dependencies
func (s *linkService) Close() error {
	if err := s.cache.Close(); err != nil {
		return fmt.Errorf("failed to close cache: %w", err)
	}
	if err := s.repo.Close(); err != nil {
		return fmt.Errorf("failed to close repository: %w", err)
	}
	return nil
}

// Ensure linkService implements LinkService interface
var _ LinkService = (*linkService)(nil)
