package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kmullins/linkgen/internal/domain"
	"github.com/kmullins/linkgen/internal/repository"
)

// Repository implements repository.LinkRepository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(databasePath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys and WAL mode for better performance
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	repo := &Repository{db: db}

	if err := repo.runMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

// CreateLink stores a new key to target URL mapping
func (r *Repository) CreateLink(ctx context.Context, key, targetURL string, createdAt time.Time) (*domain.LinkEntry, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO links (key, target_url, created_at) VALUES (?, ?, ?)",
		key, targetURL, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}

	return &domain.LinkEntry{
		ID:        int(id),
		Key:       key,
		TargetURL: targetURL,
		CreatedAt: createdAt,
	}, nil
}

// GetLink retrieves a link entry by its key
func (r *Repository) GetLink(ctx context.Context, key string) (*domain.LinkEntry, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, key, target_url, created_at, last_hit_at, hit_count FROM links WHERE key = ?", key)

	entry, err := scanLink(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("key not found")
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}
	return entry, nil
}

// GetAllLinks retrieves all link entries ordered by creation date (desc)
func (r *Repository) GetAllLinks(ctx context.Context) ([]*domain.LinkEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, key, target_url, created_at, last_hit_at, hit_count FROM links ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get all links: %w", err)
	}
	defer rows.Close()

	var entries []*domain.LinkEntry
	for rows.Next() {
		entry, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// UpdateHits updates the hit count and last hit timestamp for a link
func (r *Repository) UpdateHits(ctx context.Context, key string, hitCount int, lastHitAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE links SET hit_count = ?, last_hit_at = ? WHERE key = ?",
		hitCount, lastHitAt, key)
	if err != nil {
		return fmt.Errorf("failed to update hits: %w", err)
	}
	return nil
}

// DeleteLink removes a link entry by its key
func (r *Repository) DeleteLink(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM links WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	return nil
}

// LinkExists checks if a key exists
func (r *Repository) LinkExists(ctx context.Context, key string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM links WHERE key = ?", key).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check link existence: %w", err)
	}
	return count > 0, nil
}

// LoadCacheData loads all link data for cache initialization
func (r *Repository) LoadCacheData(ctx context.Context) (map[string]*domain.CacheEntry, error) {
	entries, err := r.GetAllLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cache data: %w", err)
	}

	cache := make(map[string]*domain.CacheEntry)
	for _, entry := range entries {
		cacheEntry := &domain.CacheEntry{
			TargetURL: entry.TargetURL,
			HitCount:  entry.HitCount,
			Dirty:     false,
		}
		if entry.LastHitAt != nil {
			cacheEntry.LastHitAt = *entry.LastHitAt
		}
		cache[entry.Key] = cacheEntry
	}

	return cache, nil
}

// GetCounter returns the persisted counter watermark, or zero when the
// counter has never been stored
func (r *Repository) GetCounter(ctx context.Context, name string) (uint64, error) {
	var value int64
	err := r.db.QueryRowContext(ctx, "SELECT value FROM counters WHERE name = ?", name).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get counter: %w", err)
	}
	return uint64(value), nil
}

// SetCounter persists the counter watermark
func (r *Repository) SetCounter(ctx context.Context, name string, value uint64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO counters (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		name, int64(value))
	if err != nil {
		return fmt.Errorf("failed to set counter: %w", err)
	}
	return nil
}

// Close closes the repository connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLink(row rowScanner) (*domain.LinkEntry, error) {
	var entry domain.LinkEntry
	var lastHitAt sql.NullTime
	var hitCount sql.NullInt64

	if err := row.Scan(&entry.ID, &entry.Key, &entry.TargetURL, &entry.CreatedAt, &lastHitAt, &hitCount); err != nil {
		return nil, err
	}

	if lastHitAt.Valid {
		entry.LastHitAt = &lastHitAt.Time
	}
	if hitCount.Valid {
		entry.HitCount = int(hitCount.Int64)
	}

	return &entry, nil
}

// Ensure Repository implements the interface
var _ repository.LinkRepository = (*Repository)(nil)
