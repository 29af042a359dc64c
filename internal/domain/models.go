package domain

import (
	"time"
)

// LinkEntry represents a stored short link with its metadata
type LinkEntry struct {
	ID        int        `json:"id"`
	Key       string     `json:"key"`
	TargetURL string     `json:"target_url"`
	CreatedAt time.Time  `json:"created_at"`
	LastHitAt *time.Time `json:"last_hit_at,omitempty"`
	HitCount  int        `json:"hit_count"`
}

// CacheEntry represents a resolved link in the cache
type CacheEntry struct {
	TargetURL string    `json:"target_url"`
	HitCount  int       `json:"hit_count"`
	LastHitAt time.Time `json:"last_hit_at"`
	Dirty     bool      `json:"dirty"` // Indicates if the entry needs to be synced to DB
}

// CreateLinkRequest represents the request to create a short link
type CreateLinkRequest struct {
	URL string `json:"url"`
	QR  bool   `json:"qr,omitempty"`
}

// CreateLinkResponse represents the response when creating a short link
type CreateLinkResponse struct {
	Key       string    `json:"key"`
	ShortURL  string    `json:"short_url"`
	TargetURL string    `json:"target_url"`
	CreatedAt time.Time `json:"created_at"`
	QRPNG     []byte    `json:"qr_png,omitempty"` // base64-encoded in JSON
}
