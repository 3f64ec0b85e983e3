package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// SnapshotStore serves the current product snapshot and replaces it on reload
type SnapshotStore interface {
	// Current returns the active snapshot. It never returns nil.
	Current() *Snapshot
	// Reload re-reads every source and swaps in the new snapshot
	Reload(ctx context.Context) (*Snapshot, error)
}

// WishlistItem is a product saved by a user
type WishlistItem struct {
	ID                int64     `json:"id"`
	UserID            string    `json:"userId"`
	ProductIdentifier string    `json:"productIdentifier"`
	ProductTitle      string    `json:"productTitle"`
	ProductPrice      float64   `json:"productPrice"`
	ProductRating     float64   `json:"productRating"`
	ProductImage      string    `json:"productImage,omitempty"`
	AddedAt           time.Time `json:"addedAt"`
}

// WishlistRepository defines the interface for wishlist persistence
type WishlistRepository interface {
	List(ctx context.Context, userID string) ([]WishlistItem, error)
	Add(ctx context.Context, item WishlistItem) (WishlistItem, error)
	Remove(ctx context.Context, userID string, id int64) error
	Clear(ctx context.Context, userID string) (int64, error)
}
