package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/bluepin/backend/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS wishlist_items (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id            TEXT    NOT NULL,
	product_identifier TEXT    NOT NULL,
	product_title      TEXT    NOT NULL DEFAULT '',
	product_price      REAL    NOT NULL DEFAULT 0,
	product_rating     REAL    NOT NULL DEFAULT 0,
	product_image      TEXT    NOT NULL DEFAULT '',
	added_at           INTEGER NOT NULL,
	UNIQUE (user_id, product_identifier)
);
CREATE INDEX IF NOT EXISTS idx_wishlist_user ON wishlist_items (user_id, added_at);
`

// WishlistRepository stores wishlist items in a SQLite database
type WishlistRepository struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// Open opens (creating if needed) the database at path and applies the schema.
// ":memory:" keeps everything in process memory.
func Open(ctx context.Context, path string, logger *zap.Logger) (*WishlistRepository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logger.Info("wishlist database ready", zap.String("path", path))
	return &WishlistRepository{db: db, logger: logger, now: time.Now}, nil
}

// Close closes the underlying database
func (r *WishlistRepository) Close() error {
	return r.db.Close()
}

// List returns the user's items, newest first
func (r *WishlistRepository) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	const q = `SELECT id, user_id, product_identifier, product_title, product_price,
		product_rating, product_image, added_at
		FROM wishlist_items WHERE user_id = ? ORDER BY added_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	defer rows.Close()

	items := []domain.WishlistItem{}
	for rows.Next() {
		var item domain.WishlistItem
		var addedAt int64
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductIdentifier, &item.ProductTitle,
			&item.ProductPrice, &item.ProductRating, &item.ProductImage, &addedAt); err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		item.AddedAt = time.UnixMilli(addedAt).UTC()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	return items, nil
}

// Add inserts an item. A product already on the user's list yields
// domain.ErrWishlistDuplicate.
func (r *WishlistRepository) Add(ctx context.Context, item domain.WishlistItem) (domain.WishlistItem, error) {
	const q = `INSERT INTO wishlist_items
		(user_id, product_identifier, product_title, product_price, product_rating, product_image, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, product_identifier) DO NOTHING`

	item.AddedAt = r.now().UTC().Truncate(time.Millisecond)
	res, err := r.db.ExecContext(ctx, q, item.UserID, item.ProductIdentifier, item.ProductTitle,
		item.ProductPrice, item.ProductRating, item.ProductImage, item.AddedAt.UnixMilli())
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("add wishlist item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("add wishlist item: %w", err)
	}
	if n == 0 {
		return domain.WishlistItem{}, fmt.Errorf("%w: %q", domain.ErrWishlistDuplicate, item.ProductIdentifier)
	}

	if item.ID, err = res.LastInsertId(); err != nil {
		return domain.WishlistItem{}, fmt.Errorf("add wishlist item: %w", err)
	}
	return item, nil
}

// Remove deletes one item owned by the user
func (r *WishlistRepository) Remove(ctx context.Context, userID string, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wishlist_items WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", domain.ErrWishlistItemNotFound, id)
	}
	return nil
}

// Clear deletes all of the user's items and returns how many were removed
func (r *WishlistRepository) Clear(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wishlist_items WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear wishlist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear wishlist: %w", err)
	}
	if n > 0 {
		r.logger.Info("wishlist cleared", zap.String("user", userID), zap.Int64("removed", n))
	}
	return n, nil
}
