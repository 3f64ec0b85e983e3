package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bluepin/backend/internal/domain"
)

// WishlistService manages per-user saved products
type WishlistService struct {
	repo   domain.WishlistRepository
	store  domain.SnapshotStore
	logger *zap.Logger
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(repo domain.WishlistRepository, store domain.SnapshotStore, logger *zap.Logger) *WishlistService {
	return &WishlistService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// List returns the user's wishlist, newest first
func (s *WishlistService) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, userID)
}

// Add saves a product from the current snapshot to the user's wishlist
func (s *WishlistService) Add(ctx context.Context, userID, productID string) (domain.WishlistItem, error) {
	if err := requireUser(userID); err != nil {
		return domain.WishlistItem{}, err
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.WishlistItem{}, fmt.Errorf("%w: product identifier is required", domain.ErrInvalidRequest)
	}

	p, err := s.store.Current().ProductByIdentifier(productID)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("%w: %q", err, productID)
	}

	item, err := s.repo.Add(ctx, domain.WishlistItem{
		UserID:            userID,
		ProductIdentifier: p.Identifier,
		ProductTitle:      p.Title,
		ProductPrice:      p.Price,
		ProductRating:     p.Rating,
		ProductImage:      p.ImageURL,
	})
	if err != nil {
		return domain.WishlistItem{}, err
	}

	s.logger.Info("wishlist item added",
		zap.String("user", userID),
		zap.String("product", p.Identifier),
	)
	return item, nil
}

// Remove deletes one of the user's wishlist items
func (s *WishlistService) Remove(ctx context.Context, userID string, id int64) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.repo.Remove(ctx, userID, id)
}

// Clear deletes every item on the user's wishlist and returns how many were removed
func (s *WishlistService) Clear(ctx context.Context, userID string) (int64, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	return s.repo.Clear(ctx, userID)
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrUnauthorized
	}
	return nil
}
