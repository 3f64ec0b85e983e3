package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluepin/backend/internal/domain"
	"github.com/bluepin/backend/internal/infrastructure/monitoring/logging"
)

// mockWishlistRepository is an in-memory domain.WishlistRepository
type mockWishlistRepository struct {
	items  []domain.WishlistItem
	nextID int64
	addErr error
}

func (m *mockWishlistRepository) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	out := []domain.WishlistItem{}
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].UserID == userID {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *mockWishlistRepository) Add(ctx context.Context, item domain.WishlistItem) (domain.WishlistItem, error) {
	if m.addErr != nil {
		return domain.WishlistItem{}, m.addErr
	}
	for _, existing := range m.items {
		if existing.UserID == item.UserID && existing.ProductIdentifier == item.ProductIdentifier {
			return domain.WishlistItem{}, domain.ErrWishlistDuplicate
		}
	}
	m.nextID++
	item.ID = m.nextID
	item.AddedAt = time.Now()
	m.items = append(m.items, item)
	return item, nil
}

func (m *mockWishlistRepository) Remove(ctx context.Context, userID string, id int64) error {
	for i, item := range m.items {
		if item.ID == id && item.UserID == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrWishlistItemNotFound
}

func (m *mockWishlistRepository) Clear(ctx context.Context, userID string) (int64, error) {
	kept := m.items[:0]
	var removed int64
	for _, item := range m.items {
		if item.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	m.items = kept
	return removed, nil
}

func newWishlistService() (*WishlistService, *mockWishlistRepository) {
	repo := &mockWishlistRepository{}
	return NewWishlistService(repo, newFakeStore(fixtureProducts(), nil), logging.NewNop()), repo
}

func TestWishlistService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("copies product details", func(t *testing.T) {
		svc, _ := newWishlistService()
		item, err := svc.Add(ctx, "u1", " Table Lamp ")
		require.NoError(t, err)
		assert.Equal(t, int64(1), item.ID)
		assert.Equal(t, "u1", item.UserID)
		assert.Equal(t, "Table Lamp", item.ProductIdentifier)
		assert.Equal(t, "Wooden Table Lamp", item.ProductTitle)
		assert.InDelta(t, 2999, item.ProductPrice, 1e-9)
		assert.InDelta(t, 4.1, item.ProductRating, 1e-9)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc, _ := newWishlistService()
		_, err := svc.Add(ctx, "u1", "Glass Jar")
		require.NoError(t, err)
		_, err = svc.Add(ctx, "u1", "Glass Jar")
		assert.ErrorIs(t, err, domain.ErrWishlistDuplicate)
	})

	testCases := []struct {
		name    string
		userID  string
		product string
		wantErr error
	}{
		{"missing user", "  ", "Glass Jar", domain.ErrUnauthorized},
		{"missing product", "u1", "", domain.ErrInvalidRequest},
		{"unknown product", "u1", "Nope", domain.ErrProductNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo := newWishlistService()
			_, err := svc.Add(ctx, tc.userID, tc.product)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, repo.items)
		})
	}

	t.Run("repository failure", func(t *testing.T) {
		svc, repo := newWishlistService()
		repo.addErr = errors.New("disk full")
		_, err := svc.Add(ctx, "u1", "Glass Jar")
		assert.EqualError(t, err, "disk full")
	})
}

func TestWishlistService_ListRemoveClear(t *testing.T) {
	ctx := context.Background()
	svc, _ := newWishlistService()

	for _, id := range []string{"Glass Jar", "Table Lamp"} {
		_, err := svc.Add(ctx, "u1", id)
		require.NoError(t, err)
	}
	_, err := svc.Add(ctx, "u2", "Glass Jar")
	require.NoError(t, err)

	items, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Table Lamp", items[0].ProductIdentifier)

	assert.ErrorIs(t, svc.Remove(ctx, "u2", items[0].ID), domain.ErrWishlistItemNotFound)
	require.NoError(t, svc.Remove(ctx, "u1", items[0].ID))

	removed, err := svc.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	items, err = svc.List(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = svc.List(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.Clear(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
