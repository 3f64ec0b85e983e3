package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluepin/backend/internal/domain"
	"github.com/bluepin/backend/internal/infrastructure/monitoring/logging"
)

func openTestRepo(t *testing.T) *WishlistRepository {
	t.Helper()
	repo, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "wishlist.db"), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return repo
}

func TestWishlistRepository_AddAndList(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	first, err := repo.Add(ctx, domain.WishlistItem{UserID: "u1", ProductIdentifier: "Glass Jar", ProductTitle: "Glass Jar Set", ProductPrice: 349, ProductRating: 3.9})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 1, 0, time.UTC), first.AddedAt)

	second, err := repo.Add(ctx, domain.WishlistItem{UserID: "u1", ProductIdentifier: "Table Lamp"})
	require.NoError(t, err)
	_, err = repo.Add(ctx, domain.WishlistItem{UserID: "u2", ProductIdentifier: "Glass Jar"})
	require.NoError(t, err)

	items, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first, items[1])

	empty, err := repo.List(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestWishlistRepository_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	_, err := repo.Add(ctx, domain.WishlistItem{UserID: "u1", ProductIdentifier: "Glass Jar"})
	require.NoError(t, err)
	_, err = repo.Add(ctx, domain.WishlistItem{UserID: "u1", ProductIdentifier: "Glass Jar"})
	assert.ErrorIs(t, err, domain.ErrWishlistDuplicate)

	items, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWishlistRepository_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	item, err := repo.Add(ctx, domain.WishlistItem{UserID: "u1", ProductIdentifier: "Glass Jar"})
	require.NoError(t, err)
	for _, id := range []string{"Table Lamp", "Wall Clock"} {
		_, err = repo.Add(ctx, domain.WishlistItem{UserID: "u1", ProductIdentifier: id})
		require.NoError(t, err)
	}

	// another user cannot remove it
	assert.ErrorIs(t, repo.Remove(ctx, "u2", item.ID), domain.ErrWishlistItemNotFound)
	require.NoError(t, repo.Remove(ctx, "u1", item.ID))
	assert.ErrorIs(t, repo.Remove(ctx, "u1", item.ID), domain.ErrWishlistItemNotFound)

	n, err := repo.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpenInMemory(t *testing.T) {
	repo, err := Open(context.Background(), ":memory:", logging.NewNop())
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.Add(context.Background(), domain.WishlistItem{UserID: "u1", ProductIdentifier: "x"})
	assert.NoError(t, err)
}
