package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluepin/backend/internal/domain"
	"github.com/bluepin/backend/internal/infrastructure/monitoring/logging"
)

func newComparisonService() *ComparisonService {
	return NewComparisonService(newFakeStore(fixtureProducts(), fixtureSuppliers()), logging.NewNop())
}

func TestComparisonService_CompareProducts(t *testing.T) {
	svc := newComparisonService()

	t.Run("flags best of each factor", func(t *testing.T) {
		got := svc.CompareProducts(context.Background(), []string{"Glass Jar", "Steel Bottle", "Unknown"})
		require.Len(t, got, 3)

		// load order, duplicates included
		assert.Equal(t, "Steel Water Bottle 1L", got[0].Title)
		assert.Equal(t, "Glass Jar Set", got[1].Title)
		assert.Equal(t, "Steel Bottle Duplicate", got[2].Title)

		assert.Equal(t, []int{88, 77, 85}, []int{got[0].AIScore, got[1].AIScore, got[2].AIScore})
		assert.Equal(t, "High Potential", got[0].AIPotential)

		assert.Equal(t, []bool{false, true, false}, []bool{got[0].IsCheapest, got[1].IsCheapest, got[2].IsCheapest})
		assert.Equal(t, []bool{true, false, true}, []bool{got[0].IsHighestRated, got[1].IsHighestRated, got[2].IsHighestRated})
		assert.Equal(t, []bool{true, false, false}, []bool{got[0].IsMostReviewed, got[1].IsMostReviewed, got[2].IsMostReviewed})
		assert.Equal(t, []bool{true, false, false}, []bool{got[0].IsBestAIScore, got[1].IsBestAIScore, got[2].IsBestAIScore})
	})

	t.Run("missing price is never cheapest", func(t *testing.T) {
		got := svc.CompareProducts(context.Background(), []string{"Table Lamp", "Wall Clock"})
		require.Len(t, got, 2)
		assert.True(t, got[0].IsCheapest)
		assert.False(t, got[1].IsCheapest)
		assert.True(t, got[0].IsHighestRated)
		assert.False(t, got[1].IsHighestRated)
	})

	t.Run("single product has no flags", func(t *testing.T) {
		got := svc.CompareProducts(context.Background(), []string{"Table Lamp"})
		require.Len(t, got, 1)
		assert.False(t, got[0].IsCheapest)
		assert.False(t, got[0].IsBestAIScore)
	})

	t.Run("nothing matched", func(t *testing.T) {
		got := svc.CompareProducts(context.Background(), []string{"Unknown"})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestComparisonService_CompareSuppliers(t *testing.T) {
	svc := newComparisonService()

	got := svc.CompareSuppliers(context.Background(), []string{"Gamma Co", "Acme Traders"})
	require.Len(t, got, 2)

	assert.Equal(t, "Acme Traders", got[0].Name)
	assert.InDelta(t, 4.1, got[0].AvgRating, 1e-9)
	assert.Equal(t, 135, got[0].TotalReviews)
	assert.Equal(t, 2, got[0].ProductCount)
	assert.True(t, got[0].IsHighestRated)
	assert.True(t, got[0].IsMostReviewed)

	assert.Equal(t, "Gamma Co", got[1].Name)
	assert.False(t, got[1].IsHighestRated)
	assert.False(t, got[1].IsMostReviewed)

	single := svc.CompareSuppliers(context.Background(), []string{"Delta Decor"})
	require.Len(t, single, 1)
	assert.False(t, single[0].IsHighestRated)
}

func TestComparisonService_ProductVsSuppliers(t *testing.T) {
	svc := newComparisonService()

	t.Run("compares against priced suppliers", func(t *testing.T) {
		got, err := svc.ProductVsSuppliers(context.Background(), "Steel Bottle")
		require.NoError(t, err)

		assert.Equal(t, "Steel Water Bottle 1L", got.Product.Title)
		assert.Equal(t, 3, got.SupplierCount)
		assert.Equal(t, domain.PriceComparison{
			ProductPrice:     1499,
			AvgSupplierPrice: 485,
			MinSupplierPrice: 450,
			MaxSupplierPrice: 520,
			PotentialSavings: 69.98,
		}, got.PriceComparison)
		assert.InDelta(t, 4.0, got.RatingComparison.AvgSupplierRating, 1e-9)
		assert.InDelta(t, 0.5, got.RatingComparison.RatingDiff, 1e-9)
	})

	t.Run("no suppliers", func(t *testing.T) {
		got, err := svc.ProductVsSuppliers(context.Background(), "Wall Clock")
		require.NoError(t, err)
		assert.NotNil(t, got.Suppliers)
		assert.Zero(t, got.SupplierCount)
		assert.Zero(t, got.PriceComparison.PotentialSavings)
		assert.Zero(t, got.RatingComparison.RatingDiff)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.ProductVsSuppliers(context.Background(), "Nope")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}
