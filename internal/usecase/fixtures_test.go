package usecase

import (
	"context"
	"time"

	"github.com/bluepin/backend/internal/domain"
)

// fakeStore serves a fixed snapshot and optionally swaps in the next one on reload
type fakeStore struct {
	snap      *domain.Snapshot
	next      *domain.Snapshot
	reloadErr error
}

func (f *fakeStore) Current() *domain.Snapshot {
	return f.snap
}

func (f *fakeStore) Reload(ctx context.Context) (*domain.Snapshot, error) {
	if f.reloadErr != nil {
		return f.snap, f.reloadErr
	}
	if f.next != nil {
		f.snap = f.next
	}
	return f.snap, nil
}

func newFakeStore(products []domain.Product, suppliers []domain.Supplier) *fakeStore {
	return &fakeStore{snap: domain.NewSnapshot(1, time.Now(), products, suppliers, nil)}
}

func missing(fields ...domain.Field) domain.FieldSet {
	var s domain.FieldSet
	for _, f := range fields {
		s = s.With(f)
	}
	return s
}

// fixtureProducts covers two categories, a duplicate identifier and missing fields
func fixtureProducts() []domain.Product {
	return []domain.Product{
		{Identifier: "Steel Bottle", Title: "Steel Water Bottle 1L", Category: "Kitchen", Price: 1499, Rating: 4.5, ReviewCount: 1234, MonthlySales: 700},
		{Identifier: "Glass Jar", Title: "Glass Jar Set", Category: "Kitchen", Price: 349, Rating: 3.9, ReviewCount: 150, MonthlySales: 1200},
		{Identifier: "Table Lamp", Title: "Wooden Table Lamp", Category: "Home Decor", Price: 2999, Rating: 4.1, ReviewCount: 2100, MonthlySales: 3000},
		{Identifier: "Wall Clock", Title: "Wall Clock", Category: "Home Decor", ReviewCount: 0, MonthlySales: 20, Missing: missing(domain.FieldPrice, domain.FieldRating)},
		{Identifier: "Steel Bottle", Title: "Steel Bottle Duplicate", Category: "Kitchen", Price: 999, Rating: 4.5, ReviewCount: 10, Missing: missing(domain.FieldMonthlySales)},
	}
}

func fixtureSuppliers() []domain.Supplier {
	return []domain.Supplier{
		{Name: "Acme Traders", ProductSearched: "Steel Bottle", ListingTitle: "SS Bottle", Price: 450, Rating: 4.2, Reviews: 120, Location: "Mumbai", Phone: "111", Round: 2, Rank: 2},
		{Name: "Beta Metals", ProductSearched: "Steel Bottle", ListingTitle: "Bottle 1L", Price: 520, Rating: 3.8, Reviews: 40, Location: "Delhi", Round: 1, Rank: 1},
		{Name: "Gamma Co", ProductSearched: "Steel Bottle", ListingTitle: "Flask", Location: "Delhi", Round: 2, Rank: 2},
		{Name: "Acme Traders", ProductSearched: "Glass Jar", ListingTitle: "Jar", Price: 120, Rating: 4.0, Reviews: 15, Location: "Mumbai", Phone: "111", Round: 1, Rank: 1},
		{Name: "Delta Decor", ProductSearched: "Table Lamp", ListingTitle: "Lamp", Price: 1800, Rating: 4.6, Reviews: 300, Location: "Jaipur", Round: 1, Rank: 1},
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
