package usecase

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/bluepin/backend/internal/domain"
)

// Search limits
const (
	MinSearchQueryLength = 2
	SearchResultLimit    = 5
)

// CatalogService answers lookups and filters against the current snapshot
type CatalogService struct {
	store  domain.SnapshotStore
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store domain.SnapshotStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger,
	}
}

// GetProduct returns the first product with the identifier
func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.store.Current().ProductByIdentifier(id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %q", err, id)
	}
	return p, nil
}

// FilterProducts filters the current products
func (s *CatalogService) FilterProducts(ctx context.Context, c domain.ProductCriteria) []domain.Product {
	return FilterProducts(s.store.Current().Products(), c)
}

// FilterSuppliers filters the current suppliers
func (s *CatalogService) FilterSuppliers(ctx context.Context, c domain.SupplierCriteria) []domain.Supplier {
	return FilterSuppliers(s.store.Current().Suppliers(), c)
}

// SuppliersForProduct returns the suppliers found for an existing product
func (s *CatalogService) SuppliersForProduct(ctx context.Context, id string) ([]domain.Supplier, error) {
	snap := s.store.Current()
	if _, err := snap.ProductByIdentifier(id); err != nil {
		return nil, fmt.Errorf("%w: %q", err, id)
	}
	suppliers := snap.SuppliersFor(id)
	if suppliers == nil {
		suppliers = []domain.Supplier{}
	}
	return suppliers, nil
}

// FilterOptions lists distinct filter values and numeric ranges
func (s *CatalogService) FilterOptions(ctx context.Context) domain.FilterOptions {
	snap := s.store.Current()

	categories := make(map[string]struct{})
	identifiers := make(map[string]struct{})
	var prices, ratings []float64
	for _, p := range snap.Products() {
		categories[p.Category] = struct{}{}
		identifiers[p.Identifier] = struct{}{}
		if !p.Missing.Has(domain.FieldPrice) {
			prices = append(prices, p.Price)
		}
		if !p.Missing.Has(domain.FieldRating) {
			ratings = append(ratings, p.Rating)
		}
	}

	locations := make(map[string]struct{})
	var supplierPrices []float64
	for _, sup := range snap.Suppliers() {
		if sup.Location != "" {
			locations[sup.Location] = struct{}{}
		}
		supplierPrices = append(supplierPrices, sup.Price)
	}

	ratingRange := domain.PriceRange{Min: 0, Max: 5}
	if len(ratings) > 0 {
		ratingRange = rangeOf(ratings)
	}

	return domain.FilterOptions{
		Categories:     sortedKeys(categories),
		Locations:      sortedKeys(locations),
		Identifiers:    sortedKeys(identifiers),
		PriceRange:     rangeOf(prices),
		RatingRange:    ratingRange,
		SupplierPrices: rangeOf(supplierPrices),
	}
}

// Search matches products by title or identifier and suppliers by name or
// location. Substring hits on products come first in load order, followed by
// titles whose stemmed words cover the query. Queries shorter than
// MinSearchQueryLength return no results.
func (s *CatalogService) Search(ctx context.Context, query string) domain.SearchResults {
	term := NormalizeSearchTerm(query)
	results := domain.SearchResults{
		Query:     term,
		Products:  []domain.Product{},
		Suppliers: []domain.Supplier{},
	}
	if len([]rune(term)) < MinSearchQueryLength {
		return results
	}

	snap := s.store.Current()
	results.Products = searchProducts(snap.Products(), term, SearchResultLimit)
	for _, sup := range snap.Suppliers() {
		if len(results.Suppliers) == SearchResultLimit {
			break
		}
		if containsFold(sup.Name, term) || containsFold(sup.Location, term) {
			results.Suppliers = append(results.Suppliers, sup)
		}
	}
	return results
}

func searchProducts(products []domain.Product, term string, limit int) []domain.Product {
	type scored struct {
		product domain.Product
		score   float64
	}

	var exact []domain.Product
	var near []scored
	queryTokens := tokenize(term)
	for _, p := range products {
		if containsFold(p.Title, term) || containsFold(p.Identifier, term) {
			exact = append(exact, p)
			if len(exact) == limit {
				break
			}
			continue
		}
		if score := tokenMatchScore(queryTokens, tokenize(p.Title)); score >= MinTokenMatchScore {
			near = append(near, scored{product: p, score: score})
		}
	}

	out := make([]domain.Product, 0, limit)
	out = append(out, exact...)
	sort.SliceStable(near, func(i, j int) bool { return near[i].score > near[j].score })
	for _, c := range near {
		if len(out) == limit {
			break
		}
		out = append(out, c.product)
	}
	return out
}

// Status summarizes the current snapshot
func (s *CatalogService) Status(ctx context.Context) domain.SnapshotStatus {
	return s.store.Current().Status()
}

// Reload re-reads all sources. The returned status describes whichever
// snapshot is active afterwards.
func (s *CatalogService) Reload(ctx context.Context) (domain.SnapshotStatus, error) {
	snap, err := s.store.Reload(ctx)
	if snap == nil {
		snap = s.store.Current()
	}
	if err != nil {
		s.logger.Warn("reload failed", zap.Error(err))
		return snap.Status(), fmt.Errorf("reload failed: %w", err)
	}
	return snap.Status(), nil
}

func rangeOf(values []float64) domain.PriceRange {
	if len(values) == 0 {
		return domain.PriceRange{}
	}
	r := domain.PriceRange{Min: values[0], Max: values[0]}
	for _, v := range values[1:] {
		if v < r.Min {
			r.Min = v
		}
		if v > r.Max {
			r.Max = v
		}
	}
	return r
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
