package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/bluepin/backend/internal/domain"
)

// Top product metrics. MetricRating is accepted as an alias of MetricRatings.
const (
	MetricRatings   = "ratings"
	MetricRating    = "rating"
	MetricReviews   = "reviews"
	MetricSales     = "sales"
	MetricPriceLow  = "price_low"
	MetricPriceHigh = "price_high"
)

// Top supplier metrics
const (
	SupplierMetricRating   = "rating"
	SupplierMetricReviews  = "reviews"
	SupplierMetricPriceLow = "price_low"
)

// DefaultTopLimit is used when no limit is requested
const DefaultTopLimit = 5

// Chart truncation
const (
	chartLocationLimit = 10
	chartCategoryLimit = 8
)

type productOrder struct {
	field  domain.Field
	before func(a, b domain.Product) bool
}

var productOrders = map[string]productOrder{
	MetricRatings:   {domain.FieldRating, byRatingDesc},
	MetricRating:    {domain.FieldRating, byRatingDesc},
	MetricReviews:   {domain.FieldReviews, func(a, b domain.Product) bool { return a.ReviewCount > b.ReviewCount }},
	MetricSales:     {domain.FieldMonthlySales, func(a, b domain.Product) bool { return a.MonthlySales > b.MonthlySales }},
	MetricPriceLow:  {domain.FieldPrice, func(a, b domain.Product) bool { return a.Price < b.Price }},
	MetricPriceHigh: {domain.FieldPrice, func(a, b domain.Product) bool { return a.Price > b.Price }},
}

func byRatingDesc(a, b domain.Product) bool { return a.Rating > b.Rating }

var supplierOrders = map[string]func(a, b domain.SupplierSummary) bool{
	SupplierMetricRating:   func(a, b domain.SupplierSummary) bool { return a.Rating > b.Rating },
	SupplierMetricReviews:  func(a, b domain.SupplierSummary) bool { return a.Reviews > b.Reviews },
	SupplierMetricPriceLow: func(a, b domain.SupplierSummary) bool { return a.AvgPrice < b.AvgPrice },
}

// AggregationService computes dashboard statistics over the current snapshot
type AggregationService struct {
	store    domain.SnapshotStore
	cache    domain.CacheRepository
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewAggregationService creates a new aggregation service. Whole-snapshot
// statistics are cached per snapshot generation when cache is non-nil.
func NewAggregationService(store domain.SnapshotStore, cache domain.CacheRepository, cacheTTL time.Duration, logger *zap.Logger) *AggregationService {
	return &AggregationService{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// cached returns the value computed for this snapshot generation
func (s *AggregationService) cached(ctx context.Context, name string, snap *domain.Snapshot, compute func() interface{}) interface{} {
	if s.cache == nil {
		return compute()
	}

	key := fmt.Sprintf("stats:%s:%d", name, snap.Generation())
	if v, err := s.cache.Get(ctx, key); err == nil {
		return v
	}

	v := compute()
	if err := s.cache.Set(ctx, key, v, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache statistics", zap.String("key", key), zap.Error(err))
	}
	return v
}

// OverviewStats summarizes the whole snapshot. An empty snapshot yields zeros.
func (s *AggregationService) OverviewStats(ctx context.Context) domain.OverviewStats {
	snap := s.store.Current()
	return s.cached(ctx, "overview", snap, func() interface{} {
		return computeOverview(snap)
	}).(domain.OverviewStats)
}

func computeOverview(snap *domain.Snapshot) domain.OverviewStats {
	var (
		stats     domain.OverviewStats
		ratingSum float64
		rated     int
		priceSum  float64
		prices    []float64
	)

	for _, p := range snap.Products() {
		if !p.Missing.Has(domain.FieldRating) {
			ratingSum += p.Rating
			rated++
		}
		if !p.Missing.Has(domain.FieldPrice) {
			priceSum += p.Price
			prices = append(prices, p.Price)
		}
		stats.TotalReviews += p.ReviewCount
	}

	names := make(map[string]struct{})
	var supplierRatingSum float64
	var supplierRated int
	for _, sup := range snap.Suppliers() {
		names[sup.Name] = struct{}{}
		if sup.Rating > 0 {
			supplierRatingSum += sup.Rating
			supplierRated++
		}
		stats.TotalSupplierReviews += sup.Reviews
	}

	stats.TotalProducts = snap.ProductCount()
	stats.TotalSuppliers = len(names)
	stats.AvgProductRating = mean(ratingSum, rated)
	stats.AvgSupplierRating = mean(supplierRatingSum, supplierRated)
	stats.TotalSalesMillions = priceSum / 1e6
	stats.PriceRange = rangeOf(prices)
	return stats
}

// TopProducts returns up to limit products ranked by metric. Products missing
// the ranked field are left out; ties keep load order.
func (s *AggregationService) TopProducts(ctx context.Context, metric string, limit int) ([]domain.Product, error) {
	order, ok := productOrders[metric]
	if !ok {
		return nil, fmt.Errorf("%w: unknown metric %q", domain.ErrInvalidRequest, metric)
	}
	limit, err := resolveLimit(limit, DefaultTopLimit)
	if err != nil {
		return nil, err
	}

	ranked := make([]domain.Product, 0)
	for _, p := range s.store.Current().Products() {
		if !p.Missing.Has(order.field) {
			ranked = append(ranked, p)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return order.before(ranked[i], ranked[j])
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// TopSuppliers returns up to limit suppliers, aggregated by name, ranked by
// metric. Suppliers without any price are left out of price rankings.
func (s *AggregationService) TopSuppliers(ctx context.Context, metric string, limit int) ([]domain.SupplierSummary, error) {
	before, ok := supplierOrders[metric]
	if !ok {
		return nil, fmt.Errorf("%w: unknown metric %q", domain.ErrInvalidRequest, metric)
	}
	limit, err := resolveLimit(limit, DefaultTopLimit)
	if err != nil {
		return nil, err
	}

	summaries := summarizeSuppliers(s.store.Current().Suppliers())
	if metric == SupplierMetricPriceLow {
		priced := summaries[:0]
		for _, sum := range summaries {
			if sum.AvgPrice > 0 {
				priced = append(priced, sum)
			}
		}
		summaries = priced
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return before(summaries[i], summaries[j])
	})
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// summarizeSuppliers groups rows by supplier name, sorted by name. Ratings and
// prices are averaged over rows that carry them.
func summarizeSuppliers(suppliers []domain.Supplier) []domain.SupplierSummary {
	type acc struct {
		summary             domain.SupplierSummary
		ratingSum, priceSum float64
		rated, priced       int
	}

	groups := make(map[string]*acc)
	for _, sup := range suppliers {
		a, ok := groups[sup.Name]
		if !ok {
			a = &acc{summary: domain.SupplierSummary{
				Name:     sup.Name,
				Location: sup.Location,
				Phone:    sup.Phone,
			}}
			groups[sup.Name] = a
		}
		a.summary.ProductsSupplied++
		a.summary.Reviews += sup.Reviews
		if sup.Rating > 0 {
			a.ratingSum += sup.Rating
			a.rated++
		}
		if sup.Price > 0 {
			a.priceSum += sup.Price
			a.priced++
		}
	}

	out := make([]domain.SupplierSummary, 0, len(groups))
	for _, a := range groups {
		a.summary.Rating = mean(a.ratingSum, a.rated)
		a.summary.AvgPrice = mean(a.priceSum, a.priced)
		out = append(out, a.summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CategoryBreakdown aggregates products per category, sorted by category
func (s *AggregationService) CategoryBreakdown(ctx context.Context) []domain.CategoryStats {
	snap := s.store.Current()
	return s.cached(ctx, "categories", snap, func() interface{} {
		return computeCategoryBreakdown(snap.Products())
	}).([]domain.CategoryStats)
}

func computeCategoryBreakdown(products []domain.Product) []domain.CategoryStats {
	type acc struct {
		stats               domain.CategoryStats
		priceSum, ratingSum float64
		priced, rated       int
	}

	groups := make(map[string]*acc)
	for _, p := range products {
		a, ok := groups[p.Category]
		if !ok {
			a = &acc{stats: domain.CategoryStats{Category: p.Category}}
			groups[p.Category] = a
		}
		a.stats.Count++
		a.stats.TotalReviews += p.ReviewCount
		if !p.Missing.Has(domain.FieldPrice) {
			if a.priced == 0 || p.Price < a.stats.MinPrice {
				a.stats.MinPrice = p.Price
			}
			if p.Price > a.stats.MaxPrice {
				a.stats.MaxPrice = p.Price
			}
			a.priceSum += p.Price
			a.priced++
		}
		if !p.Missing.Has(domain.FieldRating) {
			a.ratingSum += p.Rating
			a.rated++
		}
	}

	out := make([]domain.CategoryStats, 0, len(groups))
	for _, a := range groups {
		a.stats.AvgPrice = round2(mean(a.priceSum, a.priced))
		a.stats.AvgRating = round2(mean(a.ratingSum, a.rated))
		a.stats.MinPrice = round2(a.stats.MinPrice)
		a.stats.MaxPrice = round2(a.stats.MaxPrice)
		out = append(out, a.stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// PriceDistribution buckets present prices into equal-width bins
func (s *AggregationService) PriceDistribution(ctx context.Context, bins int) (domain.Histogram, error) {
	bins, err := resolveLimit(bins, DefaultPriceBins)
	if err != nil {
		return domain.Histogram{}, err
	}

	var prices []float64
	for _, p := range s.store.Current().Products() {
		if !p.Missing.Has(domain.FieldPrice) {
			prices = append(prices, p.Price)
		}
	}
	return equalWidthHistogram(prices, bins), nil
}

// RatingDistribution buckets present ratings into fixed bands
func (s *AggregationService) RatingDistribution(ctx context.Context) domain.Histogram {
	var ratings []float64
	for _, p := range s.store.Current().Products() {
		if !p.Missing.Has(domain.FieldRating) {
			ratings = append(ratings, p.Rating)
		}
	}
	return cutHistogram(ratings, ratingDistributionEdges, ratingDistributionLabels, false)
}

// LocationStats aggregates suppliers per location, sorted by location
func (s *AggregationService) LocationStats(ctx context.Context) []domain.LocationStats {
	type acc struct {
		stats               domain.LocationStats
		names               map[string]struct{}
		priceSum, ratingSum float64
		priced, rated       int
	}

	groups := make(map[string]*acc)
	for _, sup := range s.store.Current().Suppliers() {
		if sup.Location == "" {
			continue
		}
		a, ok := groups[sup.Location]
		if !ok {
			a = &acc{
				stats: domain.LocationStats{Location: sup.Location},
				names: make(map[string]struct{}),
			}
			groups[sup.Location] = a
		}
		a.names[sup.Name] = struct{}{}
		a.stats.TotalReviews += sup.Reviews
		if sup.Price > 0 {
			a.priceSum += sup.Price
			a.priced++
		}
		if sup.Rating > 0 {
			a.ratingSum += sup.Rating
			a.rated++
		}
	}

	out := make([]domain.LocationStats, 0, len(groups))
	for _, a := range groups {
		a.stats.SupplierCount = len(a.names)
		a.stats.AvgPrice = round2(mean(a.priceSum, a.priced))
		a.stats.AvgRating = round2(mean(a.ratingSum, a.rated))
		out = append(out, a.stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}

// ProductCharts builds rating, category and review series for filtered products.
// Missing ratings and reviews count in the lowest bucket.
func (s *AggregationService) ProductCharts(ctx context.Context, c domain.ProductCriteria) domain.ProductCharts {
	filtered := FilterProducts(s.store.Current().Products(), c)

	ratings := make([]float64, len(filtered))
	reviews := make([]float64, len(filtered))
	categories := make([]string, len(filtered))
	for i, p := range filtered {
		ratings[i] = p.Rating
		reviews[i] = float64(p.ReviewCount)
		categories[i] = p.Category
	}

	return domain.ProductCharts{
		Ratings:    cutHistogram(ratings, chartRatingEdges, chartRatingLabels, true),
		Categories: countByLabel(categories, 0),
		Reviews:    cutHistogram(reviews, reviewEdges, reviewLabels, true),
		Count:      len(filtered),
	}
}

// SupplierCharts builds location, supplied-category and price-by-rating series
// for filtered suppliers
func (s *AggregationService) SupplierCharts(ctx context.Context, c domain.SupplierCriteria) domain.SupplierCharts {
	snap := s.store.Current()
	filtered := FilterSuppliers(snap.Suppliers(), c)

	locations := make([]string, 0, len(filtered))
	searched := make(map[string]struct{})
	priceSums := make([]float64, len(supplierRatingLabels))
	priceCounts := make([]int, len(supplierRatingLabels))
	for _, sup := range filtered {
		if sup.Location != "" {
			locations = append(locations, sup.Location)
		}
		searched[sup.ProductSearched] = struct{}{}
		if sup.Rating > 0 && sup.Price > 0 {
			if i := cutIndex(sup.Rating, supplierRatingEdges, true); i >= 0 {
				priceSums[i] += sup.Price
				priceCounts[i]++
			}
		}
	}

	var categories []string
	for _, p := range snap.Products() {
		if _, ok := searched[p.Identifier]; ok {
			categories = append(categories, p.Category)
		}
	}

	avgPrices := make([]float64, len(supplierRatingLabels))
	for i := range avgPrices {
		avgPrices[i] = round2(mean(priceSums[i], priceCounts[i]))
	}

	return domain.SupplierCharts{
		Locations:   countByLabel(locations, chartLocationLimit),
		Categories:  countByLabel(categories, chartCategoryLimit),
		RatingBands: supplierRatingLabels,
		AvgPrice:    avgPrices,
		Count:       len(filtered),
	}
}
