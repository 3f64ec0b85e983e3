package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bluepin/backend/internal/domain"
)

// ComparisonService compares products and suppliers side by side
type ComparisonService struct {
	store  domain.SnapshotStore
	logger *zap.Logger
}

// NewComparisonService creates a new comparison service
func NewComparisonService(store domain.SnapshotStore, logger *zap.Logger) *ComparisonService {
	return &ComparisonService{
		store:  store,
		logger: logger,
	}
}

// CompareProducts returns every product whose identifier is listed, in load
// order, with its AI score. Best-of flags are set only when comparing two or more.
func (s *ComparisonService) CompareProducts(ctx context.Context, ids []string) []domain.ProductComparison {
	wanted := toSet(ids)
	out := make([]domain.ProductComparison, 0, len(ids))
	for _, p := range s.store.Current().Products() {
		if _, ok := wanted[p.Identifier]; !ok {
			continue
		}
		score := ScoreProduct(p)
		out = append(out, domain.ProductComparison{
			Product:     p,
			AIScore:     score.TotalScore,
			AIPotential: score.Potential,
		})
	}
	if len(out) < 2 {
		return out
	}

	var (
		minPrice, maxRating float64
		maxReviews, maxAI   int
		priced, rated       bool
	)
	for i, c := range out {
		if !c.Missing.Has(domain.FieldPrice) && (!priced || c.Price < minPrice) {
			minPrice, priced = c.Price, true
		}
		if !c.Missing.Has(domain.FieldRating) && (!rated || c.Rating > maxRating) {
			maxRating, rated = c.Rating, true
		}
		if i == 0 || c.ReviewCount > maxReviews {
			maxReviews = c.ReviewCount
		}
		if i == 0 || c.AIScore > maxAI {
			maxAI = c.AIScore
		}
	}
	for i := range out {
		c := &out[i]
		c.IsCheapest = priced && !c.Missing.Has(domain.FieldPrice) && c.Price == minPrice
		c.IsHighestRated = rated && !c.Missing.Has(domain.FieldRating) && c.Rating == maxRating
		c.IsMostReviewed = c.ReviewCount == maxReviews
		c.IsBestAIScore = c.AIScore == maxAI
	}
	return out
}

// CompareSuppliers aggregates the listed suppliers by name, sorted by name.
// Best-of flags are set only when comparing two or more.
func (s *ComparisonService) CompareSuppliers(ctx context.Context, names []string) []domain.SupplierComparison {
	wanted := toSet(names)
	var rows []domain.Supplier
	for _, sup := range s.store.Current().Suppliers() {
		if _, ok := wanted[sup.Name]; ok {
			rows = append(rows, sup)
		}
	}

	summaries := summarizeSuppliers(rows)
	out := make([]domain.SupplierComparison, len(summaries))
	var maxRating float64
	var maxReviews int
	for i, sum := range summaries {
		out[i] = domain.SupplierComparison{
			Name:         sum.Name,
			AvgRating:    sum.Rating,
			TotalReviews: sum.Reviews,
			Location:     sum.Location,
			Phone:        sum.Phone,
			ProductCount: sum.ProductsSupplied,
		}
		if sum.Rating > maxRating {
			maxRating = sum.Rating
		}
		if sum.Reviews > maxReviews {
			maxReviews = sum.Reviews
		}
	}
	if len(out) < 2 {
		return out
	}
	for i := range out {
		out[i].IsHighestRated = out[i].AvgRating == maxRating
		out[i].IsMostReviewed = out[i].TotalReviews == maxReviews
	}
	return out
}

// ProductVsSuppliers compares a product's price and rating against the
// suppliers found for it. Supplier rows without a price or rating are left out
// of the respective averages.
func (s *ComparisonService) ProductVsSuppliers(ctx context.Context, id string) (domain.ProductSupplierComparison, error) {
	snap := s.store.Current()
	p, err := snap.ProductByIdentifier(id)
	if err != nil {
		return domain.ProductSupplierComparison{}, fmt.Errorf("%w: %q", err, id)
	}

	suppliers := snap.SuppliersFor(id)
	if suppliers == nil {
		suppliers = []domain.Supplier{}
	}
	result := domain.ProductSupplierComparison{
		Product:       p,
		Suppliers:     suppliers,
		SupplierCount: len(suppliers),
	}

	var prices []float64
	var priceSum, ratingSum float64
	var rated int
	for _, sup := range suppliers {
		if sup.Price > 0 {
			prices = append(prices, sup.Price)
			priceSum += sup.Price
		}
		if sup.Rating > 0 {
			ratingSum += sup.Rating
			rated++
		}
	}

	pc := domain.PriceComparison{ProductPrice: p.Price}
	if len(prices) > 0 {
		r := rangeOf(prices)
		pc.MinSupplierPrice = r.Min
		pc.MaxSupplierPrice = r.Max
		pc.AvgSupplierPrice = round2(priceSum / float64(len(prices)))
		if p.Price > 0 && r.Min < p.Price {
			pc.PotentialSavings = round2((p.Price - r.Min) / p.Price * 100)
		}
	}
	result.PriceComparison = pc

	rc := domain.RatingComparison{
		ProductRating:     p.Rating,
		AvgSupplierRating: round2(mean(ratingSum, rated)),
	}
	if rc.ProductRating > 0 && rc.AvgSupplierRating > 0 {
		rc.RatingDiff = round2(rc.ProductRating - rc.AvgSupplierRating)
	}
	result.RatingComparison = rc

	return result, nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
