package usecase

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/bluepin/backend/internal/domain"
	"github.com/bluepin/backend/internal/infrastructure/monitoring/metrics"
)

// DefaultTopPotentialLimit is used when no limit is requested
const DefaultTopPotentialLimit = 10

// AnalysisService scores products from the current snapshot. Scores are
// computed per request and never stored.
type AnalysisService struct {
	store   domain.SnapshotStore
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewAnalysisService creates a new analysis service. m may be nil.
func NewAnalysisService(store domain.SnapshotStore, m *metrics.Metrics, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		store:   store,
		metrics: m,
		logger:  logger,
	}
}

// ScoreProduct scores the product with the given identifier
func (s *AnalysisService) ScoreProduct(ctx context.Context, id string) (domain.ScoreResult, error) {
	p, err := s.store.Current().ProductByIdentifier(id)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("%w: %q", err, id)
	}

	result := ScoreProduct(p)
	s.metrics.AddScored(1)
	if result.HasMissingData {
		s.logger.Debug("scored product with missing data",
			zap.String("product", id),
			zap.Strings("missing", result.MissingData.Names()),
		)
	}
	return result, nil
}

// ScoreAll scores every product of one snapshot, in load order
func (s *AnalysisService) ScoreAll(ctx context.Context) []domain.ScoreResult {
	products := s.store.Current().Products()
	results := make([]domain.ScoreResult, len(products))
	for i, p := range products {
		results[i] = ScoreProduct(p)
	}
	s.metrics.AddScored(len(results))
	return results
}

// ScoreDistribution tallies every product by tier. Total equals the product count.
func (s *AnalysisService) ScoreDistribution(ctx context.Context) domain.ScoreDistribution {
	var dist domain.ScoreDistribution
	for _, r := range s.ScoreAll(ctx) {
		dist.Add(r.Tier)
	}
	return dist
}

// TopPotential returns the highest scoring products, ties kept in load order
func (s *AnalysisService) TopPotential(ctx context.Context, limit int) ([]domain.ScoreResult, error) {
	limit, err := resolveLimit(limit, DefaultTopPotentialLimit)
	if err != nil {
		return nil, err
	}

	results := s.ScoreAll(ctx)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
