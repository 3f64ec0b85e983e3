package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/bluepin/backend/internal/domain"
	"github.com/bluepin/backend/internal/infrastructure/monitoring/metrics"
)

// Store holds the active snapshot. Readers load the pointer without locking;
// loads are serialized and swap the pointer once complete.
type Store struct {
	loader     *Loader
	metrics    *metrics.Metrics
	logger     *zap.Logger
	current    atomic.Pointer[domain.Snapshot]
	mu         sync.Mutex
	generation uint64
}

// NewStore creates a store serving an empty snapshot until Load is called
func NewStore(loader *Loader, m *metrics.Metrics, logger *zap.Logger) *Store {
	s := &Store{
		loader:  loader,
		metrics: m,
		logger:  logger,
	}
	s.current.Store(domain.EmptySnapshot(0, nil))
	return s
}

// Current returns the active snapshot
func (s *Store) Current() *domain.Snapshot {
	return s.current.Load()
}

// Load performs the startup load. When no product source is readable the
// empty snapshot is installed and domain.ErrNoDataSources returned, so the
// service can still start.
func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	return s.load(ctx, true)
}

// Reload re-reads every source and swaps in the result. On failure the
// previous snapshot stays active and is returned with the error.
func (s *Store) Reload(ctx context.Context) (*domain.Snapshot, error) {
	return s.load(ctx, false)
}

// GetByIdentifier looks up a product in the active snapshot
func (s *Store) GetByIdentifier(id string) (domain.Product, error) {
	return s.Current().ProductByIdentifier(id)
}

func (s *Store) load(ctx context.Context, initial bool) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.generation + 1
	snap, err := s.loader.Load(ctx, next)
	if err != nil {
		s.metrics.ObserveReload(metrics.ReloadFailure, 0, 0)
		if initial && snap != nil && errors.Is(err, domain.ErrNoDataSources) {
			s.generation = next
			s.current.Store(snap)
			s.logger.Error("no product data available, serving empty snapshot", zap.Error(err))
			return snap, err
		}
		s.logger.Error("snapshot load failed, keeping previous snapshot",
			zap.Uint64("generation", s.generation),
			zap.Error(err),
		)
		return s.current.Load(), err
	}

	s.generation = next
	s.current.Store(snap)
	s.metrics.ObserveReload(metrics.ReloadSuccess, snap.ProductCount(), snap.SupplierCount())
	s.logger.Info("snapshot loaded",
		zap.Uint64("generation", next),
		zap.Int("products", snap.ProductCount()),
		zap.Int("suppliers", snap.SupplierCount()),
		zap.Int("warnings", len(snap.Warnings())),
	)
	return snap, nil
}
