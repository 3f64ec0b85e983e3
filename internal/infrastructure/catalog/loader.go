package catalog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bluepin/backend/internal/domain"
	"github.com/bluepin/backend/internal/usecase"
)

// Source is one product table; its rows share a category
type Source struct {
	Path string
	// Category overrides the name derived from the file name
	Category string
}

// Loader reads product and supplier sources into snapshots
type Loader struct {
	productSources []Source
	supplierSource string
	logger         *zap.Logger
}

// NewLoader creates a loader over the given sources. supplierSource may be empty.
func NewLoader(productSources []Source, supplierSource string, logger *zap.Logger) *Loader {
	return &Loader{
		productSources: productSources,
		supplierSource: supplierSource,
		logger:         logger,
	}
}

// Load reads every source in order. Unreadable sources are skipped and
// recorded as warnings. When no product source can be read it returns an
// empty snapshot together with domain.ErrNoDataSources.
func (l *Loader) Load(ctx context.Context, generation uint64) (*domain.Snapshot, error) {
	var (
		products []domain.Product
		warnings []string
		readable int
	)

	warn := func(msg string, fields ...zap.Field) {
		warnings = append(warnings, msg)
		l.logger.Warn(msg, fields...)
	}

	for _, src := range l.productSources {
		t, err := readTable(ctx, src.Path)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			warn(fmt.Sprintf("skipped product source: %v", err), zap.String("path", src.Path))
			continue
		}
		if !t.has(colTitle) {
			warn(fmt.Sprintf("skipped product source %s: no %q column", src.Path, colTitle), zap.String("path", src.Path))
			continue
		}

		category := src.Category
		if category == "" {
			category = usecase.CategoryFromPath(src.Path)
		}
		rows, skipped := mapProducts(t, category)
		if skipped > 0 {
			warn(fmt.Sprintf("%s: skipped %d rows without an identifier or title", src.Path, skipped), zap.String("path", src.Path))
		}
		products = append(products, rows...)
		readable++

		l.logger.Debug("product source loaded",
			zap.String("path", src.Path),
			zap.String("category", category),
			zap.Int("rows", len(rows)),
		)
	}

	if readable == 0 {
		return domain.EmptySnapshot(generation, warnings), fmt.Errorf("%w: %d configured", domain.ErrNoDataSources, len(l.productSources))
	}

	var suppliers []domain.Supplier
	if l.supplierSource != "" {
		t, err := readTable(ctx, l.supplierSource)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			warn(fmt.Sprintf("skipped supplier source: %v", err), zap.String("path", l.supplierSource))
		default:
			suppliers = mapSuppliers(t)
		}
	}

	return domain.NewSnapshot(generation, time.Now(), products, suppliers, warnings), nil
}
