package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpDelivery "github.com/bluepin/backend/internal/delivery/http"
	"github.com/bluepin/backend/internal/infrastructure/cache"
	"github.com/bluepin/backend/internal/infrastructure/sqlite"
	"github.com/bluepin/backend/internal/usecase"
)

const readHeaderTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

// runServe serves the API until ctx is cancelled, then drains in-flight
// requests for at most the configured shutdown timeout
func runServe(ctx context.Context, opts *rootOptions) error {
	a, err := newApp(opts, "stdout")
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	a.logger.Info("starting bluepin backend",
		zap.String("version", httpDelivery.Version),
		zap.String("environment", a.cfg.Server.Environment),
		zap.String("port", a.cfg.Server.Port),
		zap.Int("product_sources", len(a.cfg.Data.ProductSources)),
	)

	snap, err := a.store.Load(ctx)
	if !isExpectedStartupError(err) {
		return fmt.Errorf("load data: %w", err)
	}
	a.logger.Info("data loaded",
		zap.Uint64("generation", snap.Generation()),
		zap.Int("products", snap.ProductCount()),
		zap.Int("suppliers", snap.SupplierCount()),
		zap.Int("warnings", len(snap.Warnings())),
	)

	statsCache := cache.NewMemoryCache()
	defer statsCache.Close()
	limiters := cache.NewMemoryCache()
	defer limiters.Close()

	wishlist, err := sqlite.Open(ctx, a.cfg.Wishlist.DBPath, a.logger)
	if err != nil {
		return fmt.Errorf("open wishlist database: %w", err)
	}
	defer wishlist.Close()

	handler := httpDelivery.NewHandler(httpDelivery.Services{
		Catalog:     usecase.NewCatalogService(a.store, a.logger),
		Analysis:    usecase.NewAnalysisService(a.store, a.metrics, a.logger),
		Aggregation: usecase.NewAggregationService(a.store, statsCache, a.cfg.Cache.TTL, a.logger),
		Comparison:  usecase.NewComparisonService(a.store, a.logger),
		Wishlist:    usecase.NewWishlistService(wishlist, a.store, a.logger),
	}, a.logger)
	router := httpDelivery.SetupRouter(a.cfg, handler, a.metrics, limiters)

	srv := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down", zap.Duration("timeout", a.cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.logger.Info("server stopped")
	return nil
}
