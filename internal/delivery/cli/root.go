// Package cli implements the bluepin command line: the API server plus
// offline reports over the configured data sources.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bluepin/backend/config"
	httpDelivery "github.com/bluepin/backend/internal/delivery/http"
	"github.com/bluepin/backend/internal/domain"
	"github.com/bluepin/backend/internal/infrastructure/catalog"
	"github.com/bluepin/backend/internal/infrastructure/monitoring/logging"
	"github.com/bluepin/backend/internal/infrastructure/monitoring/metrics"
)

// Output formats for report commands
const (
	outputText = "text"
	outputJSON = "json"
)

// rootOptions holds global flags
type rootOptions struct {
	configPath string
	output     string
}

// app holds the components shared by every command
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	store   *catalog.Store
}

// NewRootCommand builds the command tree. Without a subcommand it serves the API.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bluepin",
		Short: "Bluepin product dashboard backend",
		Long: "Bluepin serves product and supplier analytics over scraped catalog tables,\n" +
			"including the AI potential score for every product.",
		Version:       httpDelivery.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != outputText && opts.output != outputJSON {
				return fmt.Errorf("%w: output must be %q or %q", domain.ErrInvalidRequest, outputText, outputJSON)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file path (default: ./config.yaml)")
	pf.StringVarP(&opts.output, "output", "o", outputText, "report output format (text, json)")

	cmd.AddCommand(
		newServeCmd(opts),
		newStatsCmd(opts),
		newScoreCmd(opts),
		newTopCmd(opts),
		newGenerateSuppliersCmd(opts),
	)
	return cmd
}

// Execute runs the command line until it finishes or the process is
// interrupted, and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// newApp loads configuration and builds the logger, metrics and product
// store. The store is empty until the caller loads it.
func newApp(opts *rootOptions, logOutput string) (*app, error) {
	cfg, err := config.LoadFrom(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: []string{logOutput},
	})
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	sources := make([]catalog.Source, len(cfg.Data.ProductSources))
	for i, src := range cfg.Data.ProductSources {
		sources[i] = catalog.Source{Path: src.Path, Category: src.Category}
	}
	loader := catalog.NewLoader(sources, cfg.Data.SupplierSource, logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		store:   catalog.NewStore(loader, m, logger),
	}, nil
}

// loadReportApp builds the app for an offline report. Reports need data, so
// a missing dataset is an error here while the server tolerates it.
func loadReportApp(ctx context.Context, opts *rootOptions) (*app, error) {
	a, err := newApp(opts, "stderr")
	if err != nil {
		return nil, err
	}
	if _, err := a.store.Load(ctx); err != nil {
		_ = a.logger.Sync()
		return nil, fmt.Errorf("load data: %w", err)
	}
	return a, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// isExpectedStartupError reports whether the server may start despite err
func isExpectedStartupError(err error) bool {
	return err == nil || errors.Is(err, domain.ErrNoDataSources)
}
