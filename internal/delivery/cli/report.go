package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bluepin/backend/internal/domain"
	"github.com/bluepin/backend/internal/usecase"
)

// metricPotential ranks by AI total score rather than a product column
const metricPotential = "potential"

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print overview statistics and the score distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := loadReportApp(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			overview := usecase.NewAggregationService(a.store, nil, 0, a.logger).OverviewStats(ctx)
			dist := usecase.NewAnalysisService(a.store, a.metrics, a.logger).ScoreDistribution(ctx)

			if opts.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"overview":          overview,
					"scoreDistribution": dist,
				})
			}
			return printStats(cmd.OutOrStdout(), overview, dist)
		},
	}
}

func printStats(w io.Writer, o domain.OverviewStats, d domain.ScoreDistribution) error {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "Products\t%d\n", o.TotalProducts)
	fmt.Fprintf(tw, "Suppliers\t%d\n", o.TotalSuppliers)
	fmt.Fprintf(tw, "Avg product rating\t%.2f\n", o.AvgProductRating)
	fmt.Fprintf(tw, "Avg supplier rating\t%.2f\n", o.AvgSupplierRating)
	fmt.Fprintf(tw, "Total reviews\t%d\n", o.TotalReviews)
	fmt.Fprintf(tw, "Total supplier reviews\t%d\n", o.TotalSupplierReviews)
	fmt.Fprintf(tw, "Total sales (millions)\t%.2f\n", o.TotalSalesMillions)
	fmt.Fprintf(tw, "Price range\t%.2f - %.2f\n", o.PriceRange.Min, o.PriceRange.Max)
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "High potential\t%d\n", d.High)
	fmt.Fprintf(tw, "Moderate potential\t%d\n", d.Moderate)
	fmt.Fprintf(tw, "Low potential\t%d\n", d.Low)
	fmt.Fprintf(tw, "Avoid\t%d\n", d.Avoid)
	return tw.Flush()
}

func newScoreCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "score <product-identifier>",
		Short: "Print the AI score breakdown of one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := loadReportApp(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			result, err := usecase.NewAnalysisService(a.store, a.metrics, a.logger).ScoreProduct(ctx, args[0])
			if err != nil {
				return err
			}

			if opts.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return printScore(cmd.OutOrStdout(), result)
		},
	}
}

func printScore(w io.Writer, r domain.ScoreResult) error {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "%s\t%s\n", r.ProductIdentifier, r.ProductTitle)
	for _, line := range r.Breakdown {
		fmt.Fprintf(tw, "  %s\t%s\n", line.Factor, line.Detail)
	}
	fmt.Fprintf(tw, "Total\t%d/%d (%s)\n", r.TotalScore, usecase.MaxTotalScore, r.Potential)
	if r.HasMissingData {
		fmt.Fprintf(tw, "Missing\t%v\n", r.MissingData.Names())
	}
	return tw.Flush()
}

type topOptions struct {
	metric    string
	limit     int
	suppliers bool
}

func newTopCmd(opts *rootOptions) *cobra.Command {
	topOpts := &topOptions{}

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank products or suppliers",
		Long: "Rank products by ratings, reviews, sales, price_low, price_high or potential,\n" +
			"or suppliers (with --suppliers) by rating, reviews or price_low.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := loadReportApp(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			var rows interface{}
			switch {
			case topOpts.suppliers:
				metric := topOpts.metric
				if metric == "" {
					metric = usecase.SupplierMetricRating
				}
				rows, err = usecase.NewAggregationService(a.store, nil, 0, a.logger).TopSuppliers(ctx, metric, topOpts.limit)
			case topOpts.metric == metricPotential:
				rows, err = usecase.NewAnalysisService(a.store, a.metrics, a.logger).TopPotential(ctx, topOpts.limit)
			default:
				metric := topOpts.metric
				if metric == "" {
					metric = usecase.MetricRatings
				}
				rows, err = usecase.NewAggregationService(a.store, nil, 0, a.logger).TopProducts(ctx, metric, topOpts.limit)
			}
			if err != nil {
				return err
			}

			if opts.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			return printTop(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().StringVarP(&topOpts.metric, "metric", "m", "", "ranking metric (default: ratings, or rating with --suppliers)")
	cmd.Flags().IntVarP(&topOpts.limit, "limit", "n", 0, "number of rows (default depends on the metric)")
	cmd.Flags().BoolVar(&topOpts.suppliers, "suppliers", false, "rank suppliers instead of products")
	return cmd
}

func printTop(w io.Writer, rows interface{}) error {
	tw := newTabWriter(w)
	switch rows := rows.(type) {
	case []domain.Product:
		fmt.Fprintln(tw, "#\tIDENTIFIER\tPRICE\tRATING\tREVIEWS\tSALES")
		for i, p := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.1f\t%d\t%.0f\n", i+1, p.Identifier, p.Price, p.Rating, p.ReviewCount, p.MonthlySales)
		}
	case []domain.ScoreResult:
		fmt.Fprintln(tw, "#\tIDENTIFIER\tSCORE\tPOTENTIAL")
		for i, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", i+1, r.ProductIdentifier, r.TotalScore, r.Potential)
		}
	case []domain.SupplierSummary:
		fmt.Fprintln(tw, "#\tSUPPLIER\tRATING\tREVIEWS\tAVG PRICE\tPRODUCTS")
		for i, s := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%.2f\t%d\t%.2f\t%d\n", i+1, s.Name, s.Rating, s.Reviews, s.AvgPrice, s.ProductsSupplied)
		}
	default:
		return fmt.Errorf("unsupported rows %T", rows)
	}
	return tw.Flush()
}
