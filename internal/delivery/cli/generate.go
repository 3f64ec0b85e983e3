package cli

import (
	"fmt"
	"math"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bluepin/backend/internal/domain"
	"github.com/bluepin/backend/internal/infrastructure/catalog"
)

// supplierCities are the locations assigned to generated suppliers
var supplierCities = []string{
	"Mumbai", "Delhi", "Bengaluru", "Chennai", "Kolkata", "Hyderabad",
	"Ahmedabad", "Pune", "Jaipur", "Surat", "Ludhiana", "Moradabad",
}

var listingSuffixes = []string{"Wholesale", "Bulk Pack", "Export Quality", "OEM", "Factory Direct"}

type generateOptions struct {
	out         string
	perProduct  int
	seed        int64
	priceSpread float64
}

func newGenerateSuppliersCmd(opts *rootOptions) *cobra.Command {
	genOpts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate-suppliers",
		Short: "Write a synthetic supplier table for the loaded products",
		Long: "Generate fake suppliers for every loaded product and write them as a supplier\n" +
			"source CSV. Useful for demos and load tests when no scraped supplier data exists.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if genOpts.perProduct < 1 {
				return fmt.Errorf("%w: --per-product must be at least 1", domain.ErrInvalidRequest)
			}
			if genOpts.priceSpread < 0 || genOpts.priceSpread >= 1 {
				return fmt.Errorf("%w: --price-spread must be in [0, 1)", domain.ErrInvalidRequest)
			}
			ctx := cmd.Context()
			a, err := loadReportApp(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			out := genOpts.out
			if out == "" {
				out = a.cfg.Data.SupplierSource
			}

			suppliers := generateSuppliers(gofakeit.New(genOpts.seed), a.store.Current().Products(), genOpts.perProduct, genOpts.priceSpread)
			if err := catalog.WriteSuppliersFile(out, suppliers); err != nil {
				return err
			}

			a.logger.Info("generated suppliers",
				zap.String("path", out),
				zap.Int("suppliers", len(suppliers)),
				zap.Int("products", a.store.Current().ProductCount()),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d suppliers to %s\n", len(suppliers), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&genOpts.out, "out", "", "output CSV path (default: data.supplier_source)")
	cmd.Flags().IntVar(&genOpts.perProduct, "per-product", 3, "suppliers generated per product")
	cmd.Flags().Int64Var(&genOpts.seed, "seed", 0, "random seed (0 picks a random seed)")
	cmd.Flags().Float64Var(&genOpts.priceSpread, "price-spread", 0.4, "maximum relative distance of supplier prices from the product price")
	return cmd
}

// generateSuppliers creates perProduct suppliers for each distinct product
// identifier. Supplier prices undercut or exceed the product price by at most
// spread; products without a price get prices from a generic range.
func generateSuppliers(faker *gofakeit.Faker, products []domain.Product, perProduct int, spread float64) []domain.Supplier {
	seen := make(map[string]bool, len(products))
	suppliers := make([]domain.Supplier, 0, len(products)*perProduct)

	for _, p := range products {
		if seen[p.Identifier] {
			continue
		}
		seen[p.Identifier] = true

		for i := 0; i < perProduct; i++ {
			price := faker.Float64Range(50, 2000)
			if p.Price > 0 {
				price = p.Price * faker.Float64Range(1-spread, 1+spread)
			}
			suppliers = append(suppliers, domain.Supplier{
				Name:            faker.Company(),
				ProductSearched: p.Identifier,
				ListingTitle:    p.Title + " " + faker.RandomString(listingSuffixes),
				Price:           math.Max(1, math.Round(price)),
				Rating:          math.Round(faker.Float64Range(3, 5)*10) / 10,
				Reviews:         faker.Number(0, 500),
				Location:        faker.RandomString(supplierCities),
				Phone:           "+91 " + faker.Numerify("9#########"),
				Round:           faker.Number(1, 3),
			})
		}
	}
	return suppliers
}
