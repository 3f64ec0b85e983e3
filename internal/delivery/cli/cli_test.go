package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluepin/backend/internal/domain"
	"github.com/bluepin/backend/internal/infrastructure/catalog"
	"github.com/bluepin/backend/internal/infrastructure/monitoring/logging"
)

const productCSV = "Product Identifier,Title,Price,Ratings,Review,Monthly Sales,Image\n" +
	"Steel Bottle,Steel Water Bottle 1L,\"₹1,499\",4.5 out of 5 stars,\"1,234\",700+ bought in past month,\n" +
	"Glass Jar,Glass Jar Set,₹349,3.9 out of 5 stars,150,1.2K,\n" +
	"Desk Lamp,Desk Lamp,\"₹2,999\",4.1 out of 5 stars,\"2,100\",3K+ bought in past month,\n"

const supplierCSV = "Supplier Name,Product Searched,Listing Title,Price,Rating,Reviews,Location,Contact Phone,Supplier Round\n" +
	"Acme Traders,Steel Bottle,Bottle,₹ 450/Piece,4.2,120,Mumbai,999,1\n" +
	"Beta Metals,Steel Bottle,Bottle,₹ 520/Piece,3.8,40,Delhi,888,2\n"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// writeConfig writes a config file over fixture tables and returns its path
func writeConfig(t *testing.T, productPath string) string {
	t.Helper()
	dir := t.TempDir()
	if productPath == "" {
		productPath = filepath.Join(dir, "products.csv")
		require.NoError(t, os.WriteFile(productPath, []byte(productCSV), 0o644))
	}
	supplierPath := filepath.Join(dir, "suppliers.csv")
	require.NoError(t, os.WriteFile(supplierPath, []byte(supplierCSV), 0o644))

	cfg := "server:\n  environment: test\n  port: \"0\"\n" +
		"data:\n  product_sources:\n    - path: " + productPath + "\n      category: Kitchen\n" +
		"  supplier_source: " + supplierPath + "\n" +
		"log:\n  level: error\n" +
		"wishlist:\n  db_path: " + filepath.Join(dir, "bluepin.db") + "\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

// run executes the root command with args and returns its standard output
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "bluepin", cmd.Use)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("output"))

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"serve", "stats", "score", "top", "generate-suppliers"} {
		assert.Contains(t, names, want)
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	_, err := run(t, "--config", writeConfig(t, ""), "-o", "xml", "stats")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestStatsCommand(t *testing.T) {
	cfg := writeConfig(t, "")

	t.Run("text", func(t *testing.T) {
		out, err := run(t, "--config", cfg, "stats")
		require.NoError(t, err)
		assert.Regexp(t, `Products\s+3`, out)
		assert.Regexp(t, `Suppliers\s+2`, out)
		assert.Regexp(t, `High potential\s+2`, out)
		assert.Regexp(t, `Low potential\s+1`, out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "--config", cfg, "-o", "json", "stats")
		require.NoError(t, err)

		var report struct {
			Overview          domain.OverviewStats     `json:"overview"`
			ScoreDistribution domain.ScoreDistribution `json:"scoreDistribution"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, 3, report.Overview.TotalProducts)
		assert.Equal(t, 3, report.ScoreDistribution.Total)
	})
}

func TestScoreCommand(t *testing.T) {
	cfg := writeConfig(t, "")

	out, err := run(t, "--config", cfg, "score", "Steel Bottle")
	require.NoError(t, err)
	assert.Contains(t, out, "88/100 (High Potential)")
	assert.Contains(t, out, "Score: 25/25")

	_, err = run(t, "--config", cfg, "score", "Nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = run(t, "--config", cfg, "score")
	assert.Error(t, err)
}

func TestTopCommand(t *testing.T) {
	cfg := writeConfig(t, "")

	testCases := []struct {
		name  string
		args  []string
		first string
		rows  int
	}{
		{name: "default metric", args: []string{"top"}, first: "Steel Bottle", rows: 3},
		{name: "cheapest", args: []string{"top", "-m", "price_low", "-n", "1"}, first: "Glass Jar", rows: 1},
		{name: "potential", args: []string{"top", "--metric", "potential"}, first: "Steel Bottle", rows: 3},
		{name: "suppliers", args: []string{"top", "--suppliers", "-m", "reviews"}, first: "Acme Traders", rows: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, append([]string{"--config", cfg}, tc.args...)...)
			require.NoError(t, err)

			lines := strings.Split(strings.TrimSpace(out), "\n")
			require.Len(t, lines, tc.rows+1, out)
			assert.Contains(t, lines[1], tc.first)
		})
	}

	t.Run("unknown metric", func(t *testing.T) {
		_, err := run(t, "--config", cfg, "top", "-m", "popularity")
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}

func TestReportWithoutData(t *testing.T) {
	cfg := writeConfig(t, filepath.Join(t.TempDir(), "missing.csv"))

	_, err := run(t, "--config", cfg, "stats")
	assert.ErrorIs(t, err, domain.ErrNoDataSources)
}

func TestGenerateSuppliersCommand(t *testing.T) {
	cfg := writeConfig(t, "")
	out := filepath.Join(t.TempDir(), "generated", "suppliers.csv")

	stdout, err := run(t, "--config", cfg, "generate-suppliers", "--out", out, "--per-product", "2", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote 6 suppliers")

	products := filepath.Join(t.TempDir(), "p.csv")
	require.NoError(t, os.WriteFile(products, []byte(productCSV), 0o644))
	snap, err := catalog.NewLoader([]catalog.Source{{Path: products}}, out, logging.NewNop()).Load(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, snap.Suppliers(), 6)
	assert.Len(t, snap.SuppliersFor("Glass Jar"), 2)

	t.Run("rejects bad flags", func(t *testing.T) {
		_, err := run(t, "--config", cfg, "generate-suppliers", "--per-product", "0")
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)

		_, err = run(t, "--config", cfg, "generate-suppliers", "--price-spread", "1.5")
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}

func TestServeStopsWithContext(t *testing.T) {
	cfg := writeConfig(t, "")
	db := filepath.Join(filepath.Dir(cfg), "bluepin.db")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--config", cfg, "serve"})
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(db)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}

func TestGenerateSuppliers(t *testing.T) {
	products := []domain.Product{
		{Identifier: "A", Title: "Alpha", Price: 1000},
		{Identifier: "A", Title: "Alpha duplicate", Price: 10},
		{Identifier: "B", Title: "Beta"},
	}

	suppliers := generateSuppliers(gofakeit.New(42), products, 4, 0.25)
	require.Len(t, suppliers, 8)

	for _, s := range suppliers {
		assert.NotEmpty(t, s.Name)
		assert.GreaterOrEqual(t, s.Rating, 3.0)
		assert.LessOrEqual(t, s.Rating, 5.0)
		assert.GreaterOrEqual(t, s.Round, 1)
		assert.LessOrEqual(t, s.Round, 3)
		assert.Contains(t, supplierCities, s.Location)
		if s.ProductSearched == "A" {
			assert.InDelta(t, 1000, s.Price, 251)
			assert.True(t, strings.HasPrefix(s.ListingTitle, "Alpha "))
		} else {
			assert.Positive(t, s.Price)
		}
	}

	again := generateSuppliers(gofakeit.New(42), products, 4, 0.25)
	assert.Equal(t, suppliers, again)
}
