package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bluepin/backend/internal/domain"
)

var supplierHeader = []string{
	colSupplierName,
	colProductSearched,
	colListingTitle,
	colSupplierPrice,
	colSupplierRating,
	colSupplierReviews,
	colLocation,
	colContactPhone,
	colSupplierRound,
}

// WriteSuppliers writes suppliers as a supplier source CSV that Load reads back.
// Rank is not written; it is recomputed on load.
func WriteSuppliers(w io.Writer, suppliers []domain.Supplier) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(supplierHeader); err != nil {
		return err
	}
	for _, s := range suppliers {
		price := ""
		if s.Price > 0 {
			price = "₹" + strconv.FormatFloat(s.Price, 'f', -1, 64) + "/Piece"
		}
		rating := ""
		if s.Rating > 0 {
			rating = strconv.FormatFloat(s.Rating, 'f', 1, 64)
		}
		record := []string{
			s.Name,
			s.ProductSearched,
			s.ListingTitle,
			price,
			rating,
			strconv.Itoa(s.Reviews),
			s.Location,
			s.Phone,
			strconv.Itoa(s.Round),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSuppliersFile writes the supplier CSV to path, creating parent directories
func WriteSuppliersFile(path string, suppliers []domain.Supplier) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSuppliers(f, suppliers); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
