package catalog

import (
	"sort"

	"github.com/bluepin/backend/internal/domain"
	"github.com/bluepin/backend/internal/usecase"
)

// Product source columns
const (
	colIdentifier   = "Product Identifier"
	colTitle        = "Title"
	colPrice        = "Price"
	colRatings      = "Ratings"
	colReview       = "Review"
	colMonthlySales = "Monthly Sales"
	colImage        = "Image"
)

// Supplier source columns
const (
	colSupplierName    = "Supplier Name"
	colProductSearched = "Product Searched"
	colListingTitle    = "Listing Title"
	colSupplierPrice   = "Price"
	colSupplierRating  = "Rating"
	colSupplierReviews = "Reviews"
	colLocation        = "Location"
	colContactPhone    = "Contact Phone"
	colSupplierRound   = "Supplier Round"
)

// mapProducts normalizes every row that has an identifier or a title; rows with
// neither are counted as skipped
func mapProducts(t *table, category string) (products []domain.Product, skipped int) {
	products = make([]domain.Product, 0, len(t.rows))
	for _, row := range t.rows {
		rec := usecase.ProductRecord{
			Identifier:   t.cell(row, colIdentifier),
			Title:        t.cell(row, colTitle),
			Price:        t.cell(row, colPrice),
			Ratings:      t.cell(row, colRatings),
			Review:       t.cell(row, colReview),
			MonthlySales: t.cell(row, colMonthlySales),
			Image:        t.cell(row, colImage),
		}
		p := usecase.NormalizeProduct(rec, category)
		if p.Identifier == "" {
			skipped++
			continue
		}
		products = append(products, p)
	}
	return products, skipped
}

// mapSuppliers normalizes every named supplier row and assigns ranks
func mapSuppliers(t *table) []domain.Supplier {
	suppliers := make([]domain.Supplier, 0, len(t.rows))
	for _, row := range t.rows {
		s := usecase.NormalizeSupplier(usecase.SupplierRecord{
			Name:            t.cell(row, colSupplierName),
			ProductSearched: t.cell(row, colProductSearched),
			ListingTitle:    t.cell(row, colListingTitle),
			Price:           t.cell(row, colSupplierPrice),
			Rating:          t.cell(row, colSupplierRating),
			Reviews:         t.cell(row, colSupplierReviews),
			Location:        t.cell(row, colLocation),
			Phone:           t.cell(row, colContactPhone),
			Round:           t.cell(row, colSupplierRound),
		})
		if s.Name == "" {
			continue
		}
		suppliers = append(suppliers, s)
	}
	assignSupplierRanks(suppliers)
	return suppliers
}

// assignSupplierRanks dense-ranks suppliers by round within each searched product
func assignSupplierRanks(suppliers []domain.Supplier) {
	rounds := make(map[string][]int)
	for _, s := range suppliers {
		rounds[s.ProductSearched] = append(rounds[s.ProductSearched], s.Round)
	}

	ranks := make(map[string]map[int]int, len(rounds))
	for product, rs := range rounds {
		sort.Ints(rs)
		byRound := make(map[int]int, len(rs))
		rank := 0
		for i, r := range rs {
			if i == 0 || r != rs[i-1] {
				rank++
				byRound[r] = rank
			}
		}
		ranks[product] = byRound
	}

	for i := range suppliers {
		suppliers[i].Rank = ranks[suppliers[i].ProductSearched][suppliers[i].Round]
	}
}
