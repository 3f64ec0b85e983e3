package usecase

import (
	"strings"

	"github.com/bluepin/backend/internal/domain"
)

// allValues is the filter value clients send to mean "no filter"
const allValues = "all"

// FilterProducts returns products matching every set criterion, in load order
func FilterProducts(products []domain.Product, c domain.ProductCriteria) []domain.Product {
	search := lowerTrim(c.Search)
	category := strings.TrimSpace(c.Category)
	if strings.EqualFold(category, allValues) {
		category = ""
	}

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if c.MinPrice != nil && p.Price < *c.MinPrice {
			continue
		}
		if c.MaxPrice != nil && p.Price > *c.MaxPrice {
			continue
		}
		if c.MinRating != nil && p.Rating < *c.MinRating {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if search != "" && !containsFold(p.Title, search) && !containsFold(p.Identifier, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterSuppliers returns suppliers matching every set criterion, in load order
func FilterSuppliers(suppliers []domain.Supplier, c domain.SupplierCriteria) []domain.Supplier {
	search := lowerTrim(c.Search)
	location := lowerTrim(c.Location)
	if location == allValues {
		location = ""
	}
	productSearched := strings.TrimSpace(c.ProductSearched)
	if productSearched == allValues {
		productSearched = ""
	}

	out := make([]domain.Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		if c.MinPrice != nil && s.Price < *c.MinPrice {
			continue
		}
		if c.MaxPrice != nil && s.Price > *c.MaxPrice {
			continue
		}
		if c.MinRating != nil && s.Rating < *c.MinRating {
			continue
		}
		if location != "" && !containsFold(s.Location, location) {
			continue
		}
		if productSearched != "" && s.ProductSearched != productSearched {
			continue
		}
		if search != "" && !containsFold(s.Name, search) && !containsFold(s.ListingTitle, search) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// lowerTrim prepares a filter term for containsFold. Inner whitespace is kept
// so a filter matches the text literally.
func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// containsFold reports whether s contains the already-lowercased term
func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}
