package usecase

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bluepin/backend/internal/domain"
)

// Compiled regex patterns for cell normalization
var (
	// Signed decimal, used for prices once separators are gone
	priceNumberRegex = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

	// First decimal or integer in a rating such as "4.5 out of 5 stars"
	ratingNumberRegex = regexp.MustCompile(`\d+\.\d+|\d+`)

	// First run of digits in a count such as "1,234 ratings"
	countNumberRegex = regexp.MustCompile(`\d+`)

	// Numeral with an optional standalone K/M multiplier, e.g. "1.2K" or "700+ BOUGHT"
	salesNumberRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([KM]\b)?`)

	multipleSpacesRegex = regexp.MustCompile(`\s+`)
)

// MaxIdentifierFallbackRunes bounds the identifier derived from a title
const MaxIdentifierFallbackRunes = 50

// ProductRecord holds the raw cells of one product row
type ProductRecord struct {
	Identifier   string
	Title        string
	Price        string
	Ratings      string
	Review       string
	MonthlySales string
	Image        string
}

// SupplierRecord holds the raw cells of one supplier row
type SupplierRecord struct {
	Name            string
	ProductSearched string
	ListingTitle    string
	Price           string
	Rating          string
	Reviews         string
	Location        string
	Phone           string
	Round           string
}

// ParsePrice extracts a positive price from text such as "₹1,999/piece".
// Anything after the first "/" is a unit and is ignored.
func ParsePrice(raw string) (float64, bool) {
	if i := strings.IndexByte(raw, '/'); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ReplaceAll(raw, ",", "")
	match := priceNumberRegex.FindString(raw)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

// ParseRating extracts a rating in (0, 5] from text such as "4.5 out of 5 stars"
func ParseRating(raw string) (float64, bool) {
	match := ratingNumberRegex.FindString(raw)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil || value <= 0 || value > 5 {
		return 0, false
	}
	return value, true
}

// ParseCount extracts a non-negative count from text such as "1,234 ratings"
func ParseCount(raw string) (int, bool) {
	raw = strings.ReplaceAll(raw, ",", "")
	match := countNumberRegex.FindString(raw)
	if match == "" {
		return 0, false
	}
	value, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return value, true
}

// ParseSales extracts a monthly sales figure from text such as "1.2K" or
// "700+ bought in past month". K and M multiply by one thousand and one million
// when they stand alone after the numeral.
func ParseSales(raw string) (float64, bool) {
	raw = strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(raw)), ",", "")
	groups := salesNumberRegex.FindStringSubmatch(raw)
	if groups == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(groups[1], 64)
	if err != nil {
		return 0, false
	}
	switch groups[2] {
	case "K":
		value *= 1e3
	case "M":
		value *= 1e6
	}
	return value, true
}

// NormalizeProduct converts a raw product row into a Product. Fields that
// cannot be parsed become zero and are recorded in Missing.
func NormalizeProduct(rec ProductRecord, category string) domain.Product {
	title := strings.TrimSpace(rec.Title)
	p := domain.Product{
		Identifier:       strings.TrimSpace(rec.Identifier),
		Title:            title,
		Category:         category,
		MonthlySalesText: strings.TrimSpace(rec.MonthlySales),
		ImageURL:         strings.TrimSpace(rec.Image),
	}
	if p.Identifier == "" {
		p.Identifier = truncateRunes(title, MaxIdentifierFallbackRunes)
	}

	var ok bool
	if p.Price, ok = ParsePrice(rec.Price); !ok {
		p.Missing = p.Missing.With(domain.FieldPrice)
	}
	if p.Rating, ok = ParseRating(rec.Ratings); !ok {
		p.Missing = p.Missing.With(domain.FieldRating)
	}
	if p.ReviewCount, ok = ParseCount(rec.Review); !ok {
		p.Missing = p.Missing.With(domain.FieldReviews)
	}
	if p.MonthlySales, ok = ParseSales(rec.MonthlySales); !ok {
		p.Missing = p.Missing.With(domain.FieldMonthlySales)
	}
	return p
}

// NormalizeSupplier converts a raw supplier row into a Supplier. Unparseable
// numbers become zero; Rank is assigned later across the whole table.
func NormalizeSupplier(rec SupplierRecord) domain.Supplier {
	s := domain.Supplier{
		Name:            strings.TrimSpace(rec.Name),
		ProductSearched: strings.TrimSpace(rec.ProductSearched),
		ListingTitle:    strings.TrimSpace(rec.ListingTitle),
		Location:        strings.TrimSpace(rec.Location),
		Phone:           strings.TrimSpace(rec.Phone),
	}
	s.Price, _ = ParsePrice(rec.Price)
	if rating, err := strconv.ParseFloat(strings.TrimSpace(rec.Rating), 64); err == nil && rating > 0 {
		s.Rating = rating
	}
	s.Reviews, _ = ParseCount(rec.Reviews)
	s.Round, _ = ParseCount(rec.Round)
	return s
}

// CategoryFromPath derives a display category from a source file name,
// e.g. "data/kitchen_storage-items.csv" becomes "Kitchen Storage Items".
func CategoryFromPath(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	stem = multipleSpacesRegex.ReplaceAllString(strings.TrimSpace(stem), " ")
	return cases.Title(language.English).String(stem)
}

// NormalizeSearchTerm lowercases and collapses whitespace in a search term
func NormalizeSearchTerm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return multipleSpacesRegex.ReplaceAllString(s, " ")
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
