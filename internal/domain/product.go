package domain

import (
	"encoding/json"
	"time"
)

// Field names a numeric product attribute that may be absent from a source row
type Field uint8

const (
	FieldPrice Field = 1 << iota
	FieldRating
	FieldReviews
	FieldMonthlySales
)

var fieldOrder = [...]Field{FieldPrice, FieldRating, FieldReviews, FieldMonthlySales}

// String returns the source column name of the field
func (f Field) String() string {
	switch f {
	case FieldPrice:
		return "Price"
	case FieldRating:
		return "Ratings"
	case FieldReviews:
		return "Review"
	case FieldMonthlySales:
		return "Monthly Sales"
	default:
		return "Unknown"
	}
}

// FieldSet is the set of fields that fell back to zero during normalization
type FieldSet uint8

// Has reports whether f is in the set
func (s FieldSet) Has(f Field) bool {
	return s&FieldSet(f) != 0
}

// With returns the set with f added
func (s FieldSet) With(f Field) FieldSet {
	return s | FieldSet(f)
}

// Empty reports whether no field is missing
func (s FieldSet) Empty() bool {
	return s == 0
}

// Names returns the column names of the fields in the set, in a fixed order
func (s FieldSet) Names() []string {
	names := make([]string, 0, len(fieldOrder))
	for _, f := range fieldOrder {
		if s.Has(f) {
			names = append(names, f.String())
		}
	}
	return names
}

// MarshalJSON encodes the set as a list of column names
func (s FieldSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

// Product is one normalized row of a product source
type Product struct {
	Identifier       string   `json:"productIdentifier"`
	Title            string   `json:"title"`
	Category         string   `json:"category"`
	Price            float64  `json:"price"`
	Rating           float64  `json:"rating"`
	ReviewCount      int      `json:"reviewCount"`
	MonthlySales     float64  `json:"monthlySales"`
	MonthlySalesText string   `json:"monthlySalesText,omitempty"`
	ImageURL         string   `json:"imageUrl,omitempty"`
	Missing          FieldSet `json:"missingData"`
}

// Supplier is one normalized row of the supplier source
type Supplier struct {
	Name            string  `json:"supplierName"`
	ProductSearched string  `json:"productSearched"`
	ListingTitle    string  `json:"listingTitle,omitempty"`
	Price           float64 `json:"price"`
	Rating          float64 `json:"rating"`
	Reviews         int     `json:"reviews"`
	Location        string  `json:"location,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	Round           int     `json:"supplierRound"`
	Rank            int     `json:"supplierRank"`
}

// Snapshot is an immutable view of the loaded product and supplier tables.
// Slices returned by its accessors are shared and must not be modified.
type Snapshot struct {
	generation uint64
	loadedAt   time.Time
	products   []Product
	suppliers  []Supplier
	warnings   []string
	byID       map[string]int
}

// NewSnapshot builds a snapshot and its identifier index. The first product
// carrying an identifier wins lookups; duplicates are kept in the list.
func NewSnapshot(generation uint64, loadedAt time.Time, products []Product, suppliers []Supplier, warnings []string) *Snapshot {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if _, ok := byID[p.Identifier]; !ok {
			byID[p.Identifier] = i
		}
	}
	return &Snapshot{
		generation: generation,
		loadedAt:   loadedAt,
		products:   products,
		suppliers:  suppliers,
		warnings:   warnings,
		byID:       byID,
	}
}

// EmptySnapshot returns a snapshot with no rows
func EmptySnapshot(generation uint64, warnings []string) *Snapshot {
	return NewSnapshot(generation, time.Now(), nil, nil, warnings)
}

func (s *Snapshot) Generation() uint64 { return s.generation }
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }
func (s *Snapshot) Products() []Product { return s.products }
func (s *Snapshot) Suppliers() []Supplier { return s.suppliers }
func (s *Snapshot) Warnings() []string { return s.warnings }
func (s *Snapshot) ProductCount() int { return len(s.products) }
func (s *Snapshot) SupplierCount() int { return len(s.suppliers) }

// ProductByIdentifier returns the first product with the exact identifier
func (s *Snapshot) ProductByIdentifier(id string) (Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return s.products[i], nil
}

// SuppliersFor returns suppliers whose searched product equals the identifier, in load order
func (s *Snapshot) SuppliersFor(id string) []Supplier {
	var out []Supplier
	for _, sup := range s.suppliers {
		if sup.ProductSearched == id {
			out = append(out, sup)
		}
	}
	return out
}

// SnapshotStatus summarizes the current snapshot for admin endpoints
type SnapshotStatus struct {
	Generation    uint64    `json:"generation"`
	LoadedAt      time.Time `json:"loadedAt"`
	ProductCount  int       `json:"productCount"`
	SupplierCount int       `json:"supplierCount"`
	Warnings      []string  `json:"warnings"`
}

// Status returns the snapshot summary
func (s *Snapshot) Status() SnapshotStatus {
	warnings := s.warnings
	if warnings == nil {
		warnings = []string{}
	}
	return SnapshotStatus{
		Generation:    s.generation,
		LoadedAt:      s.loadedAt,
		ProductCount:  len(s.products),
		SupplierCount: len(s.suppliers),
		Warnings:      warnings,
	}
}

// ProductCriteria filters products. Nil pointers and empty strings are no-ops.
type ProductCriteria struct {
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Category  string
	Search    string
}

// SupplierCriteria filters suppliers. Nil pointers and empty strings are no-ops.
type SupplierCriteria struct {
	MinPrice        *float64
	MaxPrice        *float64
	MinRating       *float64
	Location        string
	ProductSearched string
	Search          string
}
