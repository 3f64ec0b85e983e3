package domain

// PriceRange is an inclusive min/max pair
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// OverviewStats summarizes the whole snapshot
type OverviewStats struct {
	TotalProducts        int        `json:"totalProducts"`
	TotalSuppliers       int        `json:"totalSuppliers"`
	AvgProductRating     float64    `json:"avgProductRating"`
	AvgSupplierRating    float64    `json:"avgSupplierRating"`
	TotalReviews         int        `json:"totalReviews"`
	TotalSupplierReviews int        `json:"totalSupplierReviews"`
	TotalSalesMillions   float64    `json:"totalSalesMillions"`
	PriceRange           PriceRange `json:"priceRange"`
}

// Bucket is one histogram bin or labelled count
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Histogram holds labelled buckets in display order
type Histogram struct {
	Buckets []Bucket `json:"buckets"`
}

// Labels returns bucket labels in order
func (h Histogram) Labels() []string {
	out := make([]string, len(h.Buckets))
	for i, b := range h.Buckets {
		out[i] = b.Label
	}
	return out
}

// Counts returns bucket counts in order
func (h Histogram) Counts() []int {
	out := make([]int, len(h.Buckets))
	for i, b := range h.Buckets {
		out[i] = b.Count
	}
	return out
}

// Total returns the sum of bucket counts
func (h Histogram) Total() int {
	n := 0
	for _, b := range h.Buckets {
		n += b.Count
	}
	return n
}

// CategoryStats aggregates products of one category
type CategoryStats struct {
	Category     string  `json:"category"`
	Count        int     `json:"count"`
	AvgPrice     float64 `json:"avgPrice"`
	MinPrice     float64 `json:"minPrice"`
	MaxPrice     float64 `json:"maxPrice"`
	AvgRating    float64 `json:"avgRating"`
	TotalReviews int     `json:"totalReviews"`
}

// SupplierSummary aggregates all rows of one supplier name
type SupplierSummary struct {
	Name             string  `json:"supplierName"`
	Rating           float64 `json:"rating"`
	Reviews          int     `json:"reviews"`
	AvgPrice         float64 `json:"avgPrice"`
	ProductsSupplied int     `json:"productsSupplied"`
	Location         string  `json:"location,omitempty"`
	Phone            string  `json:"phone,omitempty"`
}

// LocationStats aggregates suppliers by location
type LocationStats struct {
	Location      string  `json:"location"`
	SupplierCount int     `json:"supplierCount"`
	AvgPrice      float64 `json:"avgPrice"`
	AvgRating     float64 `json:"avgRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// FilterOptions lists the values available to product and supplier filters
type FilterOptions struct {
	Categories     []string   `json:"categories"`
	Locations      []string   `json:"locations"`
	Identifiers    []string   `json:"productIdentifiers"`
	PriceRange     PriceRange `json:"priceRange"`
	RatingRange    PriceRange `json:"ratingRange"`
	SupplierPrices PriceRange `json:"supplierPriceRange"`
}

// ProductCharts holds chart series for a filtered product set
type ProductCharts struct {
	Ratings    Histogram `json:"ratings"`
	Categories Histogram `json:"categories"`
	Reviews    Histogram `json:"reviews"`
	Count      int       `json:"count"`
}

// SupplierCharts holds chart series for a filtered supplier set
type SupplierCharts struct {
	Locations   Histogram `json:"locations"`
	Categories  Histogram `json:"categories"`
	RatingBands []string  `json:"ratingBands"`
	AvgPrice    []float64 `json:"avgPriceByRating"`
	Count       int       `json:"count"`
}

// SearchResults holds global search matches
type SearchResults struct {
	Query     string     `json:"query"`
	Products  []Product  `json:"products"`
	Suppliers []Supplier `json:"suppliers"`
}
