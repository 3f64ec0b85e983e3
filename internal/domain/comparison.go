package domain

// ProductComparison is one product in a side-by-side comparison
type ProductComparison struct {
	Product
	AIScore        int    `json:"aiScore"`
	AIPotential    string `json:"aiPotential"`
	IsCheapest     bool   `json:"isCheapest"`
	IsHighestRated bool   `json:"isHighestRated"`
	IsMostReviewed bool   `json:"isMostReviewed"`
	IsBestAIScore  bool   `json:"isBestAiScore"`
}

// SupplierComparison is one supplier name in a side-by-side comparison
type SupplierComparison struct {
	Name           string  `json:"name"`
	AvgRating      float64 `json:"avgRating"`
	TotalReviews   int     `json:"totalReviews"`
	Location       string  `json:"location,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	ProductCount   int     `json:"productCount"`
	IsHighestRated bool    `json:"isHighestRated"`
	IsMostReviewed bool    `json:"isMostReviewed"`
}

// PriceComparison compares a product's price against its suppliers
type PriceComparison struct {
	ProductPrice     float64 `json:"productPrice"`
	AvgSupplierPrice float64 `json:"avgSupplierPrice"`
	MinSupplierPrice float64 `json:"minSupplierPrice"`
	MaxSupplierPrice float64 `json:"maxSupplierPrice"`
	PotentialSavings float64 `json:"potentialSavings"`
}

// RatingComparison compares a product's rating against its suppliers
type RatingComparison struct {
	ProductRating     float64 `json:"productRating"`
	AvgSupplierRating float64 `json:"avgSupplierRating"`
	RatingDiff        float64 `json:"ratingDiff"`
}

// ProductSupplierComparison puts a product next to the suppliers found for it
type ProductSupplierComparison struct {
	Product          Product          `json:"product"`
	Suppliers        []Supplier       `json:"suppliers"`
	PriceComparison  PriceComparison  `json:"priceComparison"`
	RatingComparison RatingComparison `json:"ratingComparison"`
	SupplierCount    int              `json:"supplierCount"`
}
