package domain

// Tier is the potential classification of a scored product, ordered Avoid < Low < Moderate < High
type Tier int

const (
	TierAvoid Tier = iota
	TierLow
	TierModerate
	TierHigh
)

var (
	tierLabels = [...]string{"Avoid", "Low Potential", "Moderate Potential", "High Potential"}
	tierColors = [...]string{"danger", "info", "warning", "success"}
)

// Tiers lists every tier from highest to lowest
var Tiers = [...]Tier{TierHigh, TierModerate, TierLow, TierAvoid}

// Valid reports whether t is one of the four defined tiers
func (t Tier) Valid() bool {
	return t >= TierAvoid && t <= TierHigh
}

// String returns the display label of the tier
func (t Tier) String() string {
	if !t.Valid() {
		return "Unknown"
	}
	return tierLabels[t]
}

// Color returns the display color key of the tier, empty for an undefined tier
func (t Tier) Color() string {
	if !t.Valid() {
		return ""
	}
	return tierColors[t]
}

// BreakdownLine is one factor of a score explanation
type BreakdownLine struct {
	Factor   string `json:"factor"`
	Detail   string `json:"detail"`
	Score    int    `json:"score"`
	MaxScore int    `json:"maxScore"`
	Missing  bool   `json:"missing"`
}

// ScoreResult is the scoring breakdown and classification of one product
type ScoreResult struct {
	ProductIdentifier string          `json:"productIdentifier,omitempty"`
	ProductTitle      string          `json:"productTitle,omitempty"`
	ProductImage      string          `json:"productImage,omitempty"`
	Category          string          `json:"category,omitempty"`
	Price             float64         `json:"price"`
	PriceScore        int             `json:"priceScore"`
	Rating            float64         `json:"rating"`
	RatingScore       int             `json:"ratingScore"`
	Reviews           int             `json:"reviews"`
	ReviewsScore      int             `json:"reviewsScore"`
	Sales             float64         `json:"sales"`
	SalesScore        int             `json:"salesScore"`
	TotalScore        int             `json:"totalScore"`
	Tier              Tier            `json:"-"`
	Potential         string          `json:"potential"`
	PotentialColor    string          `json:"potentialColor"`
	MissingData       FieldSet        `json:"missingData"`
	HasMissingData    bool            `json:"hasMissingData"`
	Breakdown         []BreakdownLine `json:"breakdown"`
}

// ScoreDistribution counts scored products per tier
type ScoreDistribution struct {
	High     int `json:"high"`
	Moderate int `json:"moderate"`
	Low      int `json:"low"`
	Avoid    int `json:"avoid"`
	Total    int `json:"total"`
}

// Add tallies one product of the given tier. Undefined tiers are not counted.
func (d *ScoreDistribution) Add(t Tier) {
	switch t {
	case TierHigh:
		d.High++
	case TierModerate:
		d.Moderate++
	case TierLow:
		d.Low++
	case TierAvoid:
		d.Avoid++
	default:
		return
	}
	d.Total++
}
