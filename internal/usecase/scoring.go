package usecase

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bluepin/backend/internal/domain"
)

// band covers [previous band's upper, upper) and awards points
type band struct {
	upper  float64
	points int
}

// bandTable is an ascending, gap-free partition of [0, +Inf)
type bandTable []band

func (t bandTable) score(x float64) int {
	// NaN and negatives score as zero
	if !(x >= 0) {
		x = 0
	}
	for _, b := range t {
		if x < b.upper {
			return b.points
		}
	}
	return t[len(t)-1].points
}

func (t bandTable) max() int {
	m := 0
	for _, b := range t {
		if b.points > m {
			m = b.points
		}
	}
	return m
}

var inf = math.Inf(1)

// Score bands. Lower bounds are inclusive, upper bounds exclusive.
var (
	priceBands = bandTable{
		{249, 10},
		{299, 18},
		{599, 20},
		{999, 22},
		{2500, 25},
		{inf, 15},
	}
	ratingBands = bandTable{
		{3.7, 0},
		{4.0, 12},
		{4.3, 22},
		{inf, 30},
	}
	// fewer reviews means less competition
	reviewBands = bandTable{
		{200, 20},
		{800, 14},
		{2000, 8},
		{inf, 0},
	}
	salesBands = bandTable{
		{150, 10},
		{300, 20},
		{1500, 25},
		{3000, 18},
		{inf, 12},
	}
)

// Maximum points per factor
var (
	MaxPriceScore   = priceBands.max()
	MaxRatingScore  = ratingBands.max()
	MaxReviewsScore = reviewBands.max()
	MaxSalesScore   = salesBands.max()
	MaxTotalScore   = MaxPriceScore + MaxRatingScore + MaxReviewsScore + MaxSalesScore
)

// PriceScore scores a selling price for margin possibility
func PriceScore(price float64) int {
	return priceBands.score(price)
}

// RatingScore scores a rating for post-sale risk
func RatingScore(rating float64) int {
	return ratingBands.score(rating)
}

// ReviewsScore scores a review count for competition density
func ReviewsScore(reviews int) int {
	return reviewBands.score(float64(reviews))
}

// SalesScore scores monthly sales for demand against competition
func SalesScore(sales float64) int {
	return salesBands.score(sales)
}

const dataMissing = "Data Missing"

var breakdownPrinter = message.NewPrinter(language.English)

// ScoreProduct scores a normalized product on all four factors and classifies it.
// Missing fields score as zero values and are reported in the breakdown.
func ScoreProduct(p domain.Product) domain.ScoreResult {
	r := domain.ScoreResult{
		ProductIdentifier: p.Identifier,
		ProductTitle:      p.Title,
		ProductImage:      p.ImageURL,
		Category:          p.Category,
		Price:             p.Price,
		PriceScore:        PriceScore(p.Price),
		Rating:            p.Rating,
		RatingScore:       RatingScore(p.Rating),
		Reviews:           p.ReviewCount,
		ReviewsScore:      ReviewsScore(p.ReviewCount),
		Sales:             p.MonthlySales,
		SalesScore:        SalesScore(p.MonthlySales),
		MissingData:       p.Missing,
		HasMissingData:    !p.Missing.Empty(),
	}
	r.TotalScore = r.PriceScore + r.RatingScore + r.ReviewsScore + r.SalesScore
	r.Tier = Classify(r.TotalScore)
	r.Potential = r.Tier.String()
	r.PotentialColor = r.Tier.Color()
	r.Breakdown = []domain.BreakdownLine{
		breakdownLine("Selling Price", p.Missing.Has(domain.FieldPrice),
			breakdownPrinter.Sprintf("₹%.2f", p.Price), r.PriceScore, MaxPriceScore),
		breakdownLine("Ratings", p.Missing.Has(domain.FieldRating),
			breakdownPrinter.Sprintf("%.1f★", p.Rating), r.RatingScore, MaxRatingScore),
		breakdownLine("Reviews Count", p.Missing.Has(domain.FieldReviews),
			breakdownPrinter.Sprintf("%d reviews", p.ReviewCount), r.ReviewsScore, MaxReviewsScore),
		breakdownLine("Monthly Sales", p.Missing.Has(domain.FieldMonthlySales),
			breakdownPrinter.Sprintf("%d sales", int64(p.MonthlySales)), r.SalesScore, MaxSalesScore),
	}
	return r
}

func breakdownLine(factor string, missing bool, value string, score, maxScore int) domain.BreakdownLine {
	line := domain.BreakdownLine{
		Factor:   factor,
		Score:    score,
		MaxScore: maxScore,
		Missing:  missing,
	}
	if missing {
		line.Detail = dataMissing
	} else {
		line.Detail = breakdownPrinter.Sprintf("%s → Score: %d/%d", value, score, maxScore)
	}
	return line
}
