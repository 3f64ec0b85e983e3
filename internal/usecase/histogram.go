package usecase

import (
	"fmt"
	"math"
	"sort"

	"github.com/bluepin/backend/internal/domain"
)

// Fixed bucket edges. Bins are right-closed: (edges[i], edges[i+1]].
var (
	ratingDistributionEdges  = []float64{0, 2, 3, 4, 4.5, 5}
	ratingDistributionLabels = []string{"0-2", "2-3", "3-4", "4-4.5", "4.5-5"}

	chartRatingEdges  = []float64{0, 1, 2, 3, 4, 5}
	chartRatingLabels = []string{"0-1★", "1-2★", "2-3★", "3-4★", "4-5★"}

	reviewEdges  = []float64{0, 100, 500, 1000, 5000, 10000, math.Inf(1)}
	reviewLabels = []string{"0-100", "100-500", "500-1K", "1K-5K", "5K-10K", "10K+"}

	supplierRatingEdges  = []float64{0, 3.0, 3.5, 4.0, 4.5, 5.0}
	supplierRatingLabels = []string{"<3.0★", "3.0-3.5★", "3.5-4.0★", "4.0-4.5★", "4.5-5.0★"}
)

// DefaultPriceBins is the price histogram resolution when none is requested
const DefaultPriceBins = 10

// cutIndex returns the right-closed bin holding v, or -1. With includeLowest
// the first bin also holds edges[0].
func cutIndex(v float64, edges []float64, includeLowest bool) int {
	if includeLowest && v == edges[0] {
		return 0
	}
	for i := 0; i+1 < len(edges); i++ {
		if v > edges[i] && v <= edges[i+1] {
			return i
		}
	}
	return -1
}

// cutHistogram counts values into labelled right-closed bins. Every label is
// reported, empty ones with a zero count.
func cutHistogram(values, edges []float64, labels []string, includeLowest bool) domain.Histogram {
	buckets := make([]domain.Bucket, len(labels))
	for i, label := range labels {
		buckets[i].Label = label
	}
	for _, v := range values {
		if i := cutIndex(v, edges, includeLowest); i >= 0 {
			buckets[i].Count++
		}
	}
	return domain.Histogram{Buckets: buckets}
}

// equalWidthHistogram splits [min, max] into n equal bins; the last bin is
// closed on both ends. A degenerate range is widened by 0.5 either side.
func equalWidthHistogram(values []float64, n int) domain.Histogram {
	lo, hi := 0.0, 1.0
	if len(values) > 0 {
		r := rangeOf(values)
		lo, hi = r.Min, r.Max
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	width := (hi - lo) / float64(n)
	edges := make([]float64, n+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[n] = hi

	buckets := make([]domain.Bucket, n)
	for i := range buckets {
		buckets[i].Label = fmt.Sprintf("₹%d-%d", int(edges[i]), int(edges[i+1]))
	}
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		if i < 0 {
			i = 0
		}
		buckets[i].Count++
	}
	return domain.Histogram{Buckets: buckets}
}

// countByLabel counts occurrences, most frequent first with ties in first-seen
// order. limit <= 0 keeps every label.
func countByLabel(labels []string, limit int) domain.Histogram {
	index := make(map[string]int)
	var buckets []domain.Bucket
	for _, label := range labels {
		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, domain.Bucket{Label: label})
		}
		buckets[i].Count++
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	if limit > 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}
	if buckets == nil {
		buckets = []domain.Bucket{}
	}
	return domain.Histogram{Buckets: buckets}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
