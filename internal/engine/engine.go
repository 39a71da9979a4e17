// Package engine ties the analytics stages together: one call
// recomputes every derived view from a consistent (listings, spec)
// snapshot. The engine holds no state of its own, so concurrent
// computations over different inputs need no coordination.
package engine

import (
	"github.com/guarzo/auctionscope/internal/analysis"
	"github.com/guarzo/auctionscope/internal/extract"
	"github.com/guarzo/auctionscope/internal/filter"
	"github.com/guarzo/auctionscope/internal/model"
	"github.com/guarzo/auctionscope/internal/stats"
	"github.com/guarzo/auctionscope/internal/terms"
)

// HistogramBins is the bin count used for the price and rating
// distributions.
const HistogramBins = 10

// Snapshot is the full set of derived views for one (listings, spec)
// input. Histograms and metrics describe the filtered view; the term
// ranking always runs over the whole corpus so keyword significance is
// not skewed by the current filter.
type Snapshot struct {
	Filtered        []model.Listing      `json:"filtered"`
	PriceHistogram  []model.HistogramBin `json:"priceHistogram"`
	RatingHistogram []model.HistogramBin `json:"ratingHistogram"`
	Metrics         model.Metrics        `json:"metrics"`
	Terms           []model.TermScore    `json:"terms"`
}

// Compute recomputes all derived views. It is pure: the same inputs
// always produce the same snapshot, and the input slice is never
// mutated.
func Compute(listings []model.Listing, spec model.FilterSpec) Snapshot {
	filtered := filter.Apply(listings, spec)

	prices := make([]string, len(filtered))
	ratings := make([]string, len(filtered))
	for i, l := range filtered {
		prices[i] = l.Price
		ratings[i] = l.SellerRating
	}

	return Snapshot{
		Filtered:        filtered,
		PriceHistogram:  stats.Histogram(extract.Prices(prices), HistogramBins, "$"),
		RatingHistogram: stats.Histogram(extract.Ratings(ratings), HistogramBins, ""),
		Metrics:         analysis.Summarize(filtered),
		Terms:           terms.Score(listings),
	}
}
