// Package analysis computes the aggregate market metrics shown for a
// filtered listing view.
package analysis

import (
	"math"
	"sort"

	"github.com/guarzo/auctionscope/internal/extract"
	"github.com/guarzo/auctionscope/internal/model"
)

// Summarize computes the market overview for a listing set. Means run
// over parseable values only: an unparseable price or rating leaves
// both numerator and denominator, it never degrades to zero. The median
// is the element at floor(n/2) of the ascending price sample; for
// even-sized samples this diverges from the textbook midpoint average
// and is kept that way so reported numbers stay reproducible.
func Summarize(listings []model.Listing) model.Metrics {
	prices := make([]float64, 0, len(listings))
	ratings := make([]float64, 0, len(listings))
	totalBids := 0
	bidSamples := 0
	bidSum := 0

	for _, l := range listings {
		if v, ok := extract.Price(l.Price); ok {
			prices = append(prices, v)
		}
		if v, ok := extract.Rating(l.SellerRating); ok {
			ratings = append(ratings, v)
		}
		bids := extract.Bids(l.BidCount)
		totalBids += bids
		if bids > 0 {
			bidSum += bids
			bidSamples++
		}
	}

	m := model.Metrics{
		TotalBids:  totalBids,
		TotalItems: len(listings),
	}

	if len(prices) > 0 {
		m.AvgPrice = round2(mean(prices))
		sorted := make([]float64, len(prices))
		copy(sorted, prices)
		sort.Float64s(sorted)
		m.MedianPrice = sorted[len(sorted)/2]
	}
	if len(ratings) > 0 {
		m.AvgRating = round2(mean(ratings))
	}
	if bidSamples > 0 {
		m.AvgBids = round2(float64(bidSum) / float64(bidSamples))
	}

	return m
}

func mean(sample []float64) float64 {
	sum := 0.0
	for _, v := range sample {
		sum += v
	}
	return sum / float64(len(sample))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
