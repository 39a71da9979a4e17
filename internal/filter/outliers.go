package filter

import (
	"strconv"

	"github.com/guarzo/auctionscope/internal/extract"
	"github.com/guarzo/auctionscope/internal/model"
	"github.com/guarzo/auctionscope/internal/stats"
)

// WithoutOutliers returns a copy of spec tightened to the 1.5*IQR
// inlier bounds of the given listings. Price bounds become the standard
// price range; bid bounds become a pair of custom predicates. Outlier
// removal is therefore just filter-spec generation, not a separate
// filtering mode, and composes with whatever the caller already set.
func WithoutOutliers(listings []model.Listing, spec model.FilterSpec) model.FilterSpec {
	prices := make([]string, len(listings))
	for i, l := range listings {
		prices[i] = l.Price
	}
	priceSample := extract.Prices(prices)

	bidSample := make([]float64, len(listings))
	for i, l := range listings {
		bidSample[i] = float64(extract.Bids(l.BidCount))
	}

	out := spec
	out.Predicates = append([]model.Predicate(nil), spec.Predicates...)

	if len(priceSample) > 0 {
		out.MinPrice, out.MaxPrice = stats.OutlierBounds(priceSample)
	}
	if len(bidSample) > 0 {
		lower, upper := stats.OutlierBounds(bidSample)
		if lower > 0 {
			out.Predicates = append(out.Predicates, model.Predicate{
				Field: "bids",
				Op:    model.OpGreater,
				Value: formatBound(lower),
			})
		}
		out.Predicates = append(out.Predicates, model.Predicate{
			Field: "bids",
			Op:    model.OpLess,
			Value: formatBound(upper),
		})
	}
	return out
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
