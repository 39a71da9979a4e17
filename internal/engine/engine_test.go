package engine

import (
	"reflect"
	"testing"

	"github.com/guarzo/auctionscope/internal/model"
	"github.com/guarzo/auctionscope/internal/testutil"
)

func sampleListings() []model.Listing {
	return []model.Listing{
		{Title: "Graded Card Slab", Price: "$100.00", BidCount: "5 bids ·", SellerRating: "98.0%", TimeLeft: "1d 2h left"},
		{Title: "Graded Card Lot", Price: "$200.00", BidCount: "2 bids ·", SellerRating: "96.0%", TimeLeft: "4h left"},
		{Title: "Raw Card", Price: "$50.00", BidCount: "0 bids", SellerRating: "100.0%", TimeLeft: "2d left"},
	}
}

func TestCompute(t *testing.T) {
	snap := Compute(sampleListings(), model.DefaultFilterSpec())

	if len(snap.Filtered) != 3 {
		t.Fatalf("filtered = %d listings, expected 3", len(snap.Filtered))
	}
	if snap.Metrics.AvgPrice != 116.67 || snap.Metrics.TotalBids != 7 {
		t.Errorf("metrics = %+v, expected avg 116.67 / 7 bids", snap.Metrics)
	}
	if len(snap.PriceHistogram) != HistogramBins {
		t.Errorf("price histogram has %d bins, expected %d", len(snap.PriceHistogram), HistogramBins)
	}
	if len(snap.RatingHistogram) != HistogramBins {
		t.Errorf("rating histogram has %d bins, expected %d", len(snap.RatingHistogram), HistogramBins)
	}

	total := 0
	for _, bin := range snap.PriceHistogram {
		total += bin.Count
	}
	if total != 3 {
		t.Errorf("price histogram counts sum to %d, expected 3", total)
	}
}

func TestCompute_HistogramsDescribeFilteredView(t *testing.T) {
	spec := model.DefaultFilterSpec()
	spec.Predicates = []model.Predicate{{Field: "price", Op: model.OpGreater, Value: "75"}}

	snap := Compute(sampleListings(), spec)

	if len(snap.Filtered) != 2 {
		t.Fatalf("filtered = %d listings, expected 2", len(snap.Filtered))
	}
	total := 0
	for _, bin := range snap.PriceHistogram {
		total += bin.Count
	}
	if total != 2 {
		t.Errorf("histogram should count only filtered listings, got %d", total)
	}
	if snap.Metrics.TotalItems != 2 {
		t.Errorf("metrics should describe the filtered view, got %+v", snap.Metrics)
	}
}

func TestCompute_TermsUseWholeCorpus(t *testing.T) {
	listings := []model.Listing{
		{Title: "widget alpha", Price: "$10.00"},
		{Title: "widget beta", Price: "$20.00"},
		{Title: "widget gamma", Price: "$30.00"},
	}
	spec := model.DefaultFilterSpec()
	spec.Predicates = []model.Predicate{{Field: "price", Op: model.OpGreater, Value: "25"}}

	snap := Compute(listings, spec)

	if len(snap.Filtered) != 1 {
		t.Fatalf("filtered = %d listings, expected 1", len(snap.Filtered))
	}
	if len(snap.Terms) != 1 || snap.Terms[0].Term != "widget" || snap.Terms[0].Frequency != 3 {
		t.Errorf("term ranking should cover all listings regardless of filter, got %v", snap.Terms)
	}
}

func TestCompute_Pure(t *testing.T) {
	listings := testutil.NewListingFactory(7).Listings(40)
	spec := model.DefaultFilterSpec()
	spec.SortBy = model.SortPriceAsc

	first := Compute(listings, spec)
	second := Compute(listings, spec)

	if !reflect.DeepEqual(first, second) {
		t.Error("Compute is not deterministic for identical inputs")
	}
}

func TestCompute_Empty(t *testing.T) {
	snap := Compute(nil, model.DefaultFilterSpec())

	if len(snap.Filtered) != 0 {
		t.Errorf("expected no filtered listings, got %d", len(snap.Filtered))
	}
	if snap.PriceHistogram != nil || snap.RatingHistogram != nil {
		t.Errorf("histograms should be nil for empty input: %+v", snap)
	}
	if snap.Metrics != (model.Metrics{}) {
		t.Errorf("metrics should be zero for empty input: %+v", snap.Metrics)
	}
}
