// Package testutil generates dynamic listing data for tests.
package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/guarzo/auctionscope/internal/model"
)

// ListingFactory produces randomized but well-formed listings from a
// seeded generator so failures reproduce.
type ListingFactory struct {
	rand *rand.Rand
}

// NewListingFactory creates a factory. A zero seed falls back to the
// clock.
func NewListingFactory(seed int64) *ListingFactory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &ListingFactory{rand: rand.New(rand.NewSource(seed))}
}

var (
	titleWords = []string{
		"Vintage", "Widget", "Pro", "Limited", "Edition", "Sealed",
		"Bundle", "Rare", "Refurbished", "Model", "Classic", "Deluxe",
	}
	timeLeftOptions = []string{
		"1h 23m left", "4h 40m left", "12h 05m left",
		"1d 2h left", "2d 15h left", "3d 8h left",
	}
	deliveryOptions = []string{
		"+$15.00 delivery", "Free delivery", "+$8.99 delivery", "Free local pickup",
	}
	conditionOptions = []string{
		"New", "Used - Like New", "Used - Very Good", "Used - Good",
	}
)

// Listing generates one listing with every text field in the shape the
// source emits.
func (f *ListingFactory) Listing() model.Listing {
	price := f.rand.Float64()*1000 + 50
	bids := f.rand.Intn(20)
	rating := f.rand.Float64()*10 + 90
	reviews := f.rand.Intn(1000) + 1
	seller := fmt.Sprintf("seller%d", f.rand.Intn(10000))

	plural := "s"
	if bids == 1 {
		plural = ""
	}

	return model.Listing{
		Title:         f.title(),
		Price:         fmt.Sprintf("$%.2f", price),
		ProductLink:   fmt.Sprintf("https://www.ebay.test/itm/%d", f.rand.Int63()),
		BidCount:      fmt.Sprintf("%d bid%s ·", bids, plural),
		TimeLeft:      timeLeftOptions[f.rand.Intn(len(timeLeftOptions))],
		DeliveryCost:  deliveryOptions[f.rand.Intn(len(deliveryOptions))],
		SellerInfo:    fmt.Sprintf("%s (%d) %.1f%%", seller, reviews, rating),
		SellerName:    seller,
		SellerReviews: fmt.Sprintf("%d", reviews),
		SellerRating:  fmt.Sprintf("%.1f%%", rating),
		Condition:     conditionOptions[f.rand.Intn(len(conditionOptions))],
	}
}

// Listings generates n listings.
func (f *ListingFactory) Listings(n int) []model.Listing {
	out := make([]model.Listing, n)
	for i := range out {
		out[i] = f.Listing()
	}
	return out
}

func (f *ListingFactory) title() string {
	n := f.rand.Intn(3) + 3
	title := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			title += " "
		}
		title += titleWords[f.rand.Intn(len(titleWords))]
	}
	return title
}
