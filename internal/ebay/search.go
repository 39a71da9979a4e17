package ebay

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/guarzo/auctionscope/internal/cache"
	"github.com/guarzo/auctionscope/internal/model"
)

// seller_info renders as "sellername (1234) 98.2%".
var sellerInfoPattern = regexp.MustCompile(`^(.+?)\s+\((\S+)\)\s+(\S+%)$`)

// Search scrapes the auction search results for a term. Results come
// back with every field as raw display text ("$123.45", "3 bids ·",
// "1d 2h left"); nothing is normalized here. Cached results are reused
// within the search TTL.
func (c *Client) Search(ctx context.Context, term string) ([]model.Listing, error) {
	if !c.Available() {
		return nil, fmt.Errorf("ebay client not configured")
	}

	key := cache.SearchKey(term)
	if c.cache != nil {
		var cached []model.Listing
		if hit, err := c.cache.Get(key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	params := url.Values{}
	params.Set("_nkw", term)
	params.Set("LH_Auction", "1")

	body, err := c.fetch(ctx, c.baseURL+"/sch/i.html?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}

	listings, err := parseSearchResults(body)
	if err != nil {
		return nil, fmt.Errorf("parse search results for %q: %w", term, err)
	}

	if c.cache != nil && len(listings) > 0 {
		if err := c.cache.Put(key, listings, searchCacheTTL); err != nil {
			return listings, nil // cache write failure is not fatal
		}
	}

	return listings, nil
}

func parseSearchResults(body []byte) ([]model.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var listings []model.Listing
	doc.Find("li.s-item, div.s-item").Each(func(i int, s *goquery.Selection) {
		listing := parseItemTile(s)

		// Skip the placeholder tiles eBay injects at the top of results
		if listing.Title == "" || strings.EqualFold(listing.Title, "Shop on eBay") {
			return
		}

		listings = append(listings, listing)
	})

	return listings, nil
}

func parseItemTile(s *goquery.Selection) model.Listing {
	listing := model.Listing{
		Title:        text(s, ".s-item__title"),
		Price:        text(s, ".s-item__price"),
		BidCount:     text(s, ".s-item__bids, .s-item__bidCount"),
		TimeLeft:     text(s, ".s-item__time-left"),
		BestOffer:    text(s, ".s-item__purchase-options, .s-item__formatBestOfferEnabled"),
		DeliveryCost: text(s, ".s-item__shipping, .s-item__logisticsCost"),
		Authenticity: text(s, ".s-item__hotness, .s-item__authenticity"),
		SellerInfo:   text(s, ".s-item__seller-info-text"),
	}

	// Condition renders inside the subtitle, usually wrapped in a
	// SECONDARY_INFO span ("Pre-Owned", "Brand New").
	listing.Condition = text(s, ".s-item__subtitle .SECONDARY_INFO")
	if listing.Condition == "" {
		listing.Condition = text(s, ".s-item__subtitle")
	}

	if href, ok := s.Find("a.s-item__link").Attr("href"); ok {
		listing.ProductLink = href
	}
	if src, ok := s.Find(".s-item__image img, .s-item__image-wrapper img").Attr("src"); ok {
		listing.ProductImage = src
	}

	listing.SellerName, listing.SellerReviews, listing.SellerRating = splitSellerInfo(listing.SellerInfo)
	return listing
}

// splitSellerInfo pulls the name, review count and rating out of the
// combined seller string. A string that does not match the expected
// shape yields empty parts; the analytics engine tolerates those.
func splitSellerInfo(info string) (name, reviews, rating string) {
	m := sellerInfoPattern.FindStringSubmatch(strings.TrimSpace(info))
	if m == nil {
		return "", "", ""
	}
	return m[1], m[2], m[3]
}

func text(s *goquery.Selection, selector string) string {
	return strings.TrimSpace(s.Find(selector).First().Text())
}
