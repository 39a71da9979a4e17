package ebay

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/guarzo/auctionscope/internal/cache"
	"github.com/guarzo/auctionscope/internal/model"
)

// FetchProduct scrapes one listing's detail page for images, watcher
// count, condition and the item specifics table. A page that lacks any
// of these simply yields a partially filled detail record.
func (c *Client) FetchProduct(ctx context.Context, productLink string) (*model.ProductDetail, error) {
	if !c.Available() {
		return nil, fmt.Errorf("ebay client not configured")
	}
	if productLink == "" {
		return nil, fmt.Errorf("missing product link")
	}

	key := cache.ProductKey(productLink)
	if c.cache != nil {
		var cached model.ProductDetail
		if hit, err := c.cache.Get(key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	body, err := c.fetch(ctx, productLink)
	if err != nil {
		return nil, fmt.Errorf("fetch product %s: %w", productLink, err)
	}

	detail, err := parseProductPage(productLink, body)
	if err != nil {
		return nil, fmt.Errorf("parse product %s: %w", productLink, err)
	}

	if c.cache != nil {
		_ = c.cache.Put(key, detail, productCacheTTL)
	}

	return detail, nil
}

func parseProductPage(productLink string, body []byte) (*model.ProductDetail, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	detail := &model.ProductDetail{
		ProductLink:  productLink,
		Condition:    strings.TrimSpace(doc.Find(".x-item-condition-text .ux-textspans").First().Text()),
		Watchers:     strings.TrimSpace(doc.Find(".vi-notify-new-bg-dBtm, .x-watch-count").First().Text()),
		ItemFeatures: make(map[string]string),
	}

	seen := make(map[string]struct{})
	doc.Find(".ux-image-carousel-item img, .ux-image-grid img").Each(func(i int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok {
			src, ok = s.Attr("data-src")
		}
		if !ok || src == "" {
			return
		}
		if _, dup := seen[src]; dup {
			return
		}
		seen[src] = struct{}{}
		detail.Images = append(detail.Images, src)
	})

	// Item specifics render as label/value pairs
	doc.Find(".ux-labels-values__labels").Each(func(i int, s *goquery.Selection) {
		label := strings.TrimSuffix(strings.TrimSpace(s.Text()), ":")
		value := strings.TrimSpace(s.NextFiltered(".ux-labels-values__values").Text())
		if label != "" && value != "" {
			detail.ItemFeatures[label] = value
		}
	})

	return detail, nil
}
