// Package filter implements the predicate and sort engine: an ordered,
// filtered view over a listing set under a FilterSpec. Filtering is
// pure and deterministic; the input slice is never mutated and applying
// the same spec twice yields the same result.
package filter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/guarzo/auctionscope/internal/extract"
	"github.com/guarzo/auctionscope/internal/model"
)

// Apply returns the listings passing the standard filters and every
// custom predicate, ordered by the spec's sort key.
func Apply(listings []model.Listing, spec model.FilterSpec) []model.Listing {
	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if !passesStandard(l, spec) {
			continue
		}
		if !passesPredicates(l, spec.Predicates) {
			continue
		}
		out = append(out, l)
	}
	sortListings(out, spec.SortBy)
	return out
}

func passesStandard(l model.Listing, spec model.FilterSpec) bool {
	price, ok := extract.Price(l.Price)
	if !ok || price < spec.MinPrice || price > spec.MaxPrice {
		return false
	}
	if spec.Condition != "" && spec.Condition != model.ConditionAll {
		if !strings.Contains(strings.ToLower(l.Condition), strings.ToLower(spec.Condition)) {
			return false
		}
	}
	return true
}

func passesPredicates(l model.Listing, preds []model.Predicate) bool {
	for _, p := range preds {
		if !evaluate(l, p) {
			return false
		}
	}
	return true
}

// resolve maps a predicate field name to the listing's comparison
// value. title, seller, price and bids form the closed resolver set;
// any other name falls through to the listing's wire fields, and an
// unknown name resolves to "".
func resolve(l model.Listing, field string) string {
	switch field {
	case "title":
		return l.Title
	case "seller":
		return l.SellerName
	case "price":
		if v, ok := extract.Price(l.Price); ok {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return ""
	case "bids":
		return strconv.Itoa(extract.Bids(l.BidCount))
	default:
		return l.Field(field)
	}
}

func evaluate(l model.Listing, p model.Predicate) bool {
	resolved := resolve(l, p.Field)

	switch p.Op {
	case model.OpContains:
		return strings.Contains(strings.ToLower(resolved), strings.ToLower(p.Value))
	case model.OpEquals:
		return strings.EqualFold(resolved, p.Value)
	case model.OpGreater, model.OpLess:
		// Either side failing to parse excludes the listing, matching
		// NaN comparison semantics.
		lhs, err1 := strconv.ParseFloat(resolved, 64)
		rhs, err2 := strconv.ParseFloat(p.Value, 64)
		if err1 != nil || err2 != nil {
			return false
		}
		if p.Op == model.OpGreater {
			return lhs > rhs
		}
		return lhs < rhs
	default:
		return false
	}
}

func sortListings(listings []model.Listing, key model.SortKey) {
	switch key {
	case model.SortPriceAsc:
		sort.SliceStable(listings, func(i, j int) bool {
			return priceOf(listings[i]) < priceOf(listings[j])
		})
	case model.SortPriceDesc:
		sort.SliceStable(listings, func(i, j int) bool {
			return priceOf(listings[i]) > priceOf(listings[j])
		})
	case model.SortBidsDesc:
		sort.SliceStable(listings, func(i, j int) bool {
			return extract.Bids(listings[i].BidCount) > extract.Bids(listings[j].BidCount)
		})
	case model.SortTimeAsc:
		// Lexical on the raw time-left text, not duration-aware:
		// "1d 2h left" sorts before "4h 40m left". Kept as-is for
		// output parity with the source ordering.
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].TimeLeft < listings[j].TimeLeft
		})
	default:
		// Input order preserved.
	}
}

func priceOf(l model.Listing) float64 {
	v, _ := extract.Price(l.Price)
	return v
}
