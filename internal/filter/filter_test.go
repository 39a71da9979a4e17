package filter

import (
	"reflect"
	"testing"

	"github.com/guarzo/auctionscope/internal/model"
)

func widgetListings() []model.Listing {
	return []model.Listing{
		{Title: "Rare Widget Pro", Price: "$100.00", BidCount: "5 bids", SellerName: "alice", TimeLeft: "1d 2h left"},
		{Title: "Rare Widget Pro", Price: "$200.00", BidCount: "2 bids", SellerName: "bob", TimeLeft: "4h 40m left"},
		{Title: "Widget Basic", Price: "$50.00", BidCount: "0 bids", SellerName: "carol", TimeLeft: "12h 05m left"},
	}
}

func specWith(preds ...model.Predicate) model.FilterSpec {
	spec := model.DefaultFilterSpec()
	spec.Predicates = preds
	return spec
}

func titles(listings []model.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.Title + "/" + l.Price
	}
	return out
}

func TestApply_PriceGreaterPredicate(t *testing.T) {
	got := Apply(widgetListings(), specWith(model.Predicate{
		Field: "price", Op: model.OpGreater, Value: "75",
	}))

	if len(got) != 2 {
		t.Fatalf("expected 2 listings, got %d: %v", len(got), titles(got))
	}
	if got[0].Price != "$100.00" || got[1].Price != "$200.00" {
		t.Errorf("wrong listings retained: %v", titles(got))
	}
}

func TestApply_Predicates(t *testing.T) {
	tests := []struct {
		name string
		pred model.Predicate
		want int
	}{
		{"contains is case-insensitive", model.Predicate{Field: "title", Op: model.OpContains, Value: "RARE"}, 2},
		{"equals exact match", model.Predicate{Field: "seller", Op: model.OpEquals, Value: "Alice"}, 1},
		{"equals no partial match", model.Predicate{Field: "seller", Op: model.OpEquals, Value: "ali"}, 0},
		{"bids less", model.Predicate{Field: "bids", Op: model.OpLess, Value: "3"}, 2},
		{"greater on unparsable field excludes all", model.Predicate{Field: "title", Op: model.OpGreater, Value: "10"}, 0},
		{"greater with unparsable value excludes all", model.Predicate{Field: "price", Op: model.OpGreater, Value: "cheap"}, 0},
		{"unknown field fails contains", model.Predicate{Field: "nonsense", Op: model.OpContains, Value: "x"}, 0},
		{"unknown field empty contains passes", model.Predicate{Field: "nonsense", Op: model.OpContains, Value: ""}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(widgetListings(), specWith(tt.pred))
			if len(got) != tt.want {
				t.Errorf("retained %d listings, expected %d", len(got), tt.want)
			}
		})
	}
}

func TestApply_PredicatesAreANDed(t *testing.T) {
	got := Apply(widgetListings(), specWith(
		model.Predicate{Field: "title", Op: model.OpContains, Value: "widget"},
		model.Predicate{Field: "price", Op: model.OpLess, Value: "150"},
		model.Predicate{Field: "bids", Op: model.OpGreater, Value: "1"},
	))

	if len(got) != 1 || got[0].SellerName != "alice" {
		t.Errorf("expected only alice's listing, got %v", titles(got))
	}
}

func TestApply_StandardPriceRange(t *testing.T) {
	spec := model.DefaultFilterSpec()
	spec.MinPrice = 50
	spec.MaxPrice = 100

	got := Apply(widgetListings(), spec)
	if len(got) != 2 {
		t.Fatalf("inclusive range should retain 2 listings, got %d", len(got))
	}
}

func TestApply_ConditionFilter(t *testing.T) {
	listings := widgetListings()
	listings[0].Condition = "Used - Like New"
	listings[1].Condition = "New"

	spec := model.DefaultFilterSpec()
	spec.Condition = "new"

	got := Apply(listings, spec)
	if len(got) != 2 {
		t.Errorf("condition substring match should retain 2 listings, got %d", len(got))
	}

	spec.Condition = model.ConditionAll
	if got := Apply(listings, spec); len(got) != 3 {
		t.Errorf("condition %q should retain all, got %d", model.ConditionAll, len(got))
	}
}

func TestApply_Sorting(t *testing.T) {
	tests := []struct {
		name string
		key  model.SortKey
		want []string
	}{
		{"price ascending", model.SortPriceAsc, []string{"$50.00", "$100.00", "$200.00"}},
		{"price descending", model.SortPriceDesc, []string{"$200.00", "$100.00", "$50.00"}},
		{"bids descending", model.SortBidsDesc, []string{"$100.00", "$200.00", "$50.00"}},
		{"default keeps input order", model.SortDefault, []string{"$100.00", "$200.00", "$50.00"}},
		// Lexical, not chronological: "12h..." < "1d..." < "4h...".
		{"time ascending is lexical", model.SortTimeAsc, []string{"$50.00", "$100.00", "$200.00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := model.DefaultFilterSpec()
			spec.SortBy = tt.key

			got := Apply(widgetListings(), spec)
			for i, wantPrice := range tt.want {
				if got[i].Price != wantPrice {
					t.Fatalf("position %d = %s, expected %s (order %v)", i, got[i].Price, wantPrice, titles(got))
				}
			}
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	spec := model.DefaultFilterSpec()
	spec.SortBy = model.SortPriceDesc
	spec.Predicates = []model.Predicate{{Field: "price", Op: model.OpGreater, Value: "60"}}

	once := Apply(widgetListings(), spec)
	twice := Apply(once, spec)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("re-applying the same spec changed the result:\nonce:  %v\ntwice: %v",
			titles(once), titles(twice))
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	input := widgetListings()
	spec := model.DefaultFilterSpec()
	spec.SortBy = model.SortPriceAsc

	Apply(input, spec)

	if input[0].Price != "$100.00" || input[2].Price != "$50.00" {
		t.Errorf("input order mutated: %v", titles(input))
	}
}

func TestApply_UnparsablePriceExcluded(t *testing.T) {
	listings := append(widgetListings(), model.Listing{Title: "No Price", Price: "see description"})

	got := Apply(listings, model.DefaultFilterSpec())
	if len(got) != 3 {
		t.Errorf("listing without a parseable price should be excluded by the range filter, got %d", len(got))
	}
}
