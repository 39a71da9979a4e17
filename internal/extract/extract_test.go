package extract

import "testing"

func TestPrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"plain dollars", "$123.45", 123.45, true},
		{"thousands separator", "$1,234.50", 1234.50, true},
		{"no symbol", "99.99", 99.99, true},
		{"trailing text", "$50.00 each", 50.00, true},
		{"empty", "", 0, false},
		{"no digits", "Free local pickup", 0, false},
		{"price range collapses to garbage", "$100.00 to $200.00", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Price(tt.input)
			if ok != tt.ok {
				t.Fatalf("Price(%q) ok = %v, expected %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Price(%q) = %v, expected %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBids(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plural with separator", "3 bids ·", 3},
		{"singular", "1 bid", 1},
		{"zero", "0 bids ·", 0},
		{"no digits", "Buy It Now", 0},
		{"empty", "", 0},
		{"digits later in string", "over 12 bids", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bids(tt.input); got != tt.want {
				t.Errorf("Bids(%q) = %d, expected %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestRating(t *testing.T) {
	got, ok := Rating("98.2%")
	if !ok || got != 98.2 {
		t.Errorf("Rating(%q) = %v, %v, expected 98.2, true", "98.2%", got, ok)
	}

	if _, ok := Rating("no feedback"); ok {
		t.Error("Rating on non-numeric text should not be ok")
	}
}

func TestPricesExcludesUnparseable(t *testing.T) {
	fields := []string{"$100.00", "$200.00", "$50.00", "Free delivery", ""}
	got := Prices(fields)

	want := []float64{100, 200, 50}
	if len(got) != len(want) {
		t.Fatalf("Prices kept %d values, expected %d", len(got), len(want))
	}
	for i, v := range want {
		if got[i] != v {
			t.Errorf("Prices[%d] = %v, expected %v", i, got[i], v)
		}
	}
}
