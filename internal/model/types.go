package model

// Listing is one auction search result exactly as the source renders it.
// Numeric-looking fields (Price, BidCount, SellerRating) are kept as raw
// text; parsing them is the extract package's job. Listings are never
// mutated after acquisition.
type Listing struct {
	Title         string `json:"title"`
	Price         string `json:"price"`
	ProductLink   string `json:"product_link"`
	BidCount      string `json:"bid_count"`
	TimeLeft      string `json:"time_left"`
	BestOffer     string `json:"best_offer"`
	DeliveryCost  string `json:"delivery_cost"`
	Authenticity  string `json:"authenticity"`
	ProductImage  string `json:"product_image"`
	SellerInfo    string `json:"seller_info"`
	SellerName    string `json:"seller_name"`
	SellerReviews string `json:"seller_no_reviews"`
	SellerRating  string `json:"seller_rating"`
	Condition     string `json:"condition,omitempty"`
}

// Field resolves a listing field by its wire name. The predicate engine
// uses this for field names outside its closed resolver set; unknown
// names resolve to the empty string.
func (l Listing) Field(name string) string {
	switch name {
	case "title":
		return l.Title
	case "price":
		return l.Price
	case "product_link":
		return l.ProductLink
	case "bid_count":
		return l.BidCount
	case "time_left":
		return l.TimeLeft
	case "best_offer":
		return l.BestOffer
	case "delivery_cost":
		return l.DeliveryCost
	case "authenticity":
		return l.Authenticity
	case "seller_info":
		return l.SellerInfo
	case "seller_name", "seller":
		return l.SellerName
	case "seller_no_reviews":
		return l.SellerReviews
	case "seller_rating":
		return l.SellerRating
	case "condition":
		return l.Condition
	default:
		return ""
	}
}

// ProductDetail carries the per-product data fetched from a listing's
// detail page. May be partially populated.
type ProductDetail struct {
	ProductLink  string            `json:"product_link"`
	Images       []string          `json:"images,omitempty"`
	Watchers     string            `json:"watchers,omitempty"`
	Condition    string            `json:"condition,omitempty"`
	ItemFeatures map[string]string `json:"item_features,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// Operator is a custom predicate comparison operator.
type Operator string

const (
	OpContains Operator = "contains"
	OpEquals   Operator = "equals"
	OpGreater  Operator = "greater"
	OpLess     Operator = "less"
)

// Predicate is one user-defined filter clause. All predicates in a
// FilterSpec must pass for a listing to be retained.
type Predicate struct {
	Field string   `json:"field"`
	Op    Operator `json:"operator"`
	Value string   `json:"value"`
}

// SortKey selects the post-filter ordering.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortBidsDesc  SortKey = "bids-desc"
	SortTimeAsc   SortKey = "time-asc"
)

// ConditionAll disables the condition category filter.
const ConditionAll = "all"

// FilterSpec combines the standard range/category filters, the custom
// predicate list, and the sort key.
type FilterSpec struct {
	MinPrice   float64     `json:"minPrice"`
	MaxPrice   float64     `json:"maxPrice"`
	Condition  string      `json:"condition"`
	SortBy     SortKey     `json:"sortBy"`
	Predicates []Predicate `json:"predicates,omitempty"`
}

// DefaultFilterSpec passes every listing through unchanged.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		MinPrice:  0,
		MaxPrice:  10000,
		Condition: ConditionAll,
		SortBy:    SortDefault,
	}
}

// HistogramBin is one equal-width bucket of a binned numeric sample.
type HistogramBin struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// TermScore ranks one title keyword by price-weighted significance.
type TermScore struct {
	Term         string  `json:"term"`
	TFIDF        float64 `json:"tfIdf"`
	AveragePrice float64 `json:"averagePrice"`
	Frequency    int     `json:"frequency"`
}

// Metrics summarizes a (possibly filtered) listing set.
type Metrics struct {
	AvgPrice    float64 `json:"avgPrice"`
	MedianPrice float64 `json:"medianPrice"`
	AvgRating   float64 `json:"avgRating"`
	AvgBids     float64 `json:"avgBids"`
	TotalBids   int     `json:"totalBids"`
	TotalItems  int     `json:"totalItems"`
}
