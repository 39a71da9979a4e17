// Package report renders analytics snapshots as CSV matrices.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/guarzo/auctionscope/internal/engine"
	"github.com/guarzo/auctionscope/internal/model"
)

// Listings renders the filtered listing view.
func Listings(listings []model.Listing) [][]string {
	out := [][]string{
		{"Title", "Price", "Bids", "TimeLeft", "Seller", "Rating", "Delivery", "Link"},
	}
	for _, l := range listings {
		out = append(out, []string{
			l.Title,
			l.Price,
			l.BidCount,
			l.TimeLeft,
			l.SellerName,
			l.SellerRating,
			l.DeliveryCost,
			l.ProductLink,
		})
	}
	return out
}

// Metrics renders the market overview as label/value rows.
func Metrics(m model.Metrics) [][]string {
	return [][]string{
		{"Metric", "Value"},
		{"AvgPrice", money(m.AvgPrice)},
		{"MedianPrice", money(m.MedianPrice)},
		{"AvgRating", fmt.Sprintf("%.1f%%", m.AvgRating)},
		{"AvgBids", fmt.Sprintf("%.1f", m.AvgBids)},
		{"TotalBids", strconv.Itoa(m.TotalBids)},
		{"TotalItems", strconv.Itoa(m.TotalItems)},
	}
}

// Histogram renders one binned distribution.
func Histogram(title string, bins []model.HistogramBin) [][]string {
	out := [][]string{{title, "Count"}}
	for _, b := range bins {
		out = append(out, []string{b.Range, strconv.Itoa(b.Count)})
	}
	return out
}

// Terms renders the keyword significance ranking.
func Terms(scores []model.TermScore) [][]string {
	out := [][]string{{"Term", "TFIDF", "AvgPrice", "Frequency"}}
	for _, t := range scores {
		out = append(out, []string{
			t.Term,
			fmt.Sprintf("%.3f", t.TFIDF),
			money(t.AveragePrice),
			strconv.Itoa(t.Frequency),
		})
	}
	return out
}

// WriteSnapshot writes every view of a snapshot as a CSV file under
// dir, one file per view.
func WriteSnapshot(dir string, snap engine.Snapshot) error {
	files := map[string][][]string{
		"listings.csv":         Listings(snap.Filtered),
		"metrics.csv":          Metrics(snap.Metrics),
		"price_histogram.csv":  Histogram("PriceRange", snap.PriceHistogram),
		"rating_histogram.csv": Histogram("RatingRange", snap.RatingHistogram),
		"terms.csv":            Terms(snap.Terms),
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for name, rows := range files {
		if err := WriteCSV(filepath.Join(dir, name), rows); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes rows to path with formula-injection escaping applied
// to every cell.
func WriteCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range rows {
		if err := w.Write(EscapeRow(row)); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

func money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}
