// Package extract is the parsing boundary between raw listing text and
// the numeric engine. Nothing in here raises: a field either parses or
// is reported unparseable, and callers exclude unparseable values from
// their samples.
package extract

import (
	"math"
	"regexp"
	"strconv"
)

var (
	nonNumeric = regexp.MustCompile(`[^0-9.\-]+`)
	digitRun   = regexp.MustCompile(`(\d+)`)
)

// Price parses a currency field like "$1,234.50". Every character that
// is not a digit, '.' or '-' is stripped before parsing. ok is false
// when nothing numeric remains; callers must drop the value rather than
// treat it as zero.
func Price(s string) (float64, bool) {
	return parseFloat(s)
}

// Rating parses a percentage field like "98.2%". Same strip-and-parse
// policy as Price.
func Rating(s string) (float64, bool) {
	return parseFloat(s)
}

// Bids parses a bid-count field like "3 bids ·". The first run of
// digits wins; no digits means zero bids.
func Bids(s string) int {
	m := digitRun.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// Prices maps Price over a listing-field slice, keeping only the finite
// parseable values. The result is what statistics run over.
func Prices(fields []string) []float64 {
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		if v, ok := Price(f); ok {
			out = append(out, v)
		}
	}
	return out
}

// Ratings maps Rating over a listing-field slice, keeping only the
// finite parseable values.
func Ratings(fields []string) []float64 {
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		if v, ok := Rating(f); ok {
			out = append(out, v)
		}
	}
	return out
}

func parseFloat(s string) (float64, bool) {
	cleaned := nonNumeric.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
