package stats

import (
	"fmt"
	"math"

	"github.com/guarzo/auctionscope/internal/model"
)

// Histogram bins a numeric sample into bins equal-width buckets. The
// prefix is prepended to both bounds of each range label ("$" for
// prices, "" for ratings). Every value lands in exactly one bin: the
// floor-based index is clamped so the sample maximum stays inside the
// last bin, and a zero-width range puts everything in bin 0. The sum of
// bin counts always equals len(sample).
func Histogram(sample []float64, bins int, prefix string) []model.HistogramBin {
	if len(sample) == 0 || bins < 1 {
		return nil
	}

	min, max := sample[0], sample[0]
	for _, v := range sample[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	binWidth := (max - min) / float64(bins)

	counts := make([]int, bins)
	for _, v := range sample {
		idx := 0
		if binWidth > 0 {
			idx = int(math.Floor((v - min) / binWidth))
			if idx > bins-1 {
				idx = bins - 1
			}
		}
		counts[idx]++
	}

	out := make([]model.HistogramBin, bins)
	for i, count := range counts {
		lo := min + float64(i)*binWidth
		hi := min + float64(i+1)*binWidth
		out[i] = model.HistogramBin{
			Range: fmt.Sprintf("%s%.2f - %s%.2f", prefix, lo, prefix, hi),
			Count: count,
		}
	}
	return out
}
