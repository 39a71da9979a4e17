package stats

import "sort"

// Quartiles computes Q1, Q3 and the interquartile range of a sample
// using nearest-rank index picks (sorted[floor(n*0.25)] and
// sorted[floor(n*0.75)]), not interpolation. The simpler estimator is
// kept deliberately so downstream outputs stay reproducible. An empty
// sample yields zeros.
func Quartiles(sample []float64) (q1, q3, iqr float64) {
	if len(sample) == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	q1 = sorted[len(sorted)/4]
	q3 = sorted[len(sorted)*3/4]
	return q1, q3, q3 - q1
}

// OutlierBounds derives the 1.5*IQR inlier interval for a sample. The
// lower bound is floored at zero since prices and bid counts cannot go
// negative.
func OutlierBounds(sample []float64) (lower, upper float64) {
	q1, q3, iqr := Quartiles(sample)
	lower = q1 - 1.5*iqr
	if lower < 0 {
		lower = 0
	}
	upper = q3 + 1.5*iqr
	return lower, upper
}
