package stats

import (
	"math"
	"sort"
)

// Mean computes the arithmetic mean of values. Returns 0.0 for an empty series.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// Median computes the median of values without mutating the input.
// An even-length series yields the mean of the two middle values.
// Returns 0.0 for an empty series.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2.0
}

// SampleStdDev computes the sample standard deviation (n-1 divisor) of values.
// Series with fewer than 2 points have standard deviation 0.
func SampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0.0
	}

	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}

	return math.Sqrt(sumSq / float64(len(values)-1))
}

// Round2 rounds v to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
