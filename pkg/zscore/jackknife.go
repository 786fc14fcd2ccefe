// 14 Sep 2026

package zscore

import "math"

// mean is NaN for an empty slice.
func mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// Normalize turns an average Z-score into a model score using the
// global mean and sd of a table.
func Normalize(avg float64, gMean, gSD float32) float64 {
	return (avg - float64(gMean)) / float64(gSD)
}

// Jackknife estimates the sd of the model score from the leave one
// out means of scores, each normalised with gMean and gSD. It is NaN
// with fewer than two scores.
// See https://en.wikipedia.org/wiki/Jackknife_resampling
func Jackknife(scores []float64, gMean, gSD float32) float64 {
	n := len(scores)
	if n <= 1 {
		return math.NaN()
	}
	var sum float64
	for _, z := range scores {
		sum += z
	}
	loo := make([]float64, n)
	for i, z := range scores {
		loo[i] = Normalize((sum-z)/float64(n-1), gMean, gSD)
	}
	avg := mean(loo)
	var sumD float64
	for _, x := range loo {
		sumD += (x - avg) * (x - avg)
	}
	fn := float64(n)
	return math.Sqrt((fn - 1) * sumD / fn)
}
