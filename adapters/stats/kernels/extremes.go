package kernels

import "math"

// Rxx counts the time steps where the value meets or exceeds the threshold.
// With normalize, the count is divided by the record length so pixels with
// different valid spans stay comparable. An all-NaN series yields NaN.
func Rxx(series []float64, thr float64, normalize bool) float64 {
	if AllNaN(series) {
		return math.NaN()
	}
	count := 0.0
	for _, v := range series {
		if !math.IsNaN(v) && v >= thr {
			count++
		}
	}
	if normalize {
		return count / float64(len(series))
	}
	return count
}
