package kernels

import (
	"math"

	mstats "github.com/montanaflynn/stats"
)

// PercentileOptions configures the percentile kernel.
type PercentileOptions struct {
	// Levels are the requested percentile levels in (0, 100].
	Levels []float64
	// Threshold, when set, excludes values strictly below the bound before
	// the percentile computation.
	Threshold *float64
}

// Percentiles computes one value per requested level over the series,
// ignoring NaNs. Percentile is order-invariant in the time axis. A series
// with no usable values yields all-NaN.
func Percentiles(series []float64, opts PercentileOptions) []float64 {
	data := series
	if opts.Threshold != nil {
		data = MaskBelow(series, *opts.Threshold)
	}
	valid := Compact(data)
	out := make([]float64, len(opts.Levels))
	if len(valid) == 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	for i, q := range opts.Levels {
		v, err := mstats.Percentile(valid, q)
		if err != nil {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}
