// Package kernels contains the pure numeric kernels behind every statistic:
// reductions, percentiles, histogram/PDF construction, the ASoP
// decomposition, event duration analysis, the harmonic diurnal fit, extreme
// counts and Lanczos filtering. Every kernel consumes a 1-D series (one
// pixel's values along time) and returns a fixed-shape vector; missing
// values are NaN and degenerate inputs yield all-NaN outputs rather than
// errors.
package kernels

import (
	"math"

	mstats "github.com/montanaflynn/stats"

	"climstat/domain/core"
)

// ReduceFunc collapses a series to a single value, ignoring NaNs. An
// all-NaN series reduces to NaN.
type ReduceFunc func(series []float64) float64

// reductions is the static table of supported reduction methods. Reduction
// names are data, never code: unsupported names are rejected up front.
var reductions = map[string]ReduceFunc{
	"mean":   nanReduce(mstats.Mean),
	"median": nanReduce(mstats.Median),
	"std":    nanReduce(mstats.StandardDeviation),
	"var":    nanReduce(mstats.Variance),
	"max":    nanReduce(mstats.Max),
	"min":    nanReduce(mstats.Min),
	"sum":    nanReduce(mstats.Sum),
	"count":  func(series []float64) float64 { return float64(len(Compact(series))) },
}

// Reduction resolves a reduction method name against the static table.
func Reduction(name string) (ReduceFunc, error) {
	fn, ok := reductions[name]
	if !ok {
		return nil, core.NewUnknownReductionError(name)
	}
	return fn, nil
}

// IsReduction reports whether a name is a supported reduction.
func IsReduction(name string) bool {
	_, ok := reductions[name]
	return ok
}

func nanReduce(fn func(mstats.Float64Data) (float64, error)) ReduceFunc {
	return func(series []float64) float64 {
		valid := Compact(series)
		if len(valid) == 0 {
			return math.NaN()
		}
		v, err := fn(valid)
		if err != nil {
			return math.NaN()
		}
		return v
	}
}

// Compact returns the non-NaN values of a series in order. The input is
// never modified.
func Compact(series []float64) []float64 {
	out := make([]float64, 0, len(series))
	for _, v := range series {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// MaskBelow returns a copy of the series with values strictly below thr set
// to NaN. Values below threshold become missing, not zero.
func MaskBelow(series []float64, thr float64) []float64 {
	out := append([]float64(nil), series...)
	for i, v := range out {
		if !math.IsNaN(v) && v < thr {
			out[i] = math.NaN()
		}
	}
	return out
}

// AllNaN reports whether every element of the series is NaN.
func AllNaN(series []float64) bool {
	for _, v := range series {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

// NaNs returns a fresh all-NaN vector of length n.
func NaNs(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
