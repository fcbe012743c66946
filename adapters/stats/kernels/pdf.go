package kernels

import (
	"math"
)

// PDFOptions configures the frequency-intensity distribution kernel.
type PDFOptions struct {
	// Edges are the ascending bin edges; bin count is len(Edges)-1.
	Edges []float64
	// Normalized selects the relative-contribution mode: each bin's
	// contribution is occurrence frequency times bin mean value, with the
	// whole vector re-normalized to sum to 1. It answers "what fraction of
	// the total intensity comes from this bin", not "what fraction of
	// events".
	Normalized bool
	// Threshold, when set, excludes values strictly below the bound before
	// binning.
	Threshold *float64
	// DryEventThr, when set, counts values below the bound as dry events
	// reported in the distinguished leading output slot.
	DryEventThr *float64
}

// PDFLen returns the kernel's fixed output length for the given edges: one
// leading dry-event slot plus one slot per bin.
func PDFLen(edges []float64) int { return len(edges) }

// PDF builds the binned distribution of a series. The output vector has a
// leading dry-event slot (NaN when no dry-event threshold is configured)
// followed by len(Edges)-1 bin slots. An all-NaN series yields an all-NaN
// vector rather than raising.
func PDF(series []float64, opts PDFOptions) []float64 {
	nbins := len(opts.Edges) - 1
	if AllNaN(series) {
		return NaNs(nbins + 1)
	}
	data := Compact(series)

	dry := math.NaN()
	if opts.DryEventThr != nil {
		n := 0
		for _, v := range data {
			if v < *opts.DryEventThr {
				n++
			}
		}
		dry = float64(n)
	}

	if opts.Threshold != nil {
		kept := data[:0:0]
		for _, v := range data {
			if v >= *opts.Threshold {
				kept = append(kept, v)
			}
		}
		data = kept
	}
	if len(data) == 0 {
		return NaNs(nbins + 1)
	}

	out := make([]float64, nbins+1)
	out[0] = dry
	if opts.Normalized {
		copy(out[1:], contributionPerBin(data, opts.Edges))
	} else {
		copy(out[1:], densityHistogram(data, opts.Edges))
	}
	return out
}

// binIndex places v into the half-open bin [edges[i], edges[i+1]); the last
// bin additionally includes the upper edge. Returns -1 when out of range.
func binIndex(v float64, edges []float64) int {
	n := len(edges) - 1
	if v < edges[0] || v > edges[n] {
		return -1
	}
	if v == edges[n] {
		return n - 1
	}
	lo, hi := 0, n
	for lo < hi-1 {
		mid := (lo + hi) / 2
		if v < edges[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// densityHistogram is the standard binned density: count per bin divided by
// total in-range count times bin width.
func densityHistogram(data, edges []float64) []float64 {
	nbins := len(edges) - 1
	counts := make([]float64, nbins)
	total := 0.0
	for _, v := range data {
		if i := binIndex(v, edges); i >= 0 {
			counts[i]++
			total++
		}
	}
	if total == 0 {
		return counts
	}
	for i := range counts {
		counts[i] /= total * (edges[i+1] - edges[i])
	}
	return counts
}

// contributionPerBin computes the normalized relative contribution: bin
// occurrence frequency times bin mean value, re-normalized so the vector
// sums to 1. Empty bins contribute a mean of 0.0, which conflates "no data"
// with "zero mean".
func contributionPerBin(data, edges []float64) []float64 {
	nbins := len(edges) - 1
	sums := make([]float64, nbins)
	counts := make([]float64, nbins)
	total := 0.0
	for _, v := range data {
		if i := binIndex(v, edges); i >= 0 {
			sums[i] += v
			counts[i]++
			total++
		}
	}
	contrib := make([]float64, nbins)
	if total == 0 {
		return contrib
	}
	csum := 0.0
	for i := range contrib {
		mean := 0.0
		if counts[i] > 0 {
			mean = sums[i] / counts[i]
		}
		contrib[i] = (counts[i] / total) * mean
		csum += contrib[i]
	}
	if csum != 0 {
		for i := range contrib {
			contrib[i] /= csum
		}
	}
	return contrib
}
