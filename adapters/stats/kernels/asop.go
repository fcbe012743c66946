package kernels

import (
	"math"
)

// ASoP (Analysis of Scales of Precipitation) decomposes precipitation
// intensity into an actual contribution (C) and a fractional contribution
// (FC) per intensity bin.

// asop bin generator bounds: edges grow log-linearly between these
// intensities over the generator index range.
const (
	asopMinIntensity = 0.005
	asopMaxIntensity = 120.0
	asopIndexSpan    = 59.0
)

// ASoPBinEdges expands the bin-count generator into edges: a leading 0.0
// followed by nrBins logarithmically growing edges.
func ASoPBinEdges(nrBins int) []float64 {
	edges := make([]float64, nrBins+1)
	edges[0] = 0.0
	span := math.Log(asopMaxIntensity) - math.Log(asopMinIntensity)
	for n := 0; n < nrBins; n++ {
		edges[n+1] = math.Exp(math.Log(asopMinIntensity) + float64(n)*span/asopIndexSpan)
	}
	return edges
}

// ASoP computes the two decomposition factors per bin for one pixel's
// series. The output is the C factor over all bins followed by the FC
// factor over all bins (factors axis leading). An all-NaN series yields an
// all-NaN vector.
func ASoP(series, edges []float64) []float64 {
	nbins := len(edges) - 1
	if AllNaN(series) {
		return NaNs(2 * nbins)
	}
	data := Compact(series)

	sums := make([]float64, nbins)
	for _, v := range data {
		if i := binIndex(v, edges); i >= 0 {
			sums[i] += v
		}
	}

	out := make([]float64, 2*nbins)
	total := 0.0
	n := float64(len(data))
	for i, s := range sums {
		// C: mean contribution of the bin to the overall intensity.
		out[i] = s / n
		total += out[i]
	}
	for i := 0; i < nbins; i++ {
		if total != 0 {
			out[nbins+i] = out[i] / total
		}
	}
	return out
}
