package kernels

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFDensityIntegratesToOne(t *testing.T) {
	series := []float64{0.2, 0.4, 1.5, 2.5, 2.6, 7, 9, 9.5}
	edges := []float64{0, 1, 5, 10}
	got := PDF(series, PDFOptions{Edges: edges})
	require.Len(t, got, PDFLen(edges))

	assert.True(t, math.IsNaN(got[0]), "no dry-event threshold, leading slot is missing")
	integral := 0.0
	for i := 1; i < len(got); i++ {
		integral += got[i] * (edges[i] - edges[i-1])
	}
	assert.InDelta(t, 1.0, integral, 1e-12)
}

func TestPDFNormalizedContributionsSumToOne(t *testing.T) {
	series := []float64{0.5, 0.6, 2, 3, 8, 9, 9.9}
	edges := []float64{0, 1, 5, 10}
	got := PDF(series, PDFOptions{Edges: edges, Normalized: true})

	sum := 0.0
	for i := 1; i < len(got); i++ {
		sum += got[i]
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestPDFNormalizedEmptyBinContributesZero(t *testing.T) {
	// Middle bin [1, 5) holds no data; its contribution must be exactly 0.
	series := []float64{0.5, 0.5, 8, 9}
	edges := []float64{0, 1, 5, 10}
	got := PDF(series, PDFOptions{Edges: edges, Normalized: true})
	assert.Equal(t, 0.0, got[2])
}

func TestPDFDryEventCount(t *testing.T) {
	series := []float64{0.01, 0.05, 0.2, 1, 2}
	edges := []float64{0, 1, 5}
	dry := 0.1
	got := PDF(series, PDFOptions{Edges: edges, DryEventThr: &dry})
	assert.Equal(t, 2.0, got[0], "values below the dry bound count as dry events")
}

func TestPDFDryCountPrecedesThresholdFilter(t *testing.T) {
	series := []float64{0.01, 0.05, 0.2, 1, 2}
	edges := []float64{0, 1, 5}
	dry, thr := 0.1, 0.5
	got := PDF(series, PDFOptions{Edges: edges, DryEventThr: &dry, Threshold: &thr})
	// Dry events are counted on the unfiltered series.
	assert.Equal(t, 2.0, got[0])
}

func TestPDFAllNaNSeries(t *testing.T) {
	edges := []float64{0, 1, 5}
	got := PDF([]float64{math.NaN(), math.NaN()}, PDFOptions{Edges: edges})
	require.Len(t, got, 3)
	for _, v := range got {
		assert.True(t, math.IsNaN(v))
	}
}

func TestBinIndexEdgeOwnership(t *testing.T) {
	edges := []float64{0, 1, 5, 10}
	assert.Equal(t, 0, binIndex(0, edges))
	assert.Equal(t, 1, binIndex(1, edges), "inner edge belongs to the right bin")
	assert.Equal(t, 2, binIndex(10, edges), "upper edge belongs to the last bin")
	assert.Equal(t, -1, binIndex(10.5, edges))
	assert.Equal(t, -1, binIndex(-0.1, edges))
}
