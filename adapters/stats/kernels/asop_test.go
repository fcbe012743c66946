package kernels

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASoPBinEdges(t *testing.T) {
	edges := ASoPBinEdges(60)
	require.Len(t, edges, 61)
	assert.Equal(t, 0.0, edges[0])
	assert.InDelta(t, asopMinIntensity, edges[1], 1e-12)
	assert.InDelta(t, asopMaxIntensity, edges[60], 1e-9)
	for i := 1; i < len(edges); i++ {
		assert.Greater(t, edges[i], edges[i-1], "edges must be strictly ascending")
	}
}

func TestASoPFractionalContributionsSumToOne(t *testing.T) {
	series := []float64{0.001, 0.01, 0.5, 2, 5, 20, 80}
	edges := ASoPBinEdges(50)
	nbins := len(edges) - 1
	got := ASoP(series, edges)
	require.Len(t, got, 2*nbins)

	fcSum := 0.0
	for i := nbins; i < 2*nbins; i++ {
		fcSum += got[i]
	}
	assert.InDelta(t, 1.0, fcSum, 1e-12)
}

func TestASoPContributionsRecoverTheMean(t *testing.T) {
	series := []float64{0.5, 1, 2, 4}
	edges := ASoPBinEdges(50)
	nbins := len(edges) - 1
	got := ASoP(series, edges)

	cSum := 0.0
	for i := 0; i < nbins; i++ {
		cSum += got[i]
	}
	// Sum of actual contributions equals the series mean when every value
	// falls inside the bin range.
	assert.InDelta(t, 1.875, cSum, 1e-12)
}

func TestASoPAllNaN(t *testing.T) {
	edges := ASoPBinEdges(10)
	got := ASoP([]float64{math.NaN()}, edges)
	for _, v := range got {
		assert.True(t, math.IsNaN(v))
	}
}
