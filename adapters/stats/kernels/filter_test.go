package kernels

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"climstat/domain/core"
)

func TestLanczosWeightsRejectEvenWindow(t *testing.T) {
	_, err := LanczosWeights(60, 0.01, 0, CutoffLowpass)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrEvenFilterWindow))
}

func TestLanczosWeightsSymmetric(t *testing.T) {
	w, err := LanczosWeights(21, 0.05, 0, CutoffLowpass)
	require.NoError(t, err)
	require.Len(t, w, 21)
	for i := 0; i < 10; i++ {
		assert.InDelta(t, w[i], w[20-i], 1e-15, "lobe %d", i)
	}
	assert.InDelta(t, 0.1, w[10], 1e-15, "center weight is 2*fc")
}

func TestLanczosHighpassComplementsLowpass(t *testing.T) {
	lp, err := LanczosWeights(21, 0.05, 0, CutoffLowpass)
	require.NoError(t, err)
	hp, err := LanczosWeights(21, 0.05, 0, CutoffHighpass)
	require.NoError(t, err)
	for i := range lp {
		want := -lp[i]
		if i == 10 {
			want += 1
		}
		assert.InDelta(t, want, hp[i], 1e-15, "weight %d", i)
	}
}

func TestLanczosBandpassRequiresSecondCutoff(t *testing.T) {
	_, err := LanczosWeights(21, 0.05, 0, CutoffBandpass)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrMissingCutoff))

	_, err = LanczosWeights(21, 0.05, 0.2, CutoffBandpass)
	require.NoError(t, err)
}

func TestLanczosUnknownCutoffType(t *testing.T) {
	_, err := LanczosWeights(21, 0.05, 0, "notch")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnimplementedFilter))
}

func TestConvolvedLen(t *testing.T) {
	assert.Equal(t, 80, ConvolvedLen(100, 21, ConvValid))
	assert.Equal(t, 120, ConvolvedLen(100, 21, ConvFull))
	assert.Equal(t, 100, ConvolvedLen(100, 21, ConvSame))
	assert.LessOrEqual(t, ConvolvedLen(10, 21, ConvValid), 0)
}

func TestConvolve1DIdentityKernel(t *testing.T) {
	x := []float64{1, 4, 2, 8, 5, 7}
	w := []float64{0, 1, 0}

	same := Convolve1D(x, w, ConvSame)
	require.Len(t, same, len(x))
	for i := range x {
		assert.InDelta(t, x[i], same[i], 1e-15)
	}

	valid := Convolve1D(x, w, ConvValid)
	require.Len(t, valid, len(x)-len(w)+1)
	for i := range valid {
		assert.InDelta(t, x[i+1], valid[i], 1e-15)
	}

	full := Convolve1D(x, w, ConvFull)
	require.Len(t, full, len(x)+len(w)-1)
}

func TestConvolve1DMovingAverage(t *testing.T) {
	x := []float64{3, 3, 3, 3, 3}
	w := []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	valid := Convolve1D(x, w, ConvValid)
	for _, v := range valid {
		assert.InDelta(t, 3.0, v, 1e-12, "constant series is invariant under averaging")
	}
}
