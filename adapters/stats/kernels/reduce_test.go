package kernels

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"climstat/domain/core"
)

func TestReductionsIgnoreNaN(t *testing.T) {
	series := []float64{1, math.NaN(), 3, math.NaN(), 5}

	mean, err := Reduction("mean")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, mean(series), 1e-12)

	sum, err := Reduction("sum")
	require.NoError(t, err)
	assert.InDelta(t, 9.0, sum(series), 1e-12)

	count, err := Reduction("count")
	require.NoError(t, err)
	assert.Equal(t, 3.0, count(series))

	max, err := Reduction("max")
	require.NoError(t, err)
	assert.Equal(t, 5.0, max(series))
}

func TestReductionsAllNaNYieldNaN(t *testing.T) {
	series := []float64{math.NaN(), math.NaN()}
	for _, name := range []string{"mean", "median", "std", "var", "max", "min", "sum"} {
		fn, err := Reduction(name)
		require.NoError(t, err, name)
		assert.True(t, math.IsNaN(fn(series)), "%s over all-NaN", name)
	}
	count, _ := Reduction("count")
	assert.Equal(t, 0.0, count(series))
}

func TestReductionUnknownName(t *testing.T) {
	_, err := Reduction("harmonic-mean")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnknownReduction))
	assert.False(t, IsReduction("harmonic-mean"))
	assert.True(t, IsReduction("median"))
}

func TestMaskBelow(t *testing.T) {
	series := []float64{0.05, 0.1, 2, math.NaN()}
	masked := MaskBelow(series, 0.1)

	assert.True(t, math.IsNaN(masked[0]), "below threshold becomes missing, not zero")
	assert.Equal(t, 0.1, masked[1], "threshold itself is kept")
	assert.Equal(t, 2.0, masked[2])
	assert.True(t, math.IsNaN(masked[3]))
	assert.Equal(t, 0.05, series[0], "input must not be modified")
}
