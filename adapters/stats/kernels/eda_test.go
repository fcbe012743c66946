package kernels

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEDAHandCountedMatrix(t *testing.T) {
	// Events (thr 1): [2,2] dur 2 mean 2; [7] dur 1 mean 7; [1,1,1,1] dur 4
	// mean 1. Dry intervals: one of length 1 and one of length 2.
	series := []float64{2, 2, 0, 7, 0, 0, 1, 1, 1, 1}
	opts := EDAOptions{
		Threshold:      1,
		DurationBins:   []float64{1, 2, 3},
		EventStatistic: "amount",
		StatisticBins:  []float64{0, 5, 10},
		DryEvents:      true,
		DryBins:        []float64{1, 2},
	}
	frq, dur := opts.EDADims()
	require.Equal(t, 2, frq)
	require.Equal(t, 4, dur)

	got, err := EDA(series, opts)
	require.NoError(t, err)
	require.Len(t, got, frq*dur)

	want := make([]float64, frq*dur)
	want[0*dur+1] = 1 // mean 2, duration 2
	want[1*dur+0] = 1 // mean 7, duration 1
	want[0*dur+2] = 1 // mean 1, duration 4 lands in the open-ended last bin
	want[0*dur+3] = 1 // dry interval of length 1
	want[1*dur+3] = 1 // dry interval of length 2
	assert.Equal(t, want, got)
}

func TestEDAWithoutDryColumn(t *testing.T) {
	series := []float64{5, 5, 0, 0}
	opts := EDAOptions{
		Threshold:      1,
		DurationBins:   []float64{1, 2},
		EventStatistic: "max",
		StatisticBins:  []float64{0, 10},
	}
	frq, dur := opts.EDADims()
	require.Equal(t, 1, frq)
	require.Equal(t, 2, dur)

	got, err := EDA(series, opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, got)
}

func TestEDANaNBreaksRuns(t *testing.T) {
	// The NaN splits what would otherwise be one duration-2 event into two
	// duration-1 events.
	series := []float64{5, math.NaN(), 5}
	opts := EDAOptions{
		Threshold:     1,
		DurationBins:  []float64{1, 2},
		StatisticBins: []float64{0, 10},
	}
	got, err := EDA(series, opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0}, got)
}

func TestEDAAllNaN(t *testing.T) {
	opts := EDAOptions{
		Threshold:     1,
		DurationBins:  []float64{1, 2},
		StatisticBins: []float64{0, 10},
	}
	got, err := EDA([]float64{math.NaN(), math.NaN()}, opts)
	require.NoError(t, err)
	for _, v := range got {
		assert.True(t, math.IsNaN(v))
	}
}

func TestEDARejectsMissingBins(t *testing.T) {
	_, err := EDA([]float64{1}, EDAOptions{Threshold: 1})
	require.Error(t, err)

	_, err = EDA([]float64{1}, EDAOptions{
		Threshold:     1,
		DurationBins:  []float64{1, 2},
		StatisticBins: []float64{0, 10},
		DryEvents:     true,
	})
	require.Error(t, err, "dry events without dry bins")
}
