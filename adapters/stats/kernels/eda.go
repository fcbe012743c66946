package kernels

import (
	"fmt"
	"math"
)

// EDAOptions configures event duration analysis.
type EDAOptions struct {
	// Threshold separates events (>= threshold) from dry intervals.
	Threshold float64
	// DurationBins are ascending run-length edges; a run of duration d
	// lands in bin i when DurationBins[i] <= d < DurationBins[i+1], with
	// the last edge owning everything at or beyond it.
	DurationBins []float64
	// EventStatistic labels each run: "amount" is the run mean, otherwise
	// any supported reduction name (e.g. "max", "sum").
	EventStatistic string
	// StatisticBins bucket the per-run statistic; rows of the output.
	StatisticBins []float64
	// DryEvents enables the extra duration column accounting below-threshold
	// interval lengths, bucketed by DryBins.
	DryEvents bool
	DryBins   []float64
}

// EDADims returns the fixed (frequency, duration) output dimensions for the
// options: statistic bins minus one rows, duration bins columns plus one
// when dry intervals are tracked.
func (o EDAOptions) EDADims() (frq, dur int) {
	frq = len(o.StatisticBins) - 1
	dur = len(o.DurationBins)
	if o.DryEvents {
		dur++
	}
	return frq, dur
}

// EDA classifies contiguous above-threshold runs by duration and by an event
// intensity statistic, producing a flattened (frequency x duration) count
// matrix per pixel. NaNs break runs and are excluded from dry intervals. An
// all-NaN series yields an all-NaN matrix.
func EDA(series []float64, opts EDAOptions) ([]float64, error) {
	frq, dur := opts.EDADims()
	if frq <= 0 || len(opts.DurationBins) == 0 {
		return nil, fmt.Errorf("eda: duration and statistic bins must be set")
	}
	statName := opts.EventStatistic
	if statName == "" || statName == "amount" {
		statName = "mean"
	}
	reduce, err := Reduction(statName)
	if err != nil {
		return nil, err
	}
	if opts.DryEvents && len(opts.DryBins) == 0 {
		return nil, fmt.Errorf("eda: dry events enabled but dry bins unset")
	}

	if AllNaN(series) {
		return NaNs(frq * dur), nil
	}

	out := make([]float64, frq*dur)
	record := func(row, col int) {
		if row >= 0 && row < frq && col >= 0 && col < dur {
			out[row*dur+col]++
		}
	}

	flushEvent := func(run []float64) {
		if len(run) == 0 {
			return
		}
		col := durationColumn(float64(len(run)), opts.DurationBins)
		if col < 0 {
			return
		}
		stat := reduce(run)
		row := binIndex(stat, opts.StatisticBins)
		record(row, col)
	}
	flushDry := func(length int) {
		if !opts.DryEvents || length == 0 {
			return
		}
		row := durationColumn(float64(length), opts.DryBins)
		// Dry interval counts occupy the extra trailing duration column,
		// one row per dry-length bin.
		record(row, dur-1)
	}

	var run []float64
	dryLen := 0
	for _, v := range series {
		switch {
		case math.IsNaN(v):
			flushEvent(run)
			run = run[:0]
			flushDry(dryLen)
			dryLen = 0
		case v >= opts.Threshold:
			flushDry(dryLen)
			dryLen = 0
			run = append(run, v)
		default:
			flushEvent(run)
			run = run[:0]
			dryLen++
		}
	}
	flushEvent(run)
	flushDry(dryLen)
	return out, nil
}

// durationColumn maps a run length onto ascending integer-style bins: the
// column whose edge is the largest one <= d. Lengths below the first edge
// are dropped; lengths at or beyond the last edge land in the last column.
func durationColumn(d float64, bins []float64) int {
	if d < bins[0] {
		return -1
	}
	col := 0
	for i := 1; i < len(bins); i++ {
		if d >= bins[i] {
			col = i
		} else {
			break
		}
	}
	return col
}
