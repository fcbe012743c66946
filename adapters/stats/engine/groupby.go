package engine

import (
	"math"
	"time"

	"climstat/domain/core"
	"climstat/domain/grid"
	"climstat/domain/stats"
)

var nan = math.NaN()

// seasonGroups buckets time indices by meteorological season in the
// canonical DJF, MAM, JJA, SON order, independent of the order seasons are
// encountered in the data. Seasons absent from the record keep an empty
// group and reduce to NaN.
func seasonGroups(times []time.Time) ([][]int, grid.Coord) {
	bySeason := make(map[core.Season][]int, 4)
	for i, t := range times {
		s := core.SeasonOf(t.Month())
		bySeason[s] = append(bySeason[s], i)
	}
	groups := make([][]int, 0, 4)
	labels := make([]string, 0, 4)
	for _, s := range core.Seasons {
		groups = append(groups, bySeason[s])
		labels = append(labels, string(s))
	}
	return groups, grid.LabelCoord(labels...)
}

// monthGroups buckets time indices by calendar month, ascending over the
// months present in the record.
func monthGroups(times []time.Time) ([][]int, grid.Coord) {
	byMonth := make(map[int][]int, 12)
	for i, t := range times {
		m := int(t.Month())
		byMonth[m] = append(byMonth[m], i)
	}
	var groups [][]int
	var labels []float64
	for m := 1; m <= 12; m++ {
		if idxs, ok := byMonth[m]; ok {
			groups = append(groups, idxs)
			labels = append(labels, float64(m))
		}
	}
	return groups, grid.FloatCoord(labels...)
}

// hourGroups buckets time indices by hour of day, ascending over the hours
// present in the record.
func hourGroups(times []time.Time) ([][]int, grid.Coord) {
	byHour := make(map[int][]int, 24)
	for i, t := range times {
		h := t.Hour()
		byHour[h] = append(byHour[h], i)
	}
	var groups [][]int
	var labels []float64
	for h := 0; h < 24; h++ {
		if idxs, ok := byHour[h]; ok {
			groups = append(groups, idxs)
			labels = append(labels, float64(h))
		}
	}
	return groups, grid.FloatCoord(labels...)
}

// hourGroupsFull buckets time indices over all 24 hours; hours without data
// keep empty groups. The harmonic fit needs the complete diurnal cycle so
// that a missing hour surfaces as NaN and short-circuits the fit.
func hourGroupsFull(times []time.Time) ([][]int, grid.Coord) {
	groups := make([][]int, 24)
	labels := make([]float64, 24)
	for i, t := range times {
		h := t.Hour()
		groups[h] = append(groups[h], i)
	}
	for h := range labels {
		labels[h] = float64(h)
	}
	return groups, grid.FloatCoord(labels...)
}

// samplesPerHour counts how many time steps fall on each hour 0-23; the
// side output reported with frequency-mode diurnal statistics.
func samplesPerHour(times []time.Time) []float64 {
	counts := make([]float64, 24)
	for _, t := range times {
		counts[t.Hour()]++
	}
	return counts
}

// normalizeHours shifts fractional timestamps up to whole hours, emitting a
// non-fatal notice when any shift happens.
func (e *Engine) normalizeHours(ds *grid.Dataset) (*grid.Dataset, error) {
	times := ds.Time()
	shifted := false
	for _, t := range times {
		if !t.Truncate(time.Hour).Equal(t) {
			shifted = true
			break
		}
	}
	if !shifted {
		return ds, nil
	}
	e.log.Warn("Shifting time stamps (upwards) to whole hours!")
	ceiled := make([]time.Time, len(times))
	for i, t := range times {
		ceiled[i] = core.CeilHour(t)
	}
	return ds.WithTime(ceiled)
}

// maskVarThreshold applies the standing threshold convention: with a
// per-variable mapping, only variables named in the mapping are masked;
// with a scalar, every variable is. Returns the (possibly derived) dataset,
// the resolved bound and whether one applied.
func maskVarThreshold(ds *grid.Dataset, variable core.VariableKey, thr stats.Threshold) (*grid.Dataset, float64, bool, error) {
	bound, ok := thr.Resolve(variable)
	if !ok {
		return ds, 0, false, nil
	}
	masked, err := ds.MaskVarBelow(variable, bound)
	if err != nil {
		return nil, 0, false, err
	}
	return masked, bound, true, nil
}
