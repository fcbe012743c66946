package engine

import (
	"context"
	"fmt"
	"strings"

	"climstat/adapters/stats/kernels"
	"climstat/domain/core"
	"climstat/domain/grid"
	"climstat/domain/stats"
)

// diurnalCycle groups the variable by hour of day. In "amount" mode the
// configured stat method runs per hour (named reduction, percentile levels
// or per-hour PDF); in "frequency" mode the kernel counts threshold
// exceedances per hour and reports how many time steps contributed to each
// hour. Frequency mode requires a threshold.
func (e *Engine) diurnalCycle(ctx context.Context, ds *grid.Dataset, variable core.VariableKey, stat core.StatisticKey, cfg stats.Settings) (*grid.Dataset, error) {
	mode, _ := cfg.String("dcycle stat")
	ds, thr, hasThr, err := maskVarThreshold(ds, variable, cfg.Threshold("thr"))
	if err != nil {
		return nil, err
	}
	ds, err = e.normalizeHours(ds)
	if err != nil {
		return nil, err
	}

	groups, hourCoord := hourGroups(ds.Time())
	hourAxis := OutputAxis{Name: "hour", Size: len(groups), Coord: hourCoord}

	var out *grid.Array
	coords := map[string]grid.Coord{"hour": hourCoord}
	var statnm string

	switch mode {
	case "amount":
		method, _ := cfg.String("stat method")
		statnm = fmt.Sprintf("Amount | stat: %s | thr: %s", method, fmtThr(thr, hasThr))
		switch {
		case strings.Contains(method, "percentile"):
			levels, err := stats.ParsePercentileSpec(method)
			if err != nil {
				return nil, err
			}
			pctlAxis := OutputAxis{Name: "pctls", Size: len(levels), Coord: grid.FloatCoord(levels...)}
			var bound *float64
			if hasThr {
				bound = &thr
			}
			opts := kernels.PercentileOptions{Levels: levels, Threshold: bound}
			out, err = e.applyGrouped(ctx, ds, variable, []OutputAxis{pctlAxis}, hourAxis, groups,
				func(sub []float64) ([]float64, error) {
					return kernels.Percentiles(sub, opts), nil
				})
			if err != nil {
				return nil, err
			}
			coords["pctls"] = pctlAxis.Coord
		case strings.Contains(method, "pdf"):
			edges, err := diurnalPDFBins(cfg)
			if err != nil {
				return nil, err
			}
			binAxis := OutputAxis{Name: "bins", Size: kernels.PDFLen(edges), Coord: grid.FloatCoord(edges...)}
			var bound *float64
			if hasThr {
				bound = &thr
			}
			opts := kernels.PDFOptions{Edges: edges, Threshold: bound}
			out, err = e.applyGrouped(ctx, ds, variable, []OutputAxis{binAxis}, hourAxis, groups,
				func(sub []float64) ([]float64, error) {
					return kernels.PDF(sub, opts), nil
				})
			if err != nil {
				return nil, err
			}
			coords["bins"] = binAxis.Coord
		default:
			reduce, err := kernels.Reduction(method)
			if err != nil {
				return nil, err
			}
			out, err = e.reduceByGroups(ctx, ds, variable, hourAxis, groups, reduce)
			if err != nil {
				return nil, err
			}
		}

	case "frequency":
		if !hasThr {
			return nil, core.NewMissingThresholdError(string(stat), string(variable))
		}
		statnm = fmt.Sprintf("Frequency | stat: counts | thr: %s", fmtThr(thr, hasThr))
		count, _ := kernels.Reduction("count")
		out, err = e.reduceByGroups(ctx, ds, variable, hourAxis, groups, count)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("diurnal cycle: unknown dcycle stat %q", mode)
	}

	if hours, ok := cfg.Floats("hours"); ok && cfg["hours"] != nil {
		out, coords["hour"], err = selectHours(out, hourCoord, hours)
		if err != nil {
			return nil, err
		}
	}

	result, err := e.assemble(variable, out,
		coords, fmt.Sprintf("Diurnal cycle | %s", statnm))
	if err != nil {
		return nil, err
	}
	if mode == "frequency" {
		if err := addSamplesPerHour(result, ds); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// dcycleHarmonic computes the hourly diurnal cycle (mean in amount mode,
// exceedance counts in frequency mode) and fits the first two harmonics per
// pixel. The fit output is a fixed 204-vector: (c1, p1, c2, p2) followed by
// the combined curve over one day. The fit always runs over the full 24
// hours so a missing hour yields an all-missing fit.
func (e *Engine) dcycleHarmonic(ctx context.Context, ds *grid.Dataset, variable core.VariableKey, stat core.StatisticKey, cfg stats.Settings) (*grid.Dataset, error) {
	mode, _ := cfg.String("dcycle stat")
	ds, thr, hasThr, err := maskVarThreshold(ds, variable, cfg.Threshold("thr"))
	if err != nil {
		return nil, err
	}

	var hourlyReduce kernels.ReduceFunc
	var statnm string
	switch mode {
	case "amount":
		hourlyReduce, _ = kernels.Reduction("mean")
		statnm = fmt.Sprintf("Amount | thr: %s", fmtThr(thr, hasThr))
	case "frequency":
		if !hasThr {
			return nil, core.NewMissingThresholdError(string(stat), string(variable))
		}
		hourlyReduce, _ = kernels.Reduction("count")
		statnm = fmt.Sprintf("Frequency | thr: %s", fmtThr(thr, hasThr))
	default:
		return nil, fmt.Errorf("dcycle harmonic: unknown dcycle stat %q", mode)
	}

	ds, err = e.normalizeHours(ds)
	if err != nil {
		return nil, err
	}
	groups, hourCoord := hourGroupsFull(ds.Time())
	hourAxis := OutputAxis{Name: "hour", Size: 24, Coord: hourCoord}
	hourly, err := e.reduceByGroups(ctx, ds, variable, hourAxis, groups, hourlyReduce)
	if err != nil {
		return nil, err
	}

	fitAxis := OutputAxis{Name: "fit", Size: kernels.HarmonicFitLen}
	fit, err := e.applyAlongAxis(ctx, hourly, "hour", ds.ChunkSize, []OutputAxis{fitAxis},
		func(hourlyCycle []float64) ([]float64, error) {
			return kernels.HarmonicFit(hourlyCycle), nil
		})
	if err != nil {
		return nil, err
	}

	result, err := e.assemble(variable, fit, nil,
		fmt.Sprintf("Harmonic fit of diurnal cycle | Statistic: %s", statnm))
	if err != nil {
		return nil, err
	}
	result.SetAttr("Data info",
		"First four values in each array with fitted data are fit parameters; "+
			"(c1, p1, c2, p2), where c1/c2 and p1/p2 represents amplitude and phase "+
			"of 1st/2nd harmonic of the fit.")
	if mode == "frequency" {
		if err := addSamplesPerHour(result, ds); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// diurnalPDFBins reads the mandatory bin range from the "method kwargs"
// option.
func diurnalPDFBins(cfg stats.Settings) ([]float64, error) {
	kwargs, ok := cfg["method kwargs"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: bins are missing in 'method kwargs'", core.ErrBadBinSpec)
	}
	raw, ok := kwargs["bins"]
	if !ok {
		return nil, fmt.Errorf("%w: bins are missing in 'method kwargs'", core.ErrBadBinSpec)
	}
	return stats.BinSpecFrom(raw).Edges()
}

// selectHours restricts the hour axis to a caller-selected subset.
func selectHours(arr *grid.Array, hourCoord grid.Coord, hours []float64) (*grid.Array, grid.Coord, error) {
	want := make(map[float64]bool, len(hours))
	for _, h := range hours {
		want[h] = true
	}
	var keep []int
	var labels []float64
	for i, h := range hourCoord.Values {
		if want[h] {
			keep = append(keep, i)
			labels = append(labels, h)
		}
	}
	if len(keep) == 0 {
		return nil, grid.Coord{}, fmt.Errorf("diurnal cycle: requested hours not present in data")
	}
	out, err := selectIndices(arr, "hour", keep)
	if err != nil {
		return nil, grid.Coord{}, err
	}
	return out, grid.FloatCoord(labels...), nil
}

// selectIndices slices an array along a named axis, keeping the given
// positions in order.
func selectIndices(arr *grid.Array, axis string, keep []int) (*grid.Array, error) {
	ai := arr.DimIndex(axis)
	if ai < 0 {
		return nil, fmt.Errorf("grid: no axis %q to select along", axis)
	}
	shape := arr.Shape()
	outShape := append([]int(nil), shape...)
	outShape[ai] = len(keep)
	out, err := grid.Filled(arr.Dims(), outShape, 0)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(outShape))
	srcIdx := make([]int, len(outShape))
	for {
		copy(srcIdx, idx)
		srcIdx[ai] = keep[idx[ai]]
		out.Set(arr.At(srcIdx...), idx...)

		d := len(idx) - 1
		for d >= 0 {
			idx[d]++
			if idx[d] < outShape[d] {
				break
			}
			idx[d] = 0
			d--
		}
		if d < 0 {
			break
		}
	}
	return out, nil
}

// addSamplesPerHour attaches the per-hour contribution counts reported with
// frequency-mode statistics.
func addSamplesPerHour(result *grid.Dataset, ds *grid.Dataset) error {
	counts := samplesPerHour(ds.Time())
	arr, err := grid.New([]string{"nday"}, []int{24}, counts)
	if err != nil {
		return err
	}
	return result.AddVar("ndays_per_hour", arr)
}
