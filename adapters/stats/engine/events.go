package engine

import (
	"context"
	"fmt"

	"climstat/adapters/stats/kernels"
	"climstat/domain/core"
	"climstat/domain/grid"
	"climstat/domain/stats"
)

// eda runs event duration analysis: contiguous above-threshold runs are
// classified into duration bins and labeled by a bucketed event intensity
// statistic, producing a (frequency x duration) count matrix per pixel.
func (e *Engine) eda(ctx context.Context, ds *grid.Dataset, variable core.VariableKey, stat core.StatisticKey, cfg stats.Settings) (*grid.Dataset, error) {
	durBins, ok := cfg.Floats("duration bins")
	if !ok || len(durBins) == 0 {
		return nil, fmt.Errorf("%w: duration bins are unset", core.ErrBadBinSpec)
	}
	statBins, ok := cfg.Floats("statistic bins")
	if !ok || len(statBins) < 2 {
		return nil, fmt.Errorf("%w: statistic bins are unset", core.ErrBadBinSpec)
	}
	eventStat, _ := cfg.String("event statistic")
	thr, ok := cfg.Float("event thr")
	if !ok {
		return nil, core.NewMissingThresholdError(string(stat), string(variable))
	}

	opts := kernels.EDAOptions{
		Threshold:      thr,
		DurationBins:   durBins,
		EventStatistic: eventStat,
		StatisticBins:  statBins,
		DryEvents:      cfg.Bool("dry events"),
	}
	if opts.DryEvents {
		dryBins, ok := cfg.Floats("dry bins")
		if !ok || len(dryBins) == 0 {
			return nil, fmt.Errorf("%w: dry events enabled but dry bins unset", core.ErrBadBinSpec)
		}
		opts.DryBins = dryBins
	}
	frq, dur := opts.EDADims()

	frqAxis := OutputAxis{Name: "frequency", Size: frq}
	durAxis := OutputAxis{Name: "duration", Size: dur}
	out, err := e.ApplyAlongTime(ctx, ds, variable, []OutputAxis{frqAxis, durAxis},
		func(series []float64) ([]float64, error) {
			return kernels.EDA(series, opts)
		})
	if err != nil {
		return nil, err
	}

	coords := map[string]grid.Coord{
		"duration_bins":  grid.FloatCoord(durBins...),
		"statistic_bins": grid.FloatCoord(statBins...),
	}
	if opts.DryEvents {
		coords["dry_bins"] = grid.FloatCoord(opts.DryBins...)
	}
	description := fmt.Sprintf("EDA analysis | event statistic: %s | threshold: %g",
		eventStat, thr)
	return e.assemble(variable, out, coords, description)
}

// rxx counts the time steps where the variable meets or exceeds the
// threshold, optionally normalized by record length. The threshold comes
// from a per-variable mapping or a scalar default and is required.
func (e *Engine) rxx(ctx context.Context, ds *grid.Dataset, variable core.VariableKey, stat core.StatisticKey, cfg stats.Settings) (*grid.Dataset, error) {
	thr, ok := cfg.VarThreshold("thr", variable)
	if !ok {
		return nil, core.NewMissingThresholdError(string(stat), string(variable))
	}
	normalize := cfg.Bool("normalize")

	out, err := e.ApplyAlongTime(ctx, ds, variable, nil,
		func(series []float64) ([]float64, error) {
			return []float64{kernels.Rxx(series, thr, normalize)}, nil
		})
	if err != nil {
		return nil, err
	}
	description := fmt.Sprintf("Rxx; frequency above threshold | threshold: %g | normalized: %t",
		thr, normalize)
	return e.assemble(variable, out, nil, description)
}
