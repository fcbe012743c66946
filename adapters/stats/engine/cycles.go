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

// seasonalCycle groups the variable by meteorological season and applies
// the configured stat method per group. A method containing "percentile"
// routes the trailing level through the percentile kernel instead of a
// named reduction. The season axis always orders DJF, MAM, JJA, SON.
func (e *Engine) seasonalCycle(ctx context.Context, ds *grid.Dataset, variable core.VariableKey, stat core.StatisticKey, cfg stats.Settings) (*grid.Dataset, error) {
	method, _ := cfg.String("stat method")
	ds, thr, hasThr, err := maskVarThreshold(ds, variable, cfg.Threshold("thr"))
	if err != nil {
		return nil, err
	}

	groups, seasonCoord := seasonGroups(ds.Time())
	axis := OutputAxis{Name: "season", Size: len(groups), Coord: seasonCoord}

	var out *grid.Array
	if strings.Contains(method, "percentile") {
		levels, err := stats.ParsePercentileSpec(method)
		if err != nil {
			return nil, err
		}
		if len(levels) != 1 {
			return nil, core.NewPercentileSpecError(method)
		}
		opts := kernels.PercentileOptions{Levels: levels}
		out, err = e.reduceByGroups(ctx, ds, variable, axis, groups,
			func(sub []float64) float64 {
				return kernels.Percentiles(sub, opts)[0]
			})
		if err != nil {
			return nil, err
		}
	} else {
		reduce, err := kernels.Reduction(method)
		if err != nil {
			return nil, err
		}
		out, err = e.reduceByGroups(ctx, ds, variable, axis, groups, reduce)
		if err != nil {
			return nil, err
		}
	}

	description := fmt.Sprintf("Seasonal cycle | Season stat: %s | Threshold: %s",
		method, fmtThr(thr, hasThr))
	return e.assemble(variable, out, map[string]grid.Coord{"season": seasonCoord}, description)
}

// annualCycle groups the variable by calendar month. The percentile path
// additionally supports a list of levels computed in one pass, adding a
// leading percentile-level axis.
func (e *Engine) annualCycle(ctx context.Context, ds *grid.Dataset, variable core.VariableKey, stat core.StatisticKey, cfg stats.Settings) (*grid.Dataset, error) {
	method, _ := cfg.String("stat method")
	ds, thr, hasThr, err := maskVarThreshold(ds, variable, cfg.Threshold("thr"))
	if err != nil {
		return nil, err
	}

	groups, monthCoord := monthGroups(ds.Time())
	monthAxis := OutputAxis{Name: "month", Size: len(groups), Coord: monthCoord}
	description := fmt.Sprintf("Annual cycle | Month stat: %s | Threshold: %s",
		method, fmtThr(thr, hasThr))

	if strings.Contains(method, "percentile") {
		levels, err := stats.ParsePercentileSpec(method)
		if err != nil {
			return nil, err
		}
		pctlAxis := OutputAxis{
			Name:  "pctls",
			Size:  len(levels),
			Coord: grid.FloatCoord(levels...),
		}
		var bound *float64
		if hasThr {
			bound = &thr
		}
		opts := kernels.PercentileOptions{Levels: levels, Threshold: bound}
		out, err := e.applyGrouped(ctx, ds, variable, []OutputAxis{pctlAxis}, monthAxis, groups,
			func(sub []float64) ([]float64, error) {
				return kernels.Percentiles(sub, opts), nil
			})
		if err != nil {
			return nil, err
		}
		coords := map[string]grid.Coord{
			"pctls": pctlAxis.Coord,
			"month": monthCoord,
		}
		return e.assemble(variable, out, coords, description)
	}

	reduce, err := kernels.Reduction(method)
	if err != nil {
		return nil, err
	}
	out, err := e.reduceByGroups(ctx, ds, variable, monthAxis, groups, reduce)
	if err != nil {
		return nil, err
	}
	return e.assemble(variable, out, map[string]grid.Coord{"month": monthCoord}, description)
}
