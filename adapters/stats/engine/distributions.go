package engine

import (
	"context"
	"fmt"
	"math"

	"climstat/adapters/stats/kernels"
	"climstat/domain/core"
	"climstat/domain/grid"
	"climstat/domain/stats"
)

// percentile computes the configured percentile levels per pixel over time.
// Below-threshold values are excluded before the computation; the output
// carries the percentile-level axis leading with a coordinate recording the
// requested levels.
func (e *Engine) percentile(ctx context.Context, ds *grid.Dataset, variable core.VariableKey, stat core.StatisticKey, cfg stats.Settings) (*grid.Dataset, error) {
	levels, ok := cfg.Floats("pctls")
	if !ok || len(levels) == 0 {
		return nil, fmt.Errorf("%w: pctls option is unset", core.ErrBadPercentileSpec)
	}
	thr, hasThr := cfg.VarThreshold("thr", variable)
	var bound *float64
	if hasThr {
		bound = &thr
	}
	opts := kernels.PercentileOptions{Levels: levels, Threshold: bound}

	axis := OutputAxis{Name: "pctls", Size: len(levels), Coord: grid.FloatCoord(levels...)}
	out, err := e.ApplyAlongTime(ctx, ds, variable, []OutputAxis{axis},
		func(series []float64) ([]float64, error) {
			return kernels.Percentiles(series, opts), nil
		})
	if err != nil {
		return nil, err
	}
	coords := map[string]grid.Coord{
		"pctls":       axis.Coord,
		"percentiles": grid.FloatCoord(levels...),
	}
	description := fmt.Sprintf("Percentile | q: %v | threshold: %s", levels, fmtThr(thr, hasThr))
	return e.assemble(variable, out, coords, description)
}

// freqIntDist builds the frequency-intensity distribution (PDF) per pixel.
// Bin edges come from the per-variable bin option or, when unset, from the
// variable's own min/max split into 20 edges. The leading output slot is
// the dry-event count (NaN when no dry-event threshold applies). For the
// precipitation variable negative values are clamped to zero before
// binning; negative precipitation is a data artifact, not an observation.
func (e *Engine) freqIntDist(ctx context.Context, ds *grid.Dataset, variable core.VariableKey, stat core.StatisticKey, cfg stats.Settings) (*grid.Dataset, error) {
	arr, _ := ds.Var(variable)

	var edges []float64
	if spec := cfg.VarBins("bins", variable); spec.IsSet() {
		var err error
		edges, err = spec.Edges()
		if err != nil {
			return nil, err
		}
	} else {
		mn, mx, ok := arr.MinMax()
		if !ok {
			return nil, core.ErrInsufficientData
		}
		edges = linspace(mn, mx, 20)
	}

	thr, hasThr := cfg.VarThreshold("thr", variable)
	dryThr, hasDry := cfg.VarThreshold("dry event thr", variable)
	normalized := normalizedFor(cfg, variable)

	if variable == "pr" {
		clamped := arr.Map(func(v float64) float64 {
			if !math.IsNaN(v) && v < 0 {
				return 0
			}
			return v
		})
		masked := grid.NewDataset(ds.Time())
		if err := masked.AddVar(variable, clamped); err != nil {
			return nil, err
		}
		masked.SetChunks(chunkMap(ds, arr))
		ds = masked
	}

	opts := kernels.PDFOptions{Edges: edges, Normalized: normalized}
	if hasThr {
		opts.Threshold = &thr
	}
	if hasDry {
		opts.DryEventThr = &dryThr
	}

	axis := OutputAxis{Name: "bins", Size: kernels.PDFLen(edges)}
	out, err := e.ApplyAlongTime(ctx, ds, variable, []OutputAxis{axis},
		func(series []float64) ([]float64, error) {
			return kernels.PDF(series, opts), nil
		})
	if err != nil {
		return nil, err
	}

	binEdges := grid.Coord{Labels: []string{"dry_events"}, Values: edges}
	coords := map[string]grid.Coord{"bin_edges": binEdges}
	description := fmt.Sprintf("PDF | threshold: %s | Normalized bin data: %t",
		fmtThr(thr, hasThr), normalized)
	return e.assemble(variable, out, coords, description)
}

// asop runs the precipitation spectral decomposition: a histogram-style
// pass yielding the contribution (C) and fractional contribution (FC)
// factors per logarithmically-growing intensity bin.
func (e *Engine) asop(ctx context.Context, ds *grid.Dataset, variable core.VariableKey, stat core.StatisticKey, cfg stats.Settings) (*grid.Dataset, error) {
	nrBins, ok := cfg.Int("nr_bins")
	if !ok || nrBins <= 0 {
		nrBins = 50
	}
	edges := kernels.ASoPBinEdges(nrBins)
	nbins := len(edges) - 1
	thr, hasThr := cfg.VarThreshold("thr", variable)

	factorAxis := OutputAxis{Name: "factors", Size: 2, Coord: grid.LabelCoord("C", "FC")}
	binAxis := OutputAxis{Name: "bins", Size: nbins}
	out, err := e.ApplyAlongTime(ctx, ds, variable, []OutputAxis{factorAxis, binAxis},
		func(series []float64) ([]float64, error) {
			return kernels.ASoP(series, edges), nil
		})
	if err != nil {
		return nil, err
	}

	coords := map[string]grid.Coord{
		"factors":   factorAxis.Coord,
		"bin_edges": grid.FloatCoord(edges...),
	}
	description := fmt.Sprintf("ASoP analysis | threshold: %s", fmtThr(thr, hasThr))
	return e.assemble(variable, out, coords, description)
}

func normalizedFor(cfg stats.Settings, variable core.VariableKey) bool {
	switch v := cfg["normalized"].(type) {
	case bool:
		return v
	case map[string]bool:
		return v[string(variable)]
	case map[string]any:
		b, _ := v[string(variable)].(bool)
		return b
	default:
		return false
	}
}

func linspace(from, to float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = from
		return out
	}
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out
}

func chunkMap(ds *grid.Dataset, arr *grid.Array) map[string]int {
	chunks := make(map[string]int)
	for _, d := range arr.Dims() {
		if c := ds.ChunkSize(d); c > 0 {
			chunks[d] = c
		}
	}
	return chunks
}
