package engine

import (
	"context"
	"fmt"

	"climstat/adapters/stats/kernels"
	"climstat/domain/core"
	"climstat/domain/grid"
	"climstat/domain/stats"
)

// filtering convolves each pixel's time series with Lanczos FIR weights
// built from the configured window and cutoff period(s). Only 1-D Lanczos
// filtering is implemented; other filters and 2-D filtering fail
// explicitly rather than degrading to a different computation.
func (e *Engine) filtering(ctx context.Context, ds *grid.Dataset, variable core.VariableKey, stat core.StatisticKey, cfg stats.Settings) (*grid.Dataset, error) {
	cutoffType, _ := cfg.String("cutoff type")
	filterName, _ := cfg.String("filter")
	mode, _ := cfg.String("mode")
	if mode == "" {
		mode = kernels.ConvValid
	}

	window, ok := cfg.Int("window")
	if !ok || window <= 0 {
		return nil, fmt.Errorf("signal filtering: window is unset")
	}
	if window%2 == 0 {
		return nil, fmt.Errorf("%w: got window %d", core.ErrEvenFilterWindow, window)
	}

	cutoff1, ok := cfg.Float("1st cutoff")
	if !ok || cutoff1 == 0 {
		return nil, fmt.Errorf("%w: '1st cutoff' is unset", core.ErrMissingCutoff)
	}
	cutoff2, hasCutoff2 := cfg.Float("2nd cutoff")
	if cutoffType == kernels.CutoffBandpass && (!hasCutoff2 || cutoff2 == 0) {
		return nil, core.ErrMissingCutoff
	}

	filterDim, _ := cfg.Int("filter dim")
	switch filterDim {
	case 1:
	case 2:
		return nil, fmt.Errorf("%w: 2D filtering not available yet", core.ErrUnimplementedFilter)
	default:
		return nil, fmt.Errorf("%w: only 1D and 2D filtering (dim = 1 or 2) is possible",
			core.ErrUnimplementedFilter)
	}

	if filterName != "lanczos" {
		return nil, fmt.Errorf("%w: %q; no other filter implemented yet", core.ErrUnimplementedFilter, filterName)
	}

	ds, _, _, err := maskVarThreshold(ds, variable, cfg.Threshold("thr"))
	if err != nil {
		return nil, err
	}

	fc2 := 0.0
	if hasCutoff2 && cutoff2 != 0 {
		fc2 = 1 / cutoff2
	}
	weights, err := kernels.LanczosWeights(window, 1/cutoff1, fc2, cutoffType)
	if err != nil {
		return nil, err
	}

	outLen := kernels.ConvolvedLen(len(ds.Time()), window, mode)
	if outLen <= 0 {
		return nil, fmt.Errorf("signal filtering: %w: window %d longer than series %d",
			core.ErrInsufficientData, window, len(ds.Time()))
	}
	axis := OutputAxis{Name: "filtered", Size: outLen}
	out, err := e.ApplyAlongTime(ctx, ds, variable, []OutputAxis{axis},
		func(series []float64) ([]float64, error) {
			return kernels.Convolve1D(series, weights, mode), nil
		})
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf(
		"Convolved data | Filter Dimension: %d | Filter: %s | Cutoff Type: %s"+
			" | 1st Cutoff (time steps): %g | 2nd Cutoff (time steps): %s"+
			" | Filter Window Size: %d",
		filterDim, filterName, cutoffType, cutoff1, fmtThr(cutoff2, hasCutoff2), window)
	return e.assemble(variable, out, nil, description)
}
