package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"climstat/adapters/stats/kernels"
	"climstat/domain/core"
	"climstat/domain/grid"
	"climstat/domain/stats"
)

// moments resamples the variable to a requested resolution and applies a
// named reduction per bin: the "moment stat" option is a (token, method)
// pair such as ("D", "mean"), optionally per variable. The token "all"
// collapses the whole time axis to one value. Resampling-based reductions
// tolerate a chunked time axis, unlike the one-pass kernels.
func (e *Engine) moments(ctx context.Context, ds *grid.Dataset, variable core.VariableKey, stat core.StatisticKey, cfg stats.Settings) (*grid.Dataset, error) {
	token, method, err := momentStat(cfg, variable)
	if err != nil {
		return nil, err
	}
	reduce, err := kernels.Reduction(method)
	if err != nil {
		return nil, err
	}

	ds, thr, hasThr, err := maskVarThreshold(ds, variable, cfg.Threshold("thr"))
	if err != nil {
		return nil, err
	}
	arr, _ := ds.Var(variable)
	times := ds.Time()
	if len(times) == 0 {
		return nil, core.ErrMissingTimeAxis
	}

	description := fmt.Sprintf("Moment statistic: %s | Threshold: %s",
		strings.ToUpper(token+" "+method), fmtThr(thr, hasThr))

	if token == "all" {
		out, err := e.applyAlongAxis(ctx, arr, grid.TimeDim, ds.ChunkSize, nil,
			func(series []float64) ([]float64, error) {
				return []float64{reduce(series)}, nil
			})
		if err != nil {
			return nil, err
		}
		return e.assemble(variable, out, nil, description)
	}

	if len(times) > 1 {
		native := times[1].Sub(times[0])
		requested, err := kernels.FreqDuration(token)
		if err != nil {
			return nil, err
		}
		if native >= requested {
			e.log.Info("Data already at the same or coarser time resolution as statistic! " +
				"Keeping data as is ...")
			out := grid.NewDataset(times)
			if err := out.AddVar(variable, arr.Copy()); err != nil {
				return nil, err
			}
			out.SetAttr("Description", description)
			out.SetAttr("Result ID", core.NewID().String())
			out.SetAttr("Created", core.Now().String())
			return out, nil
		}
	}

	labels, index, err := kernels.ResampleBuckets(times, token)
	if err != nil {
		return nil, err
	}
	axis := OutputAxis{Name: grid.TimeDim, Size: len(labels)}
	resampled, err := e.applyAlongAxis(ctx, arr, grid.TimeDim, ds.ChunkSize, []OutputAxis{axis},
		func(series []float64) ([]float64, error) {
			return kernels.ReduceBuckets(series, index, len(labels), reduce), nil
		})
	if err != nil {
		return nil, err
	}

	resampled, labels = dropEmptySteps(resampled, labels)
	out := grid.NewDataset(labels)
	if err := out.AddVar(variable, resampled); err != nil {
		return nil, err
	}
	out.SetAttr("Description", description)
	out.SetAttr("Result ID", core.NewID().String())
	out.SetAttr("Created", core.Now().String())
	return out, nil
}

// momentStat resolves the "moment stat" option, which may be a (token,
// method) pair or a per-variable mapping of pairs. Tokens without a leading
// digit get a count of one ("D" means "1D").
func momentStat(cfg stats.Settings, variable core.VariableKey) (token, method string, err error) {
	raw := cfg["moment stat"]
	if m, ok := raw.(map[string][]string); ok {
		pair, ok := m[string(variable)]
		if !ok {
			return "", "", fmt.Errorf("moments: no moment stat configured for variable %q", variable)
		}
		raw = pair
	}
	pair, ok := raw.([]string)
	if !ok || len(pair) != 2 {
		return "", "", fmt.Errorf("moments: moment stat must be a (resolution, method) pair")
	}
	token, method = pair[0], pair[1]
	if token != "all" && (token[0] < '0' || token[0] > '9') {
		token = "1" + token
	}
	return token, method, nil
}

// dropEmptySteps removes leading-axis steps where every value is NaN,
// mirroring resample-then-drop semantics.
func dropEmptySteps(arr *grid.Array, labels []time.Time) (*grid.Array, []time.Time) {
	shape := arr.Shape()
	if len(shape) == 0 || shape[0] != len(labels) {
		return arr, labels
	}
	stepSize := arr.Size() / shape[0]
	data := arr.Data()
	keep := make([]int, 0, shape[0])
	for s := 0; s < shape[0]; s++ {
		if !kernels.AllNaN(data[s*stepSize : (s+1)*stepSize]) {
			keep = append(keep, s)
		}
	}
	if len(keep) == shape[0] {
		return arr, labels
	}
	newShape := append([]int(nil), shape...)
	newShape[0] = len(keep)
	newData := make([]float64, 0, len(keep)*stepSize)
	newLabels := make([]time.Time, 0, len(keep))
	for _, s := range keep {
		newData = append(newData, data[s*stepSize:(s+1)*stepSize]...)
		newLabels = append(newLabels, labels[s])
	}
	out, err := grid.New(arr.Dims(), newShape, newData)
	if err != nil {
		return arr, labels
	}
	return out, newLabels
}
