package engine

import (
	"context"
	"fmt"

	"climstat/domain/core"
	"climstat/domain/grid"
	"climstat/ports"
)

// OutputAxis declares a derived axis before any data is touched: its name,
// its length, and optionally the coordinate labeling it. Chunked execution
// requires the full output structure to be known up front, so axis sizes
// are always derived from configuration, never inferred from data.
type OutputAxis struct {
	Name  string
	Size  int
	Coord grid.Coord
}

// PixelKernel consumes one pixel's full series along the applied axis and
// returns a fixed-shape vector (row-major over the declared output axes).
type PixelKernel func(series []float64) ([]float64, error)

// ApplyAlongTime broadcasts a kernel over every pixel of the variable,
// passing the pixel's full time series in one pass. Chunks along time are
// disallowed for these kernels: the whole series per pixel must be
// materialized at once.
func (e *Engine) ApplyAlongTime(ctx context.Context, ds *grid.Dataset, variable core.VariableKey, axes []OutputAxis, kernel PixelKernel) (*grid.Array, error) {
	if ds.TimeChunked() {
		return nil, core.ErrTimeChunked
	}
	arr, ok := ds.Var(variable)
	if !ok {
		return nil, core.ErrUnknownVariable
	}
	return e.applyAlongAxis(ctx, arr, grid.TimeDim, ds.ChunkSize, axes, kernel)
}

// applyAlongAxis is the generic along-axis driver: it declares the output
// array from the axis specs, plans chunk tasks over the remaining
// dimensions, and lets the backend evaluate them. Results are written at
// positions fixed by the plan, so chunk completion order never affects the
// output. The produced axis order is canonical: declared axes leading,
// remaining dimensions trailing in input order.
func (e *Engine) applyAlongAxis(ctx context.Context, arr *grid.Array, axis string, chunkSize func(string) int, axes []OutputAxis, kernel PixelKernel) (*grid.Array, error) {
	dims := arr.Dims()
	shape := arr.Shape()
	ai := arr.DimIndex(axis)
	if ai < 0 {
		return nil, fmt.Errorf("%w: %q", core.ErrMissingTimeAxis, axis)
	}

	var spatialDims []string
	var spatialShape, spatialPos, chunkSizes []int
	for i, d := range dims {
		if i == ai {
			continue
		}
		spatialDims = append(spatialDims, d)
		spatialShape = append(spatialShape, shape[i])
		spatialPos = append(spatialPos, i)
		chunkSizes = append(chunkSizes, chunkSize(d))
	}

	outDims := make([]string, 0, len(axes)+len(spatialDims))
	outShape := make([]int, 0, len(axes)+len(spatialDims))
	vecLen := 1
	for _, ax := range axes {
		if ax.Size <= 0 {
			return nil, fmt.Errorf("engine: output axis %q has undeclared size", ax.Name)
		}
		outDims = append(outDims, ax.Name)
		outShape = append(outShape, ax.Size)
		vecLen *= ax.Size
	}
	outDims = append(outDims, spatialDims...)
	outShape = append(outShape, spatialShape...)

	out, err := grid.Filled(outDims, outShape, nan)
	if err != nil {
		return nil, err
	}

	chunks := grid.PlanChunks(spatialShape, chunkSizes)
	tasks := make([]ports.Task, 0, len(chunks))
	for _, chunk := range chunks {
		chunk := chunk
		tasks = append(tasks, func(ctx context.Context) error {
			var buf []float64
			inIdx := make([]int, len(dims))
			outIdx := make([]int, len(outDims))
			var taskErr error
			chunk.EachPixel(func(pix []int) {
				if taskErr != nil {
					return
				}
				for i, p := range spatialPos {
					inIdx[p] = pix[i]
					outIdx[len(axes)+i] = pix[i]
				}
				buf = arr.SeriesAt(ai, inIdx, buf)
				vec, err := kernel(buf)
				if err != nil {
					taskErr = err
					return
				}
				if len(vec) != vecLen {
					taskErr = fmt.Errorf("%w: kernel returned %d values, declared %d",
						core.ErrShapeMismatch, len(vec), vecLen)
					return
				}
				for j, v := range vec {
					rem := j
					for k := len(axes) - 1; k >= 0; k-- {
						outIdx[k] = rem % axes[k].Size
						rem /= axes[k].Size
					}
					out.Set(v, outIdx...)
				}
			})
			return taskErr
		})
	}
	if err := e.backend.Run(ctx, tasks); err != nil {
		return nil, err
	}
	return out, nil
}

// applyGrouped runs a kernel once per calendar group at every pixel. The
// group axis trails the kernel's own value axes so results order as
// (value..., group, spatial...).
func (e *Engine) applyGrouped(ctx context.Context, ds *grid.Dataset, variable core.VariableKey, valueAxes []OutputAxis, groupAxis OutputAxis, groups [][]int, perGroup PixelKernel) (*grid.Array, error) {
	vecLen := 1
	for _, ax := range valueAxes {
		vecLen *= ax.Size
	}
	nGroups := groupAxis.Size
	composite := func(series []float64) ([]float64, error) {
		flat := make([]float64, vecLen*nGroups)
		sub := make([]float64, 0, len(series))
		for g, idxs := range groups {
			sub = sub[:0]
			for _, i := range idxs {
				sub = append(sub, series[i])
			}
			vec, err := perGroup(sub)
			if err != nil {
				return nil, err
			}
			if len(vec) != vecLen {
				return nil, fmt.Errorf("%w: group kernel returned %d values, declared %d",
					core.ErrShapeMismatch, len(vec), vecLen)
			}
			for j, v := range vec {
				flat[j*nGroups+g] = v
			}
		}
		return flat, nil
	}
	axes := append(append([]OutputAxis(nil), valueAxes...), groupAxis)
	return e.ApplyAlongTime(ctx, ds, variable, axes, composite)
}

// reduceByGroups applies a scalar reduction per calendar group, producing a
// single leading group axis.
func (e *Engine) reduceByGroups(ctx context.Context, ds *grid.Dataset, variable core.VariableKey, groupAxis OutputAxis, groups [][]int, reduce func([]float64) float64) (*grid.Array, error) {
	return e.applyGrouped(ctx, ds, variable, nil, groupAxis, groups,
		func(sub []float64) ([]float64, error) {
			return []float64{reduce(sub)}, nil
		})
}
