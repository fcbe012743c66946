// Package engine executes statistics over chunked gridded datasets. It owns
// the statistic registry, the along-axis execution machinery that applies a
// numeric kernel independently at every pixel, and the assembly of labeled
// results.
package engine

import (
	"fmt"

	"climstat/adapters/backend"
	"climstat/domain/core"
	"climstat/domain/grid"
	"climstat/internal"
	"climstat/ports"
)

// Engine computes statistics over datasets. Plans are built declaratively
// (output shape first, chunk tasks second) and handed to the backend for
// evaluation; the engine itself never blocks one kernel on another.
type Engine struct {
	backend ports.Backend
	log     *internal.Logger
}

// New creates an engine evaluating chunk plans on the given backend. A nil
// backend selects the local parallel backend.
func New(b ports.Backend) *Engine {
	if b == nil {
		b = backend.NewLocal(0)
	}
	return &Engine{backend: b, log: internal.DefaultLogger}
}

// assemble finalizes a kernel's numeric output into a labeled dataset:
// the variable, its output-axis coordinates, a human-readable description
// and a provenance id.
func (e *Engine) assemble(variable core.VariableKey, arr *grid.Array, coords map[string]grid.Coord, description string) (*grid.Dataset, error) {
	out := grid.NewDataset(nil)
	if err := out.AddVar(variable, arr); err != nil {
		return nil, err
	}
	for name, c := range coords {
		out.SetCoord(name, c)
	}
	out.SetAttr("Description", description)
	out.SetAttr("Result ID", core.NewID().String())
	out.SetAttr("Created", core.Now().String())
	return out, nil
}

// fmtThr renders a threshold for description strings.
func fmtThr(thr float64, ok bool) string {
	if !ok {
		return "None"
	}
	return fmt.Sprintf("%g", thr)
}
