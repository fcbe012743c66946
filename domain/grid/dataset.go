package grid

import (
	"fmt"
	"time"

	"climstat/domain/core"
)

// TimeDim is the reserved name of the time axis.
const TimeDim = "time"

// Coord is an output axis coordinate: numeric values, string labels, or both
// (e.g. the PDF bin-edge coordinate carries a leading "dry_events" label
// followed by numeric edges).
type Coord struct {
	Values []float64
	Labels []string
}

// FloatCoord builds a numeric coordinate.
func FloatCoord(vs ...float64) Coord { return Coord{Values: vs} }

// LabelCoord builds a string-labeled coordinate.
func LabelCoord(ls ...string) Coord { return Coord{Labels: ls} }

// Len returns the coordinate length.
func (c Coord) Len() int {
	if len(c.Labels) > 0 {
		return len(c.Labels)
	}
	return len(c.Values)
}

// Dataset is a labeled collection of arrays sharing an optional time axis.
// Input datasets carry monotonic timestamps; result datasets usually replace
// time with derived axes and describe them through coords and attrs.
type Dataset struct {
	time   []time.Time
	vars   map[core.VariableKey]*Array
	order  []core.VariableKey
	coords map[string]Coord
	attrs  map[string]string
	chunks map[string]int
}

// NewDataset creates a dataset with the given time coordinate. A nil or
// empty time slice is allowed for result datasets without a time axis.
func NewDataset(times []time.Time) *Dataset {
	return &Dataset{
		time:   times,
		vars:   make(map[core.VariableKey]*Array),
		coords: make(map[string]Coord),
		attrs:  make(map[string]string),
		chunks: make(map[string]int),
	}
}

// AddVar attaches an array under the given variable key. Arrays with a time
// dimension must match the dataset's time coordinate length.
func (d *Dataset) AddVar(key core.VariableKey, a *Array) error {
	if n := a.Len(TimeDim); n > 0 && len(d.time) > 0 && n != len(d.time) {
		return fmt.Errorf("grid: variable %q time length %d != coordinate length %d",
			key, n, len(d.time))
	}
	if _, exists := d.vars[key]; !exists {
		d.order = append(d.order, key)
	}
	d.vars[key] = a
	return nil
}

// Var returns the array for a variable.
func (d *Dataset) Var(key core.VariableKey) (*Array, bool) {
	a, ok := d.vars[key]
	return a, ok
}

// Vars returns variable keys in insertion order.
func (d *Dataset) Vars() []core.VariableKey {
	return append([]core.VariableKey(nil), d.order...)
}

// Time returns the time coordinate.
func (d *Dataset) Time() []time.Time { return d.time }

// SetCoord records an output axis coordinate.
func (d *Dataset) SetCoord(name string, c Coord) { d.coords[name] = c }

// Coord looks up an output axis coordinate.
func (d *Dataset) Coord(name string) (Coord, bool) {
	c, ok := d.coords[name]
	return c, ok
}

// SetAttr records a metadata attribute (e.g. "Description").
func (d *Dataset) SetAttr(key, value string) { d.attrs[key] = value }

// Attr returns a metadata attribute.
func (d *Dataset) Attr(key string) string { return d.attrs[key] }

// SetChunks declares chunk sizes per spatial dimension. A chunk size on the
// time dimension is rejected at execution time by one-pass statistics.
func (d *Dataset) SetChunks(chunks map[string]int) {
	d.chunks = make(map[string]int, len(chunks))
	for k, v := range chunks {
		d.chunks[k] = v
	}
}

// ChunkSize returns the declared chunk size for a dimension (0 = unchunked).
func (d *Dataset) ChunkSize(dim string) int { return d.chunks[dim] }

// TimeChunked reports whether the time axis carries a chunk size smaller
// than the full axis.
func (d *Dataset) TimeChunked() bool {
	c, ok := d.chunks[TimeDim]
	return ok && c > 0 && c < len(d.time)
}

// WithTime returns a shallow derivative of the dataset with a replaced time
// coordinate (used for whole-hour normalization). Variables are shared.
func (d *Dataset) WithTime(times []time.Time) (*Dataset, error) {
	if len(times) != len(d.time) {
		return nil, fmt.Errorf("grid: replacement time length %d != %d", len(times), len(d.time))
	}
	out := &Dataset{
		time:   times,
		vars:   d.vars,
		order:  d.order,
		coords: d.coords,
		attrs:  d.attrs,
		chunks: d.chunks,
	}
	return out, nil
}

// MaskVarBelow returns a derivative dataset where values of the given
// variable strictly below thr become NaN. Other variables are shared
// unchanged; the input dataset is never mutated.
func (d *Dataset) MaskVarBelow(key core.VariableKey, thr float64) (*Dataset, error) {
	_, ok := d.vars[key]
	if !ok {
		return nil, fmt.Errorf("grid: %w: %q", core.ErrUnknownVariable, key)
	}
	out := NewDataset(d.time)
	out.chunks = d.chunks
	for _, k := range d.order {
		v := d.vars[k]
		if k == key {
			v = v.Where(func(x float64) bool { return x >= thr })
		}
		if err := out.AddVar(k, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}
