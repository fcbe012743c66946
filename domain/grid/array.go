package grid

import (
	"fmt"
	"math"
)

// Array is a labeled N-dimensional numeric array stored row-major.
// Arrays are treated as read-only once handed to the engine; masking and
// thresholding always produce new derived arrays.
type Array struct {
	dims   []string
	shape  []int
	stride []int
	data   []float64
}

// New creates an array over the given dimension names and shape. The data
// slice must match the product of the shape.
func New(dims []string, shape []int, data []float64) (*Array, error) {
	if len(dims) != len(shape) {
		return nil, fmt.Errorf("grid: %d dims for %d shape entries", len(dims), len(shape))
	}
	n := 1
	for i, s := range shape {
		if s <= 0 {
			return nil, fmt.Errorf("grid: dimension %q has non-positive size %d", dims[i], s)
		}
		n *= s
	}
	if len(data) != n {
		return nil, fmt.Errorf("grid: data length %d does not match shape (want %d)", len(data), n)
	}
	return &Array{
		dims:   append([]string(nil), dims...),
		shape:  append([]int(nil), shape...),
		stride: strides(shape),
		data:   data,
	}, nil
}

// Filled creates an array with every element set to value.
func Filled(dims []string, shape []int, value float64) (*Array, error) {
	n := 1
	for _, s := range shape {
		n *= s
	}
	data := make([]float64, n)
	if value != 0 {
		for i := range data {
			data[i] = value
		}
	}
	return New(dims, shape, data)
}

func strides(shape []int) []int {
	st := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		st[i] = acc
		acc *= shape[i]
	}
	return st
}

// Dims returns the dimension names in storage order.
func (a *Array) Dims() []string { return append([]string(nil), a.dims...) }

// Shape returns the per-dimension sizes.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Size returns the total element count.
func (a *Array) Size() int { return len(a.data) }

// Data exposes the backing slice. Callers must not mutate input arrays;
// the engine only writes through this on arrays it allocated itself.
func (a *Array) Data() []float64 { return a.data }

// DimIndex returns the position of the named dimension, or -1 if absent.
func (a *Array) DimIndex(name string) int {
	for i, d := range a.dims {
		if d == name {
			return i
		}
	}
	return -1
}

// Len returns the size of the named dimension, or 0 if absent.
func (a *Array) Len(name string) int {
	if i := a.DimIndex(name); i >= 0 {
		return a.shape[i]
	}
	return 0
}

// At returns the element at the given full index.
func (a *Array) At(idx ...int) float64 {
	return a.data[a.offset(idx)]
}

// Set assigns the element at the given full index.
func (a *Array) Set(v float64, idx ...int) {
	a.data[a.offset(idx)] = v
}

func (a *Array) offset(idx []int) int {
	off := 0
	for i, x := range idx {
		off += x * a.stride[i]
	}
	return off
}

// Copy returns a deep copy of the array.
func (a *Array) Copy() *Array {
	data := append([]float64(nil), a.data...)
	out, _ := New(a.dims, a.shape, data)
	return out
}

// Where returns a derived array where elements failing keep are replaced by
// NaN. NaN inputs stay NaN.
func (a *Array) Where(keep func(float64) bool) *Array {
	out := a.Copy()
	for i, v := range out.data {
		if !math.IsNaN(v) && !keep(v) {
			out.data[i] = math.NaN()
		}
	}
	return out
}

// Map returns a derived array with f applied to every element.
func (a *Array) Map(f func(float64) float64) *Array {
	out := a.Copy()
	for i, v := range out.data {
		out.data[i] = f(v)
	}
	return out
}

// SeriesAt gathers the 1-D slice along dimension axis at the pixel given by
// fixed (full index; the entry at axis is ignored). The result is written
// into dst, which is grown as needed.
func (a *Array) SeriesAt(axis int, fixed []int, dst []float64) []float64 {
	n := a.shape[axis]
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	base := 0
	for i, x := range fixed {
		if i != axis {
			base += x * a.stride[i]
		}
	}
	st := a.stride[axis]
	for i := 0; i < n; i++ {
		dst[i] = a.data[base+i*st]
	}
	return dst
}

// SetSeriesAt scatters src along dimension axis at the pixel given by fixed.
func (a *Array) SetSeriesAt(axis int, fixed []int, src []float64) {
	base := 0
	for i, x := range fixed {
		if i != axis {
			base += x * a.stride[i]
		}
	}
	st := a.stride[axis]
	for i, v := range src {
		a.data[base+i*st] = v
	}
}

// MinMax returns the smallest and largest non-NaN elements. ok is false when
// every element is NaN.
func (a *Array) MinMax() (mn, mx float64, ok bool) {
	mn, mx = math.Inf(1), math.Inf(-1)
	for _, v := range a.data {
		if math.IsNaN(v) {
			continue
		}
		ok = true
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	return mn, mx, ok
}
