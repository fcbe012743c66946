package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"climstat/domain/core"
	"climstat/domain/grid"
)

// DefaultSeed keeps synthetic fixtures reproducible across runs.
const DefaultSeed = 42

// HourlyTimes returns n consecutive hourly timestamps starting at start (UTC).
func HourlyTimes(start time.Time, n int) []time.Time {
	return SteppedTimes(start, time.Hour, n)
}

// DailyTimes returns n consecutive daily timestamps starting at start (UTC).
func DailyTimes(start time.Time, n int) []time.Time {
	return SteppedTimes(start, 24*time.Hour, n)
}

// SteppedTimes returns n timestamps spaced by step, starting at start (UTC).
func SteppedTimes(start time.Time, step time.Duration, n int) []time.Time {
	times := make([]time.Time, n)
	t := start.UTC()
	for i := range times {
		times[i] = t
		t = t.Add(step)
	}
	return times
}

// DiurnalSeries evaluates mean + amp*cos(2*pi*hour/24 - phase) at each
// timestamp. With noise > 0 a seeded Gaussian perturbation is added, so the
// series is still reproducible.
func DiurnalSeries(times []time.Time, mean, amp, phase, noise float64) []float64 {
	rng := rand.New(rand.NewSource(DefaultSeed))
	out := make([]float64, len(times))
	for i, t := range times {
		h := float64(t.Hour())
		out[i] = mean + amp*math.Cos(2*math.Pi*h/24-phase)
		if noise > 0 {
			out[i] += rng.NormFloat64() * noise
		}
	}
	return out
}

// PrecipSeries generates an intermittent precipitation-like series: mostly
// dry steps with exponentially distributed wet intensities. wetFraction is
// the probability of a wet step, meanIntensity the mean wet amount.
func PrecipSeries(n int, wetFraction, meanIntensity float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		if rng.Float64() < wetFraction {
			out[i] = rng.ExpFloat64() * meanIntensity
		}
	}
	return out
}

// GridDataset builds a (time, y, x) dataset for one variable, filling each
// sample from fill(timeIndex, y, x). It panics on malformed shapes since it
// only ever runs under tests and the dev tool.
func GridDataset(variable core.VariableKey, times []time.Time, ny, nx int, fill func(ti, y, x int) float64) *grid.Dataset {
	arr, err := grid.Filled([]string{grid.TimeDim, "y", "x"}, []int{len(times), ny, nx}, 0)
	if err != nil {
		panic(fmt.Sprintf("testkit: %v", err))
	}
	for ti := range times {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				arr.Set(fill(ti, y, x), ti, y, x)
			}
		}
	}
	ds := grid.NewDataset(times)
	if err := ds.AddVar(variable, arr); err != nil {
		panic(fmt.Sprintf("testkit: %v", err))
	}
	return ds
}

// SeriesDataset wraps a single time series as a (time, y, x) dataset with a
// 1x1 spatial grid, the shape every pixel kernel sees.
func SeriesDataset(variable core.VariableKey, times []time.Time, values []float64) *grid.Dataset {
	if len(values) != len(times) {
		panic(fmt.Sprintf("testkit: %d values for %d timestamps", len(values), len(times)))
	}
	return GridDataset(variable, times, 1, 1, func(ti, y, x int) float64 {
		return values[ti]
	})
}

// TemperatureDataset builds a gridded temperature-like field with a diurnal
// cycle whose mean shifts per pixel. Useful for cycle statistics where every
// pixel should give a distinct but predictable result.
func TemperatureDataset(times []time.Time, ny, nx int) *grid.Dataset {
	rng := rand.New(rand.NewSource(DefaultSeed))
	offsets := make([]float64, ny*nx)
	for i := range offsets {
		offsets[i] = rng.NormFloat64() * 2
	}
	return GridDataset("tas", times, ny, nx, func(ti, y, x int) float64 {
		h := float64(times[ti].Hour())
		return 283.0 + offsets[y*nx+x] + 4*math.Cos(2*math.Pi*h/24-0.5)
	})
}

// PrecipDataset builds a gridded precipitation-like field with per-pixel
// seeded intermittency.
func PrecipDataset(times []time.Time, ny, nx int) *grid.Dataset {
	fields := make([][]float64, ny*nx)
	for i := range fields {
		fields[i] = PrecipSeries(len(times), 0.3, 2.0, DefaultSeed+int64(i))
	}
	return GridDataset("pr", times, ny, nx, func(ti, y, x int) float64 {
		return fields[y*nx+x][ti]
	})
}

// FirstPixel extracts the values of a result variable at spatial index
// (0, 0), flattening all derived (non-spatial) axes in order. Result arrays
// place derived axes first and spatial axes last, so this is the leading
// block of the backing slice for pixel (0, 0) read along the derived axes.
func FirstPixel(ds *grid.Dataset, variable core.VariableKey) ([]float64, error) {
	arr, ok := ds.Var(variable)
	if !ok {
		return nil, fmt.Errorf("testkit: no variable %q in result", variable)
	}
	dims := arr.Dims()
	shape := arr.Shape()
	idx := make([]int, len(dims))
	n := 1
	for i, d := range dims {
		if d == "y" || d == "x" {
			continue
		}
		n *= shape[i]
	}
	out := make([]float64, 0, n)
	var walk func(d int)
	walk = func(d int) {
		if d == len(dims) {
			out = append(out, arr.At(idx...))
			return
		}
		if dims[d] == "y" || dims[d] == "x" {
			idx[d] = 0
			walk(d + 1)
			return
		}
		for i := 0; i < shape[d]; i++ {
			idx[d] = i
			walk(d + 1)
		}
	}
	walk(0)
	return out, nil
}
