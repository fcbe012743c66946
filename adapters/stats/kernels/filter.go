package kernels

import (
	"fmt"
	"math"

	"climstat/domain/core"
)

// Cutoff types supported by the Lanczos filter.
const (
	CutoffLowpass  = "lowpass"
	CutoffHighpass = "highpass"
	CutoffBandpass = "bandpass"
)

// Convolution modes, following the usual numeric-library semantics: "full"
// returns len(x)+len(w)-1 samples, "same" preserves the input length and
// "valid" shortens it by len(w)-1.
const (
	ConvFull  = "full"
	ConvSame  = "same"
	ConvValid = "valid"
)

// LanczosWeights builds sinc-windowed FIR weights of the given odd window
// length. fc1 and fc2 are cutoff frequencies (inverse cutoff periods, in
// units of the sampling step); bandpass requires both and keeps the band
// between them. An even window is a configuration error.
func LanczosWeights(window int, fc1, fc2 float64, cutoffType string) ([]float64, error) {
	if window%2 == 0 {
		return nil, fmt.Errorf("%w: got window %d", core.ErrEvenFilterWindow, window)
	}
	switch cutoffType {
	case CutoffLowpass:
		return lanczosLowpass(window, fc1), nil
	case CutoffHighpass:
		w := lanczosLowpass(window, fc1)
		for i := range w {
			w[i] = -w[i]
		}
		w[(window-1)/2] += 1
		return w, nil
	case CutoffBandpass:
		if fc2 == 0 {
			return nil, core.ErrMissingCutoff
		}
		lo, hi := fc1, fc2
		if lo > hi {
			lo, hi = hi, lo
		}
		w := lanczosLowpass(window, hi)
		wl := lanczosLowpass(window, lo)
		for i := range w {
			w[i] -= wl[i]
		}
		return w, nil
	default:
		return nil, fmt.Errorf("%w: unknown cutoff type %q", core.ErrUnimplementedFilter, cutoffType)
	}
}

// lanczosLowpass builds the classic sigma-windowed low-pass weights with the
// center weight 2*fc and symmetric sinc lobes.
func lanczosLowpass(window int, fc float64) []float64 {
	w := make([]float64, window)
	half := (window - 1) / 2
	w[half] = 2 * fc
	order := float64(half + 1)
	for k := 1; k <= half; k++ {
		fk := float64(k)
		sigma := math.Sin(math.Pi*fk/order) * order / (math.Pi * fk)
		v := math.Sin(2*math.Pi*fc*fk) / (math.Pi * fk) * sigma
		w[half-k] = v
		w[half+k] = v
	}
	return w
}

// ConvolvedLen returns the output length of Convolve1D for the given mode
// before any data is touched, so output shapes can be declared up front.
func ConvolvedLen(n, window int, mode string) int {
	switch mode {
	case ConvValid:
		return n - window + 1
	case ConvFull:
		return n + window - 1
	default:
		return n
	}
}

// Convolve1D filters a series with the given weights. NaNs propagate
// through any window that covers them.
func Convolve1D(x, w []float64, mode string) []float64 {
	n, m := len(x), len(w)
	full := make([]float64, n+m-1)
	for i := range full {
		acc := 0.0
		for j := 0; j < m; j++ {
			k := i - j
			if k < 0 || k >= n {
				continue
			}
			acc += x[k] * w[j]
		}
		full[i] = acc
	}
	switch mode {
	case ConvFull:
		return full
	case ConvValid:
		if n < m {
			return nil
		}
		return full[m-1 : n]
	default: // same
		start := (m - 1) / 2
		return full[start : start+n]
	}
}
