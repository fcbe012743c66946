package kernels

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// HarmonicFitLen is the fixed per-pixel output length of the harmonic
// diurnal fit: four fit parameters (c1, p1, c2, p2) followed by the
// combined two-harmonic curve sampled at HarmonicCurveLen points over one
// day.
const (
	HarmonicFitLen   = 204
	HarmonicCurveLen = 200
)

// HarmonicFit fits the first and second harmonic cosine models to a diurnal
// cycle, independently per harmonic:
//
//	mean + c1*cos(2*pi*t/24 - p1)
//	mean + c2*cos(4*pi*t/24 - p2)
//
// The least-squares optimum is found by reparametrizing each model as
// mean + a*cos(w t) + b*sin(w t), solving the linear system by QR, and
// recovering amplitude and phase as c = hypot(a, b), p = atan2(b, a). This
// reaches the same optimum as an unseeded nonlinear solver on this model.
//
// A series containing any missing value yields an all-missing 204-vector;
// the fit is not attempted.
func HarmonicFit(hourly []float64) []float64 {
	n := len(hourly)
	if n < 3 {
		return NaNs(HarmonicFitLen)
	}
	for _, v := range hourly {
		if math.IsNaN(v) {
			return NaNs(HarmonicFitLen)
		}
	}

	_, c1, p1, okA := fitHarmonic(hourly, 2*math.Pi/24)
	m2, c2, p2, okB := fitHarmonic(hourly, 4*math.Pi/24)
	if !okA || !okB {
		return NaNs(HarmonicFitLen)
	}

	out := make([]float64, HarmonicFitLen)
	out[0], out[1], out[2], out[3] = c1, p1, c2, p2
	for i := 0; i < HarmonicCurveLen; i++ {
		t := 23.0 * float64(i) / float64(HarmonicCurveLen-1)
		out[4+i] = m2 +
			c1*math.Cos(2*math.Pi*t/24-p1) +
			c2*math.Cos(4*math.Pi*t/24-p2)
	}
	return out
}

// fitHarmonic solves min ||y - (m + a cos(wt) + b sin(wt))||^2 over
// t = 0..n-1 and returns mean, amplitude and phase.
func fitHarmonic(y []float64, w float64) (m, c, p float64, ok bool) {
	n := len(y)
	design := mat.NewDense(n, 3, nil)
	rhs := mat.NewVecDense(n, nil)
	for t := 0; t < n; t++ {
		wt := w * float64(t)
		design.Set(t, 0, 1)
		design.Set(t, 1, math.Cos(wt))
		design.Set(t, 2, math.Sin(wt))
		rhs.SetVec(t, y[t])
	}
	var coef mat.VecDense
	if err := coef.SolveVec(design, rhs); err != nil {
		return 0, 0, 0, false
	}
	m = coef.AtVec(0)
	a, b := coef.AtVec(1), coef.AtVec(2)
	return m, math.Hypot(a, b), math.Atan2(b, a), true
}
