package stats

import (
	"math"
	"strconv"
	"strings"

	"climstat/domain/core"
)

// Threshold is the resolved form of a "thr"-style option: absent, a scalar
// bound applied to every variable, or a per-variable mapping. The tagged
// representation keeps "unset" distinct from "explicitly zero".
type Threshold struct {
	set    bool
	scalar float64
	perVar map[string]float64
}

// ThresholdFrom interprets a raw option value. Accepted forms: nil, a
// numeric scalar, or a map from variable name to numeric bound.
func ThresholdFrom(v any) Threshold {
	switch tv := v.(type) {
	case nil:
		return Threshold{}
	case float64:
		return Threshold{set: true, scalar: tv}
	case int:
		return Threshold{set: true, scalar: float64(tv)}
	case map[string]float64:
		m := make(map[string]float64, len(tv))
		for k, b := range tv {
			m[k] = b
		}
		return Threshold{set: true, perVar: m}
	case map[string]any:
		m := make(map[string]float64, len(tv))
		for k, b := range tv {
			if f, ok := asFloat(b); ok {
				m[k] = f
			}
		}
		return Threshold{set: true, perVar: m}
	default:
		return Threshold{}
	}
}

// IsSet reports whether any threshold was configured at all.
func (t Threshold) IsSet() bool { return t.set }

// Resolve returns the bound for a variable. With a per-variable mapping,
// variables absent from the mapping have no threshold.
func (t Threshold) Resolve(variable core.VariableKey) (float64, bool) {
	if !t.set {
		return 0, false
	}
	if t.perVar != nil {
		b, ok := t.perVar[string(variable)]
		return b, ok
	}
	return t.scalar, true
}

// BinSpec is a histogram bin specification: either explicit ascending edges
// or a (start, stop, step) range expanded on demand.
type BinSpec struct {
	set     bool
	edges   []float64
	start   float64
	stop    float64
	step    float64
	isRange bool
}

// BinRange builds a (start, stop, step) bin specification.
func BinRange(start, stop, step float64) BinSpec {
	return BinSpec{set: true, isRange: true, start: start, stop: stop, step: step}
}

// BinEdges builds an explicit-edge bin specification.
func BinEdges(edges ...float64) BinSpec {
	return BinSpec{set: true, edges: append([]float64(nil), edges...)}
}

// BinSpecFrom interprets a raw option value. Accepted forms: nil, a
// [start, stop, step] triple, or an explicit edge slice of another length.
func BinSpecFrom(v any) BinSpec {
	switch bv := v.(type) {
	case nil:
		return BinSpec{}
	case BinSpec:
		return bv
	case []float64:
		if len(bv) == 3 {
			return BinRange(bv[0], bv[1], bv[2])
		}
		return BinEdges(bv...)
	case []any:
		fs := make([]float64, 0, len(bv))
		for _, e := range bv {
			if f, ok := asFloat(e); ok {
				fs = append(fs, f)
			}
		}
		return BinSpecFrom(fs)
	default:
		return BinSpec{}
	}
}

// IsSet reports whether the specification is present.
func (b BinSpec) IsSet() bool { return b.set }

// Edges expands the specification to its edge sequence. Range expansion
// follows half-open semantics: start, start+step, ... strictly below stop,
// so the edge count is ceil((stop-start)/step).
func (b BinSpec) Edges() ([]float64, error) {
	if !b.set {
		return nil, core.ErrBadBinSpec
	}
	if !b.isRange {
		if len(b.edges) < 2 {
			return nil, core.ErrBadBinSpec
		}
		return append([]float64(nil), b.edges...), nil
	}
	if b.step <= 0 || b.stop <= b.start {
		return nil, core.ErrBadBinSpec
	}
	n := int(math.Ceil((b.stop - b.start) / b.step))
	edges := make([]float64, n)
	for i := range edges {
		edges[i] = b.start + float64(i)*b.step
	}
	return edges, nil
}

// NumBins returns the derived bin count (edges - 1).
func (b BinSpec) NumBins() (int, error) {
	edges, err := b.Edges()
	if err != nil {
		return 0, err
	}
	return len(edges) - 1, nil
}

// ParsePercentileSpec extracts the percentile level(s) from a stat method
// string such as "percentile 95", "percentile 95,99" or
// "percentile [95, 99]". The argument must be separated from the keyword by
// white space.
func ParsePercentileSpec(method string) ([]float64, error) {
	_, arg, found := strings.Cut(method, " ")
	arg = strings.TrimSpace(arg)
	if !found || arg == "" {
		return nil, core.NewPercentileSpecError(method)
	}
	arg = strings.Trim(arg, "[]()")
	fields := strings.FieldsFunc(arg, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return nil, core.NewPercentileSpecError(method)
	}
	levels := make([]float64, 0, len(fields))
	for _, f := range fields {
		q, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, core.NewPercentileSpecError(method)
		}
		levels = append(levels, q)
	}
	return levels, nil
}

// Typed accessors over a Settings record. Missing or mismatched values fall
// back to the zero value with ok=false; defaults guarantee presence for
// schema keys.

// String returns a string option.
func (s Settings) String(key string) (string, bool) {
	v, ok := s[key].(string)
	return v, ok
}

// Bool returns a boolean option.
func (s Settings) Bool(key string) bool {
	v, _ := s[key].(bool)
	return v
}

// Int returns an integer option.
func (s Settings) Int(key string) (int, bool) {
	switch v := s[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// Float returns a numeric option.
func (s Settings) Float(key string) (float64, bool) {
	return asFloat(s[key])
}

// Floats returns a numeric slice option.
func (s Settings) Floats(key string) ([]float64, bool) {
	switch v := s[key].(type) {
	case []float64:
		return v, true
	case float64:
		return []float64{v}, true
	case int:
		return []float64{float64(v)}, true
	case []int:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, true
	case []any:
		out := make([]float64, 0, len(v))
		for _, x := range v {
			if f, ok := asFloat(x); ok {
				out = append(out, f)
			}
		}
		return out, len(out) > 0
	default:
		return nil, false
	}
}

// Strings returns a string slice option.
func (s Settings) Strings(key string) ([]string, bool) {
	switch v := s[key].(type) {
	case []string:
		return v, true
	case string:
		return []string{v}, true
	default:
		return nil, false
	}
}

// Threshold returns the tagged threshold for an option key.
func (s Settings) Threshold(key string) Threshold {
	return ThresholdFrom(s[key])
}

// VarThreshold resolves the threshold option for one variable.
func (s Settings) VarThreshold(key string, variable core.VariableKey) (float64, bool) {
	return s.Threshold(key).Resolve(variable)
}

// VarBins resolves a per-variable bin specification option. The raw value is
// either nil or a map from variable name to bin specification.
func (s Settings) VarBins(key string, variable core.VariableKey) BinSpec {
	switch v := s[key].(type) {
	case nil:
		return BinSpec{}
	case map[string]BinSpec:
		if b, ok := v[string(variable)]; ok {
			return b
		}
		return BinSpec{}
	case map[string]any:
		if raw, ok := v[string(variable)]; ok {
			return BinSpecFrom(raw)
		}
		return BinSpec{}
	default:
		return BinSpecFrom(v)
	}
}

func asFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	case int:
		return float64(f), true
	case int64:
		return float64(f), true
	default:
		return 0, false
	}
}
