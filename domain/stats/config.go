// Package stats holds the statistic configuration model: the per-statistic
// default schemas, the resolver that overlays user overrides onto them, and
// the tagged option types (thresholds, bin specifications) shared by the
// kernels and the engine.
package stats

import (
	"sort"

	"climstat/domain/core"
	"climstat/internal"
)

// Settings is one statistic's resolved configuration record. Keys follow the
// option catalogue; only keys present in the statistic's default schema are
// valid.
type Settings map[string]any

// Copy returns an independent copy of the record.
func (s Settings) Copy() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Keys returns the option names in sorted order.
func (s Settings) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultSettings returns the default configuration record for a statistic.
// The record is a fresh copy on every call; callers may modify it freely.
func DefaultSettings(stat core.StatisticKey) (Settings, bool) {
	var s Settings
	switch stat {
	case "moments":
		s = Settings{
			"vars":                []string{},
			"moment stat":         []string{"D", "mean"},
			"resample resolution": nil,
			"pool data":           false,
			"thr":                 nil,
			"cond analysis":       nil,
			"chunk dimension":     "time",
		}
	case "seasonal cycle":
		s = Settings{
			"vars":                []string{},
			"resample resolution": nil,
			"pool data":           false,
			"stat method":         "mean",
			"thr":                 nil,
			"cond analysis":       nil,
			"chunk dimension":     "time",
		}
	case "annual cycle":
		s = Settings{
			"vars":                []string{},
			"resample resolution": nil,
			"pool data":           false,
			"stat method":         "mean",
			"thr":                 nil,
			"cond analysis":       nil,
			"chunk dimension":     "time",
		}
	case "diurnal cycle":
		s = Settings{
			"vars":                []string{},
			"resample resolution": nil,
			"hours":               nil,
			"dcycle stat":         "amount",
			"stat method":         "mean",
			"method kwargs":       nil,
			"thr":                 nil,
			"cond analysis":       nil,
			"pool data":           false,
			"chunk dimension":     "space",
		}
	case "dcycle harmonic":
		s = Settings{
			"vars":                []string{},
			"resample resolution": nil,
			"pool data":           false,
			"dcycle stat":         "amount",
			"thr":                 nil,
			"cond analysis":       nil,
			"chunk dimension":     "space",
		}
	case "asop":
		s = Settings{
			"vars":                []string{"pr"},
			"resample resolution": nil,
			"pool data":           false,
			"nr_bins":             80,
			"thr":                 nil,
			"cond analysis":       nil,
			"chunk dimension":     "space",
		}
	case "eda":
		s = Settings{
			"vars":                []string{"pr"},
			"resample resolution": nil,
			"pool data":           false,
			"duration bins":       rangeFloats(1, 51),
			"event statistic":     "amount",
			"statistic bins":      []float64{0.1, 0.2, 0.5, 1, 2, 5, 10, 20, 50, 100, 150, 200},
			"dry events":          false,
			"dry bins":            nil,
			"event thr":           0.1,
			"cond analysis":       nil,
			"chunk dimension":     "space",
		}
	case "pdf":
		s = Settings{
			"vars":                []string{},
			"resample resolution": nil,
			"pool data":           false,
			"bins":                nil,
			"normalized":          false,
			"thr":                 nil,
			"cond analysis":       nil,
			"dry event thr":       nil,
			"chunk dimension":     "space",
		}
	case "percentile":
		s = Settings{
			"vars":                []string{},
			"resample resolution": nil,
			"pool data":           false,
			"pctls":               []float64{95, 99},
			"thr":                 nil,
			"cond analysis":       nil,
			"chunk dimension":     "space",
		}
	case "Rxx":
		s = Settings{
			"vars":                []string{"pr"},
			"resample resolution": nil,
			"pool data":           false,
			"normalize":           false,
			"thr":                 1.0,
			"cond analysis":       nil,
			"chunk dimension":     "space",
		}
	case "signal filtering":
		s = Settings{
			"vars":                []string{},
			"resample resolution": nil,
			"pool data":           false,
			"filter":              "lanczos",
			"cutoff type":         "lowpass",
			"window":              61,
			"mode":                "same",
			"1st cutoff":          nil,
			"2nd cutoff":          nil,
			"filter dim":          1,
			"thr":                 nil,
			"cond analysis":       nil,
			"chunk dimension":     "space",
		}
	default:
		return nil, false
	}
	return s, true
}

func rangeFloats(from, to int) []float64 {
	out := make([]float64, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, float64(i))
	}
	return out
}

// UseDefaults is the override value that requests a statistic's defaults
// unchanged.
const UseDefaults = "default"

// Resolve builds one settings record per requested statistic. The override
// value per statistic is either UseDefaults or a map of option name to
// value. Override keys absent from the statistic's default schema are
// reported through the logger and skipped; the default value stays in place
// and processing continues. An unknown statistic name is a hard error.
func Resolve(requested map[core.StatisticKey]any) (map[core.StatisticKey]Settings, error) {
	resolved := make(map[core.StatisticKey]Settings, len(requested))
	for stat, override := range requested {
		defaults, ok := DefaultSettings(stat)
		if !ok {
			return nil, core.NewUnknownStatisticError(string(stat))
		}
		record := defaults.Copy()
		switch ov := override.(type) {
		case nil:
			// treated as defaults
		case string:
			// UseDefaults or any other marker string leaves defaults as is
		case map[string]any:
			for _, key := range sortedKeys(ov) {
				if _, known := record[key]; !known {
					internal.DefaultLogger.Warn(
						"For statistic %s, the configuration key %q is not available. "+
							"Check possible configurations in DefaultSettings.", stat, key)
					continue
				}
				record[key] = ov[key]
			}
		case Settings:
			for _, key := range sortedKeys(ov) {
				if _, known := record[key]; !known {
					internal.DefaultLogger.Warn(
						"For statistic %s, the configuration key %q is not available. "+
							"Check possible configurations in DefaultSettings.", stat, key)
					continue
				}
				record[key] = ov[key]
			}
		default:
			internal.DefaultLogger.Warn(
				"For statistic %s, ignoring override of unexpected type %T; "+
					"using defaults.", stat, ov)
		}
		resolved[stat] = record
	}
	return resolved, nil
}

func sortedKeys[M ~map[string]any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
