package stats

import (
	"errors"
	"testing"

	"climstat/domain/core"
)

func TestResolveDefaultsMarker(t *testing.T) {
	resolved, err := Resolve(map[core.StatisticKey]any{"percentile": UseDefaults})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	defaults, _ := DefaultSettings("percentile")
	record := resolved["percentile"]
	if len(record) != len(defaults) {
		t.Fatalf("record has %d keys, defaults %d", len(record), len(defaults))
	}
	levels, ok := record.Floats("pctls")
	if !ok || len(levels) != 2 || levels[0] != 95 || levels[1] != 99 {
		t.Fatalf("default pctls survived wrong: %v", levels)
	}
}

func TestResolveOverridesKnownKeys(t *testing.T) {
	resolved, err := Resolve(map[core.StatisticKey]any{
		"percentile": map[string]any{"pctls": []float64{90}, "thr": 1.0},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	record := resolved["percentile"]
	levels, _ := record.Floats("pctls")
	if len(levels) != 1 || levels[0] != 90 {
		t.Fatalf("override not applied: %v", levels)
	}
	if thr, ok := record.Float("thr"); !ok || thr != 1.0 {
		t.Fatalf("thr override not applied: %v %v", thr, ok)
	}
}

func TestResolveSkipsUnknownKeysAndKeepsDefault(t *testing.T) {
	resolved, err := Resolve(map[core.StatisticKey]any{
		"percentile": map[string]any{"no such option": 42, "pctls": []float64{50}},
	})
	if err != nil {
		t.Fatalf("unknown key must not be fatal: %v", err)
	}
	record := resolved["percentile"]
	if _, present := record["no such option"]; present {
		t.Fatal("unknown key leaked into the record")
	}
	levels, _ := record.Floats("pctls")
	if len(levels) != 1 || levels[0] != 50 {
		t.Fatalf("known keys in the same override must still apply: %v", levels)
	}
}

func TestResolveUnexpectedOverrideTypeKeepsDefaults(t *testing.T) {
	resolved, err := Resolve(map[core.StatisticKey]any{"percentile": 42})
	if err != nil {
		t.Fatalf("unexpected override type must not be fatal: %v", err)
	}
	defaults, _ := DefaultSettings("percentile")
	record := resolved["percentile"]
	if len(record) != len(defaults) {
		t.Fatalf("record has %d keys, defaults %d", len(record), len(defaults))
	}
	levels, _ := record.Floats("pctls")
	if len(levels) != 2 || levels[0] != 95 || levels[1] != 99 {
		t.Fatalf("defaults must stay in place: %v", levels)
	}
}

func TestResolveUnknownStatisticIsFatal(t *testing.T) {
	_, err := Resolve(map[core.StatisticKey]any{"no such stat": UseDefaults})
	if !errors.Is(err, core.ErrUnknownStatistic) {
		t.Fatalf("got %v, want ErrUnknownStatistic", err)
	}
}

func TestDefaultSettingsReturnsFreshCopies(t *testing.T) {
	a, _ := DefaultSettings("moments")
	a["thr"] = 99.0
	b, _ := DefaultSettings("moments")
	if b["thr"] != nil {
		t.Fatalf("defaults shared between calls: %v", b["thr"])
	}
}

func TestDefaultSettingsCoversRegistry(t *testing.T) {
	for _, stat := range []core.StatisticKey{
		"moments", "seasonal cycle", "annual cycle", "percentile", "diurnal cycle",
		"dcycle harmonic", "pdf", "asop", "eda", "Rxx", "signal filtering",
	} {
		if _, ok := DefaultSettings(stat); !ok {
			t.Fatalf("no default schema for %q", stat)
		}
	}
}
