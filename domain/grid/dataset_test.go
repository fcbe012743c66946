package grid

import (
	"math"
	"testing"
	"time"
)

func hourly(n int) []time.Time {
	start := time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.Add(time.Duration(i) * time.Hour)
	}
	return out
}

func TestAddVarValidatesTimeLength(t *testing.T) {
	ds := NewDataset(hourly(4))
	arr, _ := Filled([]string{TimeDim, "y"}, []int{3, 2}, 0)
	if err := ds.AddVar("tas", arr); err == nil {
		t.Fatal("expected time length mismatch error")
	}
	ok, _ := Filled([]string{TimeDim, "y"}, []int{4, 2}, 0)
	if err := ds.AddVar("tas", ok); err != nil {
		t.Fatalf("AddVar: %v", err)
	}
}

func TestTimeChunked(t *testing.T) {
	ds := NewDataset(hourly(10))
	if ds.TimeChunked() {
		t.Fatal("unchunked dataset reported as time-chunked")
	}
	ds.SetChunks(map[string]int{TimeDim: 4})
	if !ds.TimeChunked() {
		t.Fatal("time chunk smaller than the axis must report chunked")
	}
	ds.SetChunks(map[string]int{TimeDim: 10, "y": 2})
	if ds.TimeChunked() {
		t.Fatal("full-axis time chunk is effectively unchunked")
	}
}

func TestMaskVarBelowOnlyTouchesTarget(t *testing.T) {
	ds := NewDataset(hourly(3))
	pr, _ := New([]string{TimeDim}, []int{3}, []float64{0.05, 1, 2})
	tas, _ := New([]string{TimeDim}, []int{3}, []float64{0.05, 1, 2})
	if err := ds.AddVar("pr", pr); err != nil {
		t.Fatal(err)
	}
	if err := ds.AddVar("tas", tas); err != nil {
		t.Fatal(err)
	}

	masked, err := ds.MaskVarBelow("pr", 0.1)
	if err != nil {
		t.Fatalf("MaskVarBelow: %v", err)
	}
	mpr, _ := masked.Var("pr")
	if !math.IsNaN(mpr.At(0)) || mpr.At(1) != 1 {
		t.Fatalf("pr mask wrong: %v", mpr.Data())
	}
	mtas, _ := masked.Var("tas")
	if mtas.At(0) != 0.05 {
		t.Fatalf("tas must be untouched: %v", mtas.Data())
	}
	// Original dataset stays intact.
	orig, _ := ds.Var("pr")
	if orig.At(0) != 0.05 {
		t.Fatalf("input dataset mutated: %v", orig.Data())
	}
}
