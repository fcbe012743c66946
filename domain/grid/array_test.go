package grid

import (
	"math"
	"testing"
)

func TestArraySeriesRoundTrip(t *testing.T) {
	arr, err := Filled([]string{"time", "y", "x"}, []int{4, 2, 3}, 0)
	if err != nil {
		t.Fatalf("Filled: %v", err)
	}
	want := []float64{1, 2, 3, 4}
	arr.SetSeriesAt(0, []int{0, 1, 2}, want)

	got := arr.SeriesAt(0, []int{0, 1, 2}, nil)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("series mismatch at %d: got %v want %v", i, got, want)
		}
	}
	// Neighboring pixel stays untouched.
	other := arr.SeriesAt(0, []int{0, 1, 1}, nil)
	for i, v := range other {
		if v != 0 {
			t.Fatalf("pixel (1,1) polluted at %d: %v", i, other)
		}
	}
}

func TestArrayWhereDoesNotMutate(t *testing.T) {
	arr, err := New([]string{"time"}, []int{4}, []float64{0.5, 1, 2, math.NaN()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	masked := arr.Where(func(v float64) bool { return v >= 1 })

	if arr.At(0) != 0.5 {
		t.Fatalf("input array mutated: %v", arr.Data())
	}
	if !math.IsNaN(masked.At(0)) {
		t.Fatalf("value below bound should be NaN, got %v", masked.At(0))
	}
	if masked.At(1) != 1 || masked.At(2) != 2 {
		t.Fatalf("values at or above bound must survive: %v", masked.Data())
	}
	if !math.IsNaN(masked.At(3)) {
		t.Fatalf("NaN input must stay NaN")
	}
}

func TestArrayMinMaxSkipsNaN(t *testing.T) {
	arr, _ := New([]string{"time"}, []int{4}, []float64{math.NaN(), -2, 7, math.NaN()})
	mn, mx, ok := arr.MinMax()
	if !ok || mn != -2 || mx != 7 {
		t.Fatalf("MinMax = %v, %v, %v", mn, mx, ok)
	}

	empty, _ := New([]string{"time"}, []int{2}, []float64{math.NaN(), math.NaN()})
	if _, _, ok := empty.MinMax(); ok {
		t.Fatalf("all-NaN array must report ok=false")
	}
}

func TestNewRejectsShapeMismatch(t *testing.T) {
	if _, err := New([]string{"y", "x"}, []int{2, 2}, []float64{1, 2, 3}); err == nil {
		t.Fatal("expected error for data/shape mismatch")
	}
	if _, err := New([]string{"y"}, []int{2, 2}, make([]float64, 4)); err == nil {
		t.Fatal("expected error for dims/shape mismatch")
	}
}
