package grid

import (
	"fmt"
	"testing"
)

func TestPlanChunksCoversExtentsExactly(t *testing.T) {
	extents := []int{7, 5}
	chunks := PlanChunks(extents, []int{3, 2})

	// 3 chunk rows x 3 chunk cols, with ragged edges 1 and 1.
	if len(chunks) != 9 {
		t.Fatalf("got %d chunks, want 9", len(chunks))
	}
	seen := make(map[string]int)
	for _, c := range chunks {
		c.EachPixel(func(idx []int) {
			seen[fmt.Sprint(idx[0], idx[1])]++
		})
	}
	if len(seen) != 35 {
		t.Fatalf("chunks cover %d pixels, want 35", len(seen))
	}
	for k, n := range seen {
		if n != 1 {
			t.Fatalf("pixel %s visited %d times", k, n)
		}
	}
}

func TestPlanChunksIsDeterministic(t *testing.T) {
	a := PlanChunks([]int{4, 4}, []int{2, 3})
	b := PlanChunks([]int{4, 4}, []int{2, 3})
	if len(a) != len(b) {
		t.Fatalf("plan lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		for d := range a[i].Offsets {
			if a[i].Offsets[d] != b[i].Offsets[d] || a[i].Sizes[d] != b[i].Sizes[d] {
				t.Fatalf("plans diverge at chunk %d", i)
			}
		}
	}
}

func TestPlanChunksZeroSizeLeavesDimensionWhole(t *testing.T) {
	chunks := PlanChunks([]int{6, 4}, []int{0, 2})
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	for _, c := range chunks {
		if c.Sizes[0] != 6 {
			t.Fatalf("unchunked dimension split: %+v", c)
		}
	}
}

func TestEachPixelScalarChunk(t *testing.T) {
	calls := 0
	Chunk{}.EachPixel(func(idx []int) { calls++ })
	if calls != 1 {
		t.Fatalf("scalar chunk visited %d times, want 1", calls)
	}
}
