package grid

// Chunk is one contiguous sub-block along a set of dimensions, the unit of
// parallel evaluation. Offsets and Sizes align with the dimension list the
// plan was built for.
type Chunk struct {
	Offsets []int
	Sizes   []int
}

// PlanChunks splits the given extents into chunks of at most the matching
// chunk size per dimension. A chunk size of zero (or >= extent) leaves that
// dimension whole. The returned order is deterministic (row-major over chunk
// indices) so that task scheduling is reproducible.
func PlanChunks(extents, chunkSizes []int) []Chunk {
	counts := make([]int, len(extents))
	sizes := make([]int, len(extents))
	total := 1
	for i, ext := range extents {
		cs := 0
		if i < len(chunkSizes) {
			cs = chunkSizes[i]
		}
		if cs <= 0 || cs >= ext {
			cs = ext
		}
		sizes[i] = cs
		counts[i] = (ext + cs - 1) / cs
		total *= counts[i]
	}
	if len(extents) == 0 {
		return []Chunk{{}}
	}

	chunks := make([]Chunk, 0, total)
	idx := make([]int, len(extents))
	for {
		c := Chunk{
			Offsets: make([]int, len(extents)),
			Sizes:   make([]int, len(extents)),
		}
		for i := range extents {
			c.Offsets[i] = idx[i] * sizes[i]
			c.Sizes[i] = sizes[i]
			if rest := extents[i] - c.Offsets[i]; rest < c.Sizes[i] {
				c.Sizes[i] = rest
			}
		}
		chunks = append(chunks, c)

		d := len(idx) - 1
		for d >= 0 {
			idx[d]++
			if idx[d] < counts[d] {
				break
			}
			idx[d] = 0
			d--
		}
		if d < 0 {
			break
		}
	}
	return chunks
}

// EachPixel walks every index combination inside the chunk, invoking fn with
// a reused index slice (callers must not retain it across calls).
func (c Chunk) EachPixel(fn func(idx []int)) {
	if len(c.Sizes) == 0 {
		fn(nil)
		return
	}
	idx := make([]int, len(c.Sizes))
	copy(idx, c.Offsets)
	for {
		fn(idx)
		d := len(idx) - 1
		for d >= 0 {
			idx[d]++
			if idx[d] < c.Offsets[d]+c.Sizes[d] {
				break
			}
			idx[d] = c.Offsets[d]
			d--
		}
		if d < 0 {
			return
		}
	}
}
