package history

// VertexFIFO is the vertex history buffer. The encoder stores caller-space
// vertex indices in it and the decoder stores emission-order indices.
// capacity is fixed at construction and must be a power of two so
// slot = counter & mask.
type VertexFIFO struct {
	mask     uint32
	data     []uint32
	appended uint32 // verticesAppended
}

// NewVertexFIFO allocates a VertexFIFO of the given power-of-two capacity.
func NewVertexFIFO(capacity uint32) *VertexFIFO {
	return &VertexFIFO{
		mask: capacity - 1,
		data: make([]uint32, capacity),
	}
}

// Appended returns the verticesAppended counter.
func (f *VertexFIFO) Appended() uint32 { return f.appended }

// ValidCount returns how many of the most-recently-appended entries are
// still addressable (bounded by capacity).
func (f *VertexFIFO) ValidCount() uint32 {
	cap32 := f.mask + 1
	if f.appended < cap32 {
		return f.appended
	}
	return cap32
}

// Append writes vertex index v into the newest slot and advances the
// counter.
func (f *VertexFIFO) Append(v uint32) {
	f.data[f.appended&f.mask] = v
	f.appended++
}

// AgeOf returns the age of the entry most recently appended at absolute
// index target: (appended-1) - target.
func (f *VertexFIFO) AgeOf(target uint32) uint32 {
	return (f.appended - 1) - target
}

// AtAge returns the vertex index at the given age (0 =
// most recently appended). Callers that trust a wire-valid back-ref skip
// the bounds check themselves; AtAge does not re-validate the window.
func (f *VertexFIFO) AtAge(age uint32) uint32 {
	target := (f.appended - 1) - age
	return f.data[target&f.mask]
}

// FindAge scans the valid window newest-to-oldest for vertex index v and
// reports its age if present — the backward scan §4.4's
// ClassifyVertex performs to distinguish CACHED_VERTEX from FREE_VERTEX.
func (f *VertexFIFO) FindAge(v uint32) (age uint32, found bool) {
	valid := f.ValidCount()
	for age = 0; age < valid; age++ {
		target := (f.appended - 1) - age
		if f.data[target&f.mask] == v {
			return age, true
		}
	}
	return 0, false
}
