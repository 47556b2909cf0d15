package meshcodec

// remapTable is a thin wrapper around the caller-supplied remap buffer:
// original vertex index -> emission-order index, or UnmappedVertex.
type remapTable struct {
	slots []uint32
}

func newRemapTable(slots []uint32) remapTable {
	for i := range slots {
		slots[i] = UnmappedVertex
	}
	return remapTable{slots: slots}
}

func (r remapTable) isUnmapped(original uint32) bool {
	return r.slots[original] == UnmappedVertex
}

func (r remapTable) emissionIndex(original uint32) uint32 {
	return r.slots[original]
}

// assign records original's emission-order index exactly once — callers
// must check isUnmapped first, since a second assignment would violate
// the "assigned exactly once" invariant.
func (r remapTable) assign(original, emissionIndex uint32) {
	r.slots[original] = emissionIndex
}
