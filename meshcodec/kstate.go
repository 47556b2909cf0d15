package meshcodec

import "github.com/ConorStokes/MeshCompression/meshcodec/tables"

// kState holds the per-attribute-column adaptive universal-code parameter,
// each a 16.16 unsigned fixed-point exponential moving average.
type kState struct {
	k []uint32
}

func newKState(attributeCount int, layout tables.Layout) kState {
	k := make([]uint32, attributeCount)
	for j := range k {
		k[j] = layout.InitialK
	}
	return kState{k: k}
}

// param returns the integer universal-code parameter for column j.
func (s kState) param(j int) uint32 {
	return s.k[j] >> 16
}

// update folds kEstimate into column j's moving average: k <- (7k +
// kEstimate<<16) / 8. Called only on the EDGE_NEW attribute path, per
// §4.5's asymmetry between EDGE_NEW and every other new-vertex symbol.
func (s kState) update(j int, kEstimate uint32) {
	s.k[j] = (7*s.k[j] + (kEstimate << 16)) / 8
}

func (s kState) clone() kState {
	k := make([]uint32, len(s.k))
	copy(k, s.k)
	return kState{k: k}
}

func (s kState) equal(other kState) bool {
	if len(s.k) != len(other.k) {
		return false
	}
	for j, v := range s.k {
		if other.k[j] != v {
			return false
		}
	}
	return true
}
