package tables

import "github.com/pkg/errors"

// Layout bundles the frozen, wire-level constants a conformant encoder and
// decoder must agree on: FIFO capacities and the adaptive-code parameters.
// The exported Compress/Decompress entry points always use DefaultLayout;
// this struct exists so the driver and its tests aren't littered with
// magic numbers, mirroring the split lzb/parameters.go draws between
// Parameters and the properties byte it derives from.
type Layout struct {
	EdgeFifoSize   uint32 // E_CAP, a power of two
	VertexFifoSize uint32 // V_CAP, a power of two
	InitialK       uint32 // initial k[j], 16.16 fixed point
	FirstNewK      uint32 // fixed integer parameter for NEW_NEW_NEW's first vertex
}

// DefaultLayout is the one frozen layout this module ships. §9's open
// question on EDGE_FIFO_SIZE/VERTEX_FIFO_SIZE is resolved here: 32 and 16,
// the conventional values for this class of codec, consistent with the
// V_CAP = 16 the reference implementation assumes.
func DefaultLayout() Layout {
	return Layout{
		EdgeFifoSize:   32,
		VertexFifoSize: 16,
		InitialK:       4 << 16,
		FirstNewK:      15,
	}
}

// Validate checks that a Layout is internally consistent: both FIFO sizes
// must be powers of two (so counter-mod-capacity can be a mask), and
// FirstNewK must fit the universal code's k range.
func (l Layout) Validate() error {
	if l.EdgeFifoSize == 0 || l.EdgeFifoSize&(l.EdgeFifoSize-1) != 0 {
		return errors.Errorf("tables: EdgeFifoSize %d is not a power of two", l.EdgeFifoSize)
	}
	if l.VertexFifoSize == 0 || l.VertexFifoSize&(l.VertexFifoSize-1) != 0 {
		return errors.Errorf("tables: VertexFifoSize %d is not a power of two", l.VertexFifoSize)
	}
	if l.FirstNewK > 31 {
		return errors.Errorf("tables: FirstNewK %d out of range [0,31]", l.FirstNewK)
	}
	return nil
}

// EdgeFifoMask returns EdgeFifoSize-1, for counter&mask slot addressing.
func (l Layout) EdgeFifoMask() uint32 { return l.EdgeFifoSize - 1 }

// VertexFifoMask returns VertexFifoSize-1, for counter&mask slot addressing.
func (l Layout) VertexFifoMask() uint32 { return l.VertexFifoSize - 1 }
