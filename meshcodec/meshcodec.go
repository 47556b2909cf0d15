// Package meshcodec implements the triangle-mesh encoder/decoder driver:
// the state machine that walks a triangle list, classifies each triangle
// against the edge and vertex FIFOs, dispatches on the resulting symbol,
// runs the parallelogram predictor and adaptive universal code for vertex
// attributes, and keeps both FIFOs and the per-attribute k[] array in
// lockstep between encode and decode.
//
// The driver is generic over the four index/attribute width combinations
// the original implementation hand-specializes as separate C++ template
// instantiations (uint16|uint32 indices crossed with int16|int32
// attributes); Compress and Decompress expose those four combinations as
// thin wrapper functions over one generic Encoder/Decoder pair, the way
// golang.org/x/exp/constraints is meant to replace template
// specialization.
package meshcodec

import "golang.org/x/exp/constraints"

// Index is the set of vertex-index widths the wire format supports.
type Index interface {
	constraints.Unsigned
	uint16 | uint32
}

// Attribute is the set of vertex-attribute widths the wire format
// supports.
type Attribute interface {
	constraints.Signed
	int16 | int32
}

// UnmappedVertex is the remap-table sentinel for a vertex the encoder
// never referenced.
const UnmappedVertex uint32 = 0xFFFFFFFF
