package meshcodec

import (
	"github.com/pkg/errors"

	"github.com/ConorStokes/MeshCompression/bitio"
	"github.com/ConorStokes/MeshCompression/meshcodec/history"
	"github.com/ConorStokes/MeshCompression/meshcodec/tables"
)

// Decoder is the Encoder's mirror image: it reads symbols and back
// references from a bitio.Reader and rebuilds the triangle list and vertex
// attribute matrix. It assigns output vertex ids in emission order — there
// is no remap table on this side, since the decoder never sees a
// caller-space index to remap from.
type Decoder[I Index, A Attribute] struct {
	// Logger, when non-nil, receives one line per triangle naming the
	// decoded symbol and FIFO occupancy. Nil by default.
	Logger Logger

	layout      tables.Layout
	edgeFifo    *history.EdgeFIFO
	vertexFifo  *history.VertexFIFO
	k           kState
	newVertices uint32
	attrCount   int
}

// NewDecoder allocates a Decoder for attrCount scalar attributes per vertex.
func NewDecoder[I Index, A Attribute](attrCount int, layout tables.Layout) *Decoder[I, A] {
	if err := layout.Validate(); err != nil {
		invariant("meshcodec: %v", err)
	}
	return &Decoder[I, A]{
		layout:     layout,
		edgeFifo:   history.NewEdgeFIFO(layout.EdgeFifoSize),
		vertexFifo: history.NewVertexFIFO(layout.VertexFifoSize),
		k:          newKState(attrCount, layout),
		attrCount:  attrCount,
	}
}

// Decode reads triangleCount triangles from r, writing the reconstructed
// vertex indices into triangles (length 3*triangleCount) and the
// reconstructed attribute rows into attributes (length >= the emitted
// vertex count times attrCount, row-major, indexed by emission order).
// Every recoverable failure — truncation, a corrupt prefix code, a
// back-reference that names an aged-out FIFO slot — is returned as an
// error; Decode never panics on attacker-controlled input.
func (d *Decoder[I, A]) Decode(r *bitio.Reader, triangleCount int, triangles []I, attributes []A) error {
	attrAt := func(vertex uint32, col int) int32 {
		return int32(attributes[int(vertex)*d.attrCount+col])
	}
	setAttr := func(vertex uint32, col int, v int32) {
		attributes[int(vertex)*d.attrCount+col] = A(v)
	}

	for ti := 0; ti < triangleCount; ti++ {
		symbolValue, err := r.Decode(tables.TriangleDecodeTable, tables.TriangleMaxCodeLength)
		if err != nil {
			return classifyBitioErr(err)
		}
		symbol := tables.Symbol(symbolValue)

		var t [3]uint32
		switch symbol {
		case tables.EdgeNew, tables.EdgeCached, tables.EdgeFree:
			if err := d.decodeEdgeHit(r, symbol, &t, attrAt, setAttr); err != nil {
				return err
			}
		default:
			if err := d.decodeNoEdgeHit(r, symbol, &t, attrAt, setAttr); err != nil {
				return err
			}
		}

		triangles[ti*3] = I(t[0])
		triangles[ti*3+1] = I(t[1])
		triangles[ti*3+2] = I(t[2])

		d.edgeFifo.Append(t[1], t[2], t[0])
		d.edgeFifo.Append(t[2], t[0], t[1])

		traceDispatch(d.Logger, ti, symbol, d.edgeFifo.ValidCount(), d.vertexFifo.ValidCount())
	}

	return r.SkipPadding()
}

func (d *Decoder[I, A]) decodeEdgeHit(r *bitio.Reader, symbol tables.Symbol, t *[3]uint32, attrAt func(uint32, int) int32, setAttr func(uint32, int, int32)) error {
	edgeAge, err := r.Decode(tables.EdgeDecodeTable, tables.EdgeMaxCodeLength)
	if err != nil {
		return classifyBitioErr(err)
	}
	edge, err := d.edgeFifo.AtAge(edgeAge)
	if err != nil {
		return errors.Wrap(ErrBackRefOutOfWindow, err.Error())
	}
	t[0], t[1] = edge.Second, edge.First

	switch symbol {
	case tables.EdgeNew:
		t[2] = d.newVertices
		d.vertexFifo.Append(t[2])

		for j := 0; j < d.attrCount; j++ {
			delta, kEstimate, err := r.DecodeUniversalZigZag(d.k.param(j))
			if err != nil {
				return classifyBitioErr(err)
			}
			d.k.update(j, kEstimate)
			predicted := attrAt(edge.Second, j) + attrAt(edge.First, j) - attrAt(edge.Third, j)
			setAttr(t[2], j, predicted+delta)
		}
		d.newVertices++

	case tables.EdgeCached:
		vertexAge, err := r.Decode(tables.VertexDecodeTable, tables.VertexMaxCodeLength)
		if err != nil {
			return classifyBitioErr(err)
		}
		if vertexAge >= d.vertexFifo.ValidCount() {
			return errors.Wrapf(ErrBackRefOutOfWindow, "vertex age %d", vertexAge)
		}
		t[2] = d.vertexFifo.AtAge(vertexAge)

	case tables.EdgeFree:
		relativeVertex, err := r.ReadVarInt()
		if err != nil {
			return classifyBitioErr(err)
		}
		if relativeVertex >= d.newVertices {
			return errors.Wrapf(ErrBackRefOutOfWindow, "free vertex relative index %d", relativeVertex)
		}
		t[2] = (d.newVertices - 1) - relativeVertex
		d.vertexFifo.Append(t[2])
	}

	return nil
}

func (d *Decoder[I, A]) decodeNoEdgeHit(r *bitio.Reader, symbol tables.Symbol, t *[3]uint32, attrAt func(uint32, int) int32, setAttr func(uint32, int, int32)) error {
	readCachedVertex := func() (uint32, error) {
		age, err := r.Decode(tables.VertexDecodeTable, tables.VertexMaxCodeLength)
		if err != nil {
			return 0, classifyBitioErr(err)
		}
		if age >= d.vertexFifo.ValidCount() {
			return 0, errors.Wrapf(ErrBackRefOutOfWindow, "vertex age %d", age)
		}
		return d.vertexFifo.AtAge(age), nil
	}
	readFreeVertex := func() (uint32, error) {
		relative, err := r.ReadVarInt()
		if err != nil {
			return 0, classifyBitioErr(err)
		}
		if relative >= d.newVertices {
			return 0, errors.Wrapf(ErrBackRefOutOfWindow, "free vertex relative index %d", relative)
		}
		return (d.newVertices - 1) - relative, nil
	}
	decodeDeltaSingle := func(vertex, base uint32) error {
		for j := 0; j < d.attrCount; j++ {
			delta, _, err := r.DecodeUniversalZigZag(d.k.param(j))
			if err != nil {
				return classifyBitioErr(err)
			}
			setAttr(vertex, j, attrAt(base, j)+delta)
		}
		return nil
	}
	decodeDeltaPair := func(v0, v1, base uint32) error {
		for j := 0; j < d.attrCount; j++ {
			b := attrAt(base, j)
			k := d.k.param(j)
			delta0, _, err := r.DecodeUniversalZigZag(k)
			if err != nil {
				return classifyBitioErr(err)
			}
			setAttr(v0, j, b+delta0)
			delta1, _, err := r.DecodeUniversalZigZag(k)
			if err != nil {
				return classifyBitioErr(err)
			}
			setAttr(v1, j, b+delta1)
		}
		return nil
	}

	switch symbol {
	case tables.NewNewNew:
		t[0], t[1], t[2] = d.newVertices, d.newVertices+1, d.newVertices+2
		d.vertexFifo.Append(t[0])
		d.vertexFifo.Append(t[1])
		d.vertexFifo.Append(t[2])

		for j := 0; j < d.attrCount; j++ {
			v0, _, err := r.DecodeUniversalZigZag(d.layout.FirstNewK)
			if err != nil {
				return classifyBitioErr(err)
			}
			setAttr(t[0], j, v0)
			k := d.k.param(j)
			delta1, _, err := r.DecodeUniversalZigZag(k)
			if err != nil {
				return classifyBitioErr(err)
			}
			setAttr(t[1], j, v0+delta1)
			delta2, _, err := r.DecodeUniversalZigZag(k)
			if err != nil {
				return classifyBitioErr(err)
			}
			setAttr(t[2], j, v0+delta2)
		}
		d.newVertices += 3

	case tables.NewNewCached:
		cached, err := readCachedVertex()
		if err != nil {
			return err
		}
		t[2] = cached
		t[0], t[1] = d.newVertices, d.newVertices+1
		d.vertexFifo.Append(t[0])
		d.vertexFifo.Append(t[1])
		if err := decodeDeltaPair(t[0], t[1], t[2]); err != nil {
			return err
		}
		d.newVertices += 2

	case tables.NewNewFree:
		free, err := readFreeVertex()
		if err != nil {
			return err
		}
		t[0], t[1], t[2] = d.newVertices, d.newVertices+1, free
		d.vertexFifo.Append(t[0])
		d.vertexFifo.Append(t[1])
		d.vertexFifo.Append(t[2])
		if err := decodeDeltaPair(t[0], t[1], t[2]); err != nil {
			return err
		}
		d.newVertices += 2

	case tables.NewCachedCached:
		cached1, err := readCachedVertex()
		if err != nil {
			return err
		}
		cached2, err := readCachedVertex()
		if err != nil {
			return err
		}
		t[1], t[2] = cached1, cached2
		t[0] = d.newVertices
		d.vertexFifo.Append(t[0])
		if err := decodeDeltaSingle(t[0], t[1]); err != nil {
			return err
		}
		d.newVertices++

	case tables.NewCachedFree:
		cached, err := readCachedVertex()
		if err != nil {
			return err
		}
		free, err := readFreeVertex()
		if err != nil {
			return err
		}
		t[1], t[2] = cached, free
		t[0] = d.newVertices
		d.vertexFifo.Append(t[0])
		d.vertexFifo.Append(t[2])
		if err := decodeDeltaSingle(t[0], t[1]); err != nil {
			return err
		}
		d.newVertices++

	case tables.NewFreeCached:
		free, err := readFreeVertex()
		if err != nil {
			return err
		}
		cached, err := readCachedVertex()
		if err != nil {
			return err
		}
		t[1], t[2] = free, cached
		t[0] = d.newVertices
		d.vertexFifo.Append(t[0])
		d.vertexFifo.Append(t[1])
		if err := decodeDeltaSingle(t[0], t[2]); err != nil {
			return err
		}
		d.newVertices++

	case tables.NewFreeFree:
		free1, err := readFreeVertex()
		if err != nil {
			return err
		}
		free2, err := readFreeVertex()
		if err != nil {
			return err
		}
		t[1], t[2] = free1, free2
		t[0] = d.newVertices
		d.vertexFifo.Append(t[0])
		d.vertexFifo.Append(t[1])
		d.vertexFifo.Append(t[2])
		if err := decodeDeltaSingle(t[0], t[1]); err != nil {
			return err
		}
		d.newVertices++

	case tables.CachedCachedCached:
		for i := 0; i < 3; i++ {
			cached, err := readCachedVertex()
			if err != nil {
				return err
			}
			t[i] = cached
		}

	case tables.CachedCachedFree:
		c0, err := readCachedVertex()
		if err != nil {
			return err
		}
		c1, err := readCachedVertex()
		if err != nil {
			return err
		}
		free, err := readFreeVertex()
		if err != nil {
			return err
		}
		t[0], t[1], t[2] = c0, c1, free
		d.vertexFifo.Append(t[2])

	case tables.CachedFreeFree:
		c0, err := readCachedVertex()
		if err != nil {
			return err
		}
		free1, err := readFreeVertex()
		if err != nil {
			return err
		}
		free2, err := readFreeVertex()
		if err != nil {
			return err
		}
		t[0], t[1], t[2] = c0, free1, free2
		d.vertexFifo.Append(t[1])
		d.vertexFifo.Append(t[2])

	case tables.FreeFreeFree:
		free0, err := readFreeVertex()
		if err != nil {
			return err
		}
		free1, err := readFreeVertex()
		if err != nil {
			return err
		}
		free2, err := readFreeVertex()
		if err != nil {
			return err
		}
		t[0], t[1], t[2] = free0, free1, free2
		d.vertexFifo.Append(t[0])
		d.vertexFifo.Append(t[1])
		d.vertexFifo.Append(t[2])
	}

	d.edgeFifo.Append(t[0], t[1], t[2])
	return nil
}

func classifyBitioErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, bitio.ErrTruncated) {
		return errors.Wrap(ErrTruncatedStream, err.Error())
	}
	return errors.Wrap(ErrCorruptStream, err.Error())
}
