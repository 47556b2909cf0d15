package meshcodec

import (
	"github.com/ConorStokes/MeshCompression/bitio"
	"github.com/ConorStokes/MeshCompression/meshcodec/history"
	"github.com/ConorStokes/MeshCompression/meshcodec/tables"
)

// Encoder walks a triangle list once, classifying each triangle against its
// edge and vertex FIFOs and writing the resulting symbol, back-references
// and predicted attribute deltas to a bitio.Writer. It holds no reference to
// the mesh between calls to Encode — construct one per mesh.
type Encoder[I Index, A Attribute] struct {
	// Logger, when non-nil, receives one line per triangle naming the
	// dispatched symbol and FIFO occupancy. Nil by default — production
	// callers pay nothing.
	Logger Logger

	layout      tables.Layout
	edgeFifo    *history.EdgeFIFO
	vertexFifo  *history.VertexFIFO
	remap       remapTable
	k           kState
	newVertices uint32
	attrCount   int
}

// NewEncoder allocates an Encoder for a mesh with attrCount scalar
// attributes per vertex. vertexRemapOut is caller-owned storage, one slot
// per caller-space vertex index: NewEncoder resets it to UnmappedVertex and
// Encode fills vertexRemapOut[original] with that vertex's emission-order
// index the first time it's emitted, leaving UnmappedVertex for any index
// the triangle list never references.
func NewEncoder[I Index, A Attribute](vertexRemapOut []uint32, attrCount int, layout tables.Layout) *Encoder[I, A] {
	if err := layout.Validate(); err != nil {
		invariant("meshcodec: %v", err)
	}
	if attrCount > 64 {
		invariant("meshcodec: attribute count %d exceeds 64", attrCount)
	}
	return &Encoder[I, A]{
		layout:     layout,
		edgeFifo:   history.NewEdgeFIFO(layout.EdgeFifoSize),
		vertexFifo: history.NewVertexFIFO(layout.VertexFifoSize),
		remap:      newRemapTable(vertexRemapOut),
		k:          newKState(attrCount, layout),
		attrCount:  attrCount,
	}
}

// Encode writes triangles (3*triangleCount caller-space vertex indices) and
// attributes (a vertexCount*attrCount row-major matrix, one row per
// caller-space vertex index) to w, then pads the stream. It panics via
// InvariantError on degenerate input; it never returns a recoverable error,
// since every encode-side failure is a programming error in the caller's
// mesh, not a property of the wire format.
func (e *Encoder[I, A]) Encode(w *bitio.Writer, triangles []I, attributes []A) {
	attr := func(vertex uint32, col int) int32 {
		return int32(attributes[int(vertex)*e.attrCount+col])
	}

	triangleCount := len(triangles) / 3
	for ti := 0; ti < triangleCount; ti++ {
		t := [3]uint32{
			uint32(triangles[ti*3]),
			uint32(triangles[ti*3+1]),
			uint32(triangles[ti*3+2]),
		}
		if t[0] == t[1] || t[1] == t[2] || t[2] == t[0] {
			invariant("meshcodec: degenerate triangle %d: (%d,%d,%d)", ti, t[0], t[1], t[2])
		}
		for _, v := range t {
			if int(v) >= len(e.remap.slots) {
				invariant("meshcodec: triangle %d references vertex %d, vertex count %d", ti, v, len(e.remap.slots))
			}
		}

		var symbol tables.Symbol
		spareVertex, matchedEdge, age, foundEdge := e.probeEdge(t)
		if foundEdge {
			symbol = e.encodeEdgeHit(w, matchedEdge, age, spareVertex, attr)
		} else {
			symbol = e.encodeNoEdgeHit(w, t, attr)
		}
		traceDispatch(e.Logger, ti, symbol, e.edgeFifo.ValidCount(), e.vertexFifo.ValidCount())
	}

	w.Finish()
}

// probeEdge scans the edge FIFO for a record whose directed edge matches
// one of the triangle's three edges, newest first. On a match it reports
// which original-index triangle slot is the vertex opposite that edge, the
// matched record, and its age (the value written as the edge back-reference).
func (e *Encoder[I, A]) probeEdge(t [3]uint32) (spareVertexIndice uint32, edge history.EdgeRecord, age uint32, found bool) {
	matchedAge, rec, ok := e.edgeFifo.Scan(func(_ uint32, rec history.EdgeRecord) bool {
		switch {
		case rec.Second == t[0] && rec.First == t[1]:
			spareVertexIndice = t[2]
		case rec.Second == t[1] && rec.First == t[2]:
			spareVertexIndice = t[0]
		case rec.Second == t[2] && rec.First == t[0]:
			spareVertexIndice = t[1]
		default:
			return false
		}
		return true
	})
	return spareVertexIndice, rec, matchedAge, ok
}

// classify implements §4.4's ClassifyVertex: a vertex is new if it has no
// remap entry yet, cached if it's still in the vertex FIFO's valid window,
// free otherwise.
func (e *Encoder[I, A]) classify(vertex uint32) (tables.VertexClass, uint32) {
	if e.remap.isUnmapped(vertex) {
		return tables.NewVertex, 0
	}
	if age, found := e.vertexFifo.FindAge(vertex); found {
		return tables.CachedVertex, age
	}
	return tables.FreeVertex, 0
}

func (e *Encoder[I, A]) encodeEdgeHit(w *bitio.Writer, edge history.EdgeRecord, age, spareVertexIndice uint32, attr func(uint32, int) int32) tables.Symbol {
	class, cachedAge := e.classify(spareVertexIndice)
	var symbol tables.Symbol

	switch class {
	case tables.NewVertex:
		symbol = tables.EdgeNew
		mustWritePrefix(w, uint32(tables.EdgeNew), tables.TriangleCodes)
		mustWritePrefix(w, age, tables.EdgeCodes)

		e.vertexFifo.Append(spareVertexIndice)
		e.remap.assign(spareVertexIndice, e.newVertices)

		for j := 0; j < e.attrCount; j++ {
			predicted := attr(edge.Second, j) + attr(edge.First, j) - attr(edge.Third, j)
			delta := attr(spareVertexIndice, j) - predicted
			kEstimate := w.WriteUniversalZigZag(delta, e.k.param(j))
			e.k.update(j, kEstimate)
		}
		e.newVertices++

	case tables.CachedVertex:
		symbol = tables.EdgeCached
		mustWritePrefix(w, uint32(tables.EdgeCached), tables.TriangleCodes)
		mustWritePrefix(w, age, tables.EdgeCodes)
		mustWritePrefix(w, cachedAge, tables.VertexCodes)

	case tables.FreeVertex:
		symbol = tables.EdgeFree
		mustWritePrefix(w, uint32(tables.EdgeFree), tables.TriangleCodes)
		mustWritePrefix(w, age, tables.EdgeCodes)

		e.vertexFifo.Append(spareVertexIndice)
		w.WriteVarInt((e.newVertices - 1) - e.remap.emissionIndex(spareVertexIndice))
	}

	e.edgeFifo.Append(edge.First, spareVertexIndice, edge.Second)
	e.edgeFifo.Append(spareVertexIndice, edge.Second, edge.First)
	return symbol
}

func (e *Encoder[I, A]) encodeNoEdgeHit(w *bitio.Writer, t [3]uint32, attr func(uint32, int) int32) tables.Symbol {
	var classes [3]tables.VertexClass
	var cachedIdx [3]uint32
	classes[0], cachedIdx[0] = e.classify(t[0])
	classes[1], cachedIdx[1] = e.classify(t[1])
	classes[2], cachedIdx[2] = e.classify(t[2])

	cc := tables.ClassificationTable[classes[0]][classes[1]][classes[2]]
	r := [3]uint32{t[cc.VertexOrder[0]], t[cc.VertexOrder[1]], t[cc.VertexOrder[2]]}
	cachedR := [3]uint32{cachedIdx[cc.VertexOrder[0]], cachedIdx[cc.VertexOrder[1]], cachedIdx[cc.VertexOrder[2]]}

	mustWritePrefix(w, uint32(cc.Code), tables.TriangleCodes)

	switch cc.Code {
	case tables.NewNewNew:
		e.vertexFifo.Append(t[0])
		e.vertexFifo.Append(t[1])
		e.vertexFifo.Append(t[2])
		e.remap.assign(t[0], e.newVertices)
		e.remap.assign(t[1], e.newVertices+1)
		e.remap.assign(t[2], e.newVertices+2)

		for j := 0; j < e.attrCount; j++ {
			v0 := attr(t[0], j)
			w.WriteUniversalZigZag(v0, e.layout.FirstNewK)
			k := e.k.param(j)
			w.WriteUniversalZigZag(attr(t[1], j)-v0, k)
			w.WriteUniversalZigZag(attr(t[2], j)-v0, k)
		}
		e.newVertices += 3

	case tables.NewNewCached:
		e.vertexFifo.Append(r[0])
		e.vertexFifo.Append(r[1])
		mustWritePrefix(w, cachedR[2], tables.VertexCodes)
		e.remap.assign(r[0], e.newVertices)
		e.remap.assign(r[1], e.newVertices+1)
		e.encodeDeltaPair(w, attr, r[0], r[1], r[2])
		e.newVertices += 2

	case tables.NewNewFree:
		e.vertexFifo.Append(r[0])
		e.vertexFifo.Append(r[1])
		e.vertexFifo.Append(r[2])
		w.WriteVarInt((e.newVertices - 1) - e.remap.emissionIndex(r[2]))
		e.remap.assign(r[0], e.newVertices)
		e.remap.assign(r[1], e.newVertices+1)
		e.encodeDeltaPair(w, attr, r[0], r[1], r[2])
		e.newVertices += 2

	case tables.NewCachedCached:
		e.vertexFifo.Append(r[0])
		mustWritePrefix(w, cachedR[1], tables.VertexCodes)
		mustWritePrefix(w, cachedR[2], tables.VertexCodes)
		e.remap.assign(r[0], e.newVertices)
		e.encodeDeltaSingle(w, attr, r[0], r[1])
		e.newVertices++

	case tables.NewCachedFree:
		e.vertexFifo.Append(r[0])
		e.vertexFifo.Append(r[2])
		mustWritePrefix(w, cachedR[1], tables.VertexCodes)
		w.WriteVarInt((e.newVertices - 1) - e.remap.emissionIndex(r[2]))
		e.remap.assign(r[0], e.newVertices)
		e.encodeDeltaSingle(w, attr, r[0], r[1])
		e.newVertices++

	case tables.NewFreeCached:
		e.vertexFifo.Append(r[0])
		e.vertexFifo.Append(r[1])
		w.WriteVarInt((e.newVertices - 1) - e.remap.emissionIndex(r[1]))
		mustWritePrefix(w, cachedR[2], tables.VertexCodes)
		e.remap.assign(r[0], e.newVertices)
		e.encodeDeltaSingle(w, attr, r[0], r[2])
		e.newVertices++

	case tables.NewFreeFree:
		e.vertexFifo.Append(r[0])
		e.vertexFifo.Append(r[1])
		e.vertexFifo.Append(r[2])
		w.WriteVarInt((e.newVertices - 1) - e.remap.emissionIndex(r[1]))
		w.WriteVarInt((e.newVertices - 1) - e.remap.emissionIndex(r[2]))
		e.remap.assign(r[0], e.newVertices)
		e.encodeDeltaSingle(w, attr, r[0], r[1])
		e.newVertices++

	case tables.CachedCachedCached:
		mustWritePrefix(w, cachedR[0], tables.VertexCodes)
		mustWritePrefix(w, cachedR[1], tables.VertexCodes)
		mustWritePrefix(w, cachedR[2], tables.VertexCodes)

	case tables.CachedCachedFree:
		e.vertexFifo.Append(r[2])
		mustWritePrefix(w, cachedR[0], tables.VertexCodes)
		mustWritePrefix(w, cachedR[1], tables.VertexCodes)
		w.WriteVarInt((e.newVertices - 1) - e.remap.emissionIndex(r[2]))

	case tables.CachedFreeFree:
		e.vertexFifo.Append(r[1])
		e.vertexFifo.Append(r[2])
		mustWritePrefix(w, cachedR[0], tables.VertexCodes)
		w.WriteVarInt((e.newVertices - 1) - e.remap.emissionIndex(r[1]))
		w.WriteVarInt((e.newVertices - 1) - e.remap.emissionIndex(r[2]))

	case tables.FreeFreeFree:
		e.vertexFifo.Append(r[0])
		e.vertexFifo.Append(r[1])
		e.vertexFifo.Append(r[2])
		w.WriteVarInt((e.newVertices - 1) - e.remap.emissionIndex(r[0]))
		w.WriteVarInt((e.newVertices - 1) - e.remap.emissionIndex(r[1]))
		w.WriteVarInt((e.newVertices - 1) - e.remap.emissionIndex(r[2]))
	}

	e.edgeFifo.Append(r[0], r[1], r[2])
	e.edgeFifo.Append(r[1], r[2], r[0])
	e.edgeFifo.Append(r[2], r[0], r[1])
	return cc.Code
}

// encodeDeltaSingle writes vertex's attribute row as a delta against base's.
func (e *Encoder[I, A]) encodeDeltaSingle(w *bitio.Writer, attr func(uint32, int) int32, vertex, base uint32) {
	for j := 0; j < e.attrCount; j++ {
		w.WriteUniversalZigZag(attr(vertex, j)-attr(base, j), e.k.param(j))
	}
}

// encodeDeltaPair writes v0's and v1's attribute rows, each as a delta
// against base's — the NEW_NEW_{CACHED,FREE} attribute layout.
func (e *Encoder[I, A]) encodeDeltaPair(w *bitio.Writer, attr func(uint32, int) int32, v0, v1, base uint32) {
	for j := 0; j < e.attrCount; j++ {
		b := attr(base, j)
		k := e.k.param(j)
		w.WriteUniversalZigZag(attr(v0, j)-b, k)
		w.WriteUniversalZigZag(attr(v1, j)-b, k)
	}
}

func mustWritePrefix(w *bitio.Writer, symbol uint32, table []bitio.PrefixCode) {
	if err := w.WritePrefixCode(symbol, table); err != nil {
		invariant("meshcodec: %v", err)
	}
}
