package meshcodec

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/pkg/errors"

	"github.com/ConorStokes/MeshCompression/bitio"
	"github.com/ConorStokes/MeshCompression/meshcodec/tables"
)

// gridTriangles builds a regular gridX by gridY vertex grid, two triangles
// per quad — the same shape cmd/meshcodecbench uses, inlined here so the
// test package doesn't need to import meshio (which imports meshcodec).
func gridTriangles(gridX, gridY int) (triangles []uint32, vertexCount int) {
	vertexCount = gridX * gridY
	idx := func(x, y int) uint32 { return uint32(y*gridX + x) }
	for y := 0; y < gridY-1; y++ {
		for x := 0; x < gridX-1; x++ {
			v00, v10, v01, v11 := idx(x, y), idx(x+1, y), idx(x, y+1), idx(x+1, y+1)
			triangles = append(triangles, v00, v10, v11)
			triangles = append(triangles, v00, v11, v01)
		}
	}
	return triangles, vertexCount
}

func smoothAttributes(vertexCount, attrCount int) []int32 {
	out := make([]int32, vertexCount*attrCount)
	for v := 0; v < vertexCount; v++ {
		for j := 0; j < attrCount; j++ {
			out[v*attrCount+j] = int32((v*7+j*3)%101 - 50)
		}
	}
	return out
}

// rotationEqual reports whether b is a is equal to some cyclic rotation of
// a — the codec's per-symbol canonicalization rotates a triangle's corners
// to match an edge or classification order, so a decoded triangle is not
// guaranteed to land in the caller's original corner slots, only to name
// the same three corners in the same cyclic winding.
func rotationEqual(a, b [3]uint32) bool {
	for r := 0; r < 3; r++ {
		if a[0] == b[r] && a[1] == b[(r+1)%3] && a[2] == b[(r+2)%3] {
			return true
		}
	}
	return false
}

// checkRoundTrip runs triangles/attributes through Encoder then Decoder,
// and asserts: no decode error, encoder/decoder k[] states agree, every
// referenced vertex's attribute row survives under the remap, and every
// triangle reappears (up to cyclic rotation) with its corners remapped.
func checkRoundTrip(t *testing.T, triangles []uint32, vertexCount, attrCount int, attributes []int32) {
	t.Helper()
	layout := tables.DefaultLayout()

	remap := make([]uint32, vertexCount)
	enc := NewEncoder[uint32, int32](remap, attrCount, layout)
	w := bitio.NewWriter(len(triangles)*2 + len(attributes)*4)
	enc.Encode(w, triangles, attributes)

	triangleCount := len(triangles) / 3
	dec := NewDecoder[uint32, int32](attrCount, layout)
	decTriangles := make([]uint32, triangleCount*3)
	decAttributes := make([]int32, triangleCount*3*attrCount)
	r := bitio.NewReader(w.Bytes())
	if err := dec.Decode(r, triangleCount, decTriangles, decAttributes); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if !enc.k.equal(dec.k) {
		t.Fatalf("encoder/decoder k[] diverged:\n%s", pretty.Sprint(struct{ Enc, Dec []uint32 }{enc.k.k, dec.k.k}))
	}

	for original := uint32(0); original < uint32(vertexCount); original++ {
		emission := remap[original]
		if emission == UnmappedVertex {
			continue
		}
		want := attributes[int(original)*attrCount : int(original)*attrCount+attrCount]
		got := decAttributes[int(emission)*attrCount : int(emission)*attrCount+attrCount]
		for j := 0; j < attrCount; j++ {
			if want[j] != got[j] {
				t.Fatalf("vertex %d (emission %d) column %d: want %d, got %d\n%s",
					original, emission, j, want[j], got[j], pretty.Sprint(struct{ Want, Got []int32 }{want, got}))
			}
		}
	}

	for ti := 0; ti < triangleCount; ti++ {
		original := [3]uint32{triangles[ti*3], triangles[ti*3+1], triangles[ti*3+2]}
		wantMapped := [3]uint32{remap[original[0]], remap[original[1]], remap[original[2]]}
		got := [3]uint32{decTriangles[ti*3], decTriangles[ti*3+1], decTriangles[ti*3+2]}
		if !rotationEqual(wantMapped, got) {
			t.Fatalf("triangle %d: want (a rotation of) %v, got %v", ti, wantMapped, got)
		}
	}
}

func TestRoundTripSingleTriangle(t *testing.T) {
	triangles := []uint32{0, 1, 2}
	checkRoundTrip(t, triangles, 3, 2, smoothAttributes(3, 2))
}

func TestRoundTripSharedEdgeTriggersEdgeNew(t *testing.T) {
	// Triangle 1: (0,1,2). Triangle 2 shares the directed edge 1->2 in
	// reverse, which the encoder's edge FIFO records as the opposite
	// direction — this is exactly the EDGE_NEW case worked through by
	// hand against meshcompression.cpp while building encode.go.
	triangles := []uint32{0, 1, 2, 1, 3, 2}
	checkRoundTrip(t, triangles, 4, 3, smoothAttributes(4, 3))
}

func TestRoundTripDisjointTriangles(t *testing.T) {
	// No shared vertices at all — every triangle is NEW_NEW_NEW.
	triangles := []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8}
	checkRoundTrip(t, triangles, 9, 1, smoothAttributes(9, 1))
}

func TestRoundTripSmallGrid(t *testing.T) {
	for _, attrCount := range []int{1, 2, 4} {
		triangles, vertexCount := gridTriangles(5, 5)
		checkRoundTrip(t, triangles, vertexCount, attrCount, smoothAttributes(vertexCount, attrCount))
	}
}

// TestRoundTripLargeGridForcesFIFOEviction uses a grid with enough
// vertices and triangles that both FIFOs wrap and age entries out,
// exercising CACHED/FREE classification and the EDGE_FREE/_FREE_* symbols,
// not just the EDGE_NEW path a small mesh stays within.
func TestRoundTripLargeGridForcesFIFOEviction(t *testing.T) {
	triangles, vertexCount := gridTriangles(40, 40)
	checkRoundTrip(t, triangles, vertexCount, 3, smoothAttributes(vertexCount, 3))
}

func TestRoundTripZeroAttributeColumns(t *testing.T) {
	triangles, vertexCount := gridTriangles(6, 6)
	checkRoundTrip(t, triangles, vertexCount, 0, nil)
}

func TestRoundTripRepeatedAttributeValues(t *testing.T) {
	// Every vertex shares the same attribute row: the parallelogram
	// predictor and every delta should collapse to zero.
	triangles, vertexCount := gridTriangles(8, 8)
	attrs := make([]int32, vertexCount*2)
	for i := range attrs {
		attrs[i] = 42
	}
	checkRoundTrip(t, triangles, vertexCount, 2, attrs)
}

func TestDecodeTruncatedStreamReturnsError(t *testing.T) {
	layout := tables.DefaultLayout()
	triangles, vertexCount := gridTriangles(4, 4)
	attrs := smoothAttributes(vertexCount, 2)
	remap := make([]uint32, vertexCount)
	enc := NewEncoder[uint32, int32](remap, 2, layout)
	w := bitio.NewWriter(64)
	enc.Encode(w, triangles, attrs)

	full := w.Bytes()
	cut := 4
	if cut > len(full) {
		cut = len(full)
	}
	truncated := full[:cut]

	dec := NewDecoder[uint32, int32](2, layout)
	triangleCount := len(triangles) / 3
	decTriangles := make([]uint32, triangleCount*3)
	decAttrs := make([]int32, triangleCount*3*2)
	r := bitio.NewReader(truncated)
	if err := dec.Decode(r, triangleCount, decTriangles, decAttrs); err == nil {
		t.Fatal("expected an error decoding a truncated stream, got nil")
	}
}

// TestDecodeFreeVertexBackRefOutOfRangeReturnsError hand-builds a stream
// whose first triangle claims symbol NEW_NEW_FREE with a free-vertex
// relative index that can't possibly point at an already-emitted vertex
// (newVertices is still 0). Decode must report ErrBackRefOutOfWindow
// rather than underflow newVertices-1 into a huge index and panic
// indexing the attribute slice.
func TestDecodeFreeVertexBackRefOutOfRangeReturnsError(t *testing.T) {
	w := bitio.NewWriter(16)
	mustWritePrefix(w, uint32(tables.NewNewFree), tables.TriangleCodes)
	w.WriteVarInt(5)
	w.Finish()

	layout := tables.DefaultLayout()
	dec := NewDecoder[uint32, int32](0, layout)
	decTriangles := make([]uint32, 3)
	r := bitio.NewReader(w.Bytes())
	err := dec.Decode(r, 1, decTriangles, nil)
	if !errors.Is(err, ErrBackRefOutOfWindow) {
		t.Fatalf("expected ErrBackRefOutOfWindow decoding an out-of-range free-vertex back-reference, got %v", err)
	}
}

func TestEncodeDegenerateTriangleInvariantPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Encode to panic on a degenerate triangle")
		}
	}()
	remap := make([]uint32, 3)
	enc := NewEncoder[uint32, int32](remap, 1, tables.DefaultLayout())
	w := bitio.NewWriter(16)
	enc.Encode(w, []uint32{0, 0, 1}, []int32{0, 0, 0})
}

func FuzzRoundTripGrid(f *testing.F) {
	f.Add(2, 2, 1, 0)
	f.Add(5, 5, 3, 7)
	f.Add(3, 9, 2, 13)
	f.Fuzz(func(t *testing.T, gridX, gridY, attrCount, seed int) {
		if gridX < 2 || gridX > 24 || gridY < 2 || gridY > 24 {
			t.Skip()
		}
		if attrCount < 0 || attrCount > 8 {
			t.Skip()
		}
		triangles, vertexCount := gridTriangles(gridX, gridY)
		attrs := make([]int32, vertexCount*attrCount)
		for i := range attrs {
			attrs[i] = int32((i+seed)%211 - 105)
		}
		checkRoundTrip(t, triangles, vertexCount, attrCount, attrs)
	})
}
