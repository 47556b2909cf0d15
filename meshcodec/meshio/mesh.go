// Package meshio bundles a triangle list and a flat vertex-attribute
// matrix into a single in-memory value, plus the validation the original
// C++ codec performed inline (assert calls in meshcompression.cpp) before
// ever touching the FIFOs. It is not a container or file format — callers
// still own loading an OBJ/PLY/whatever into this shape themselves.
package meshio

import (
	"github.com/pkg/errors"

	"github.com/ConorStokes/MeshCompression/meshcodec"
)

// ErrDegenerateTriangle is returned by Validate when a triangle repeats a
// vertex index across its three corners.
var ErrDegenerateTriangle = errors.New("meshio: degenerate triangle")

// ErrIndexOutOfRange is returned by Validate when a triangle names a vertex
// index at or beyond VertexCount.
var ErrIndexOutOfRange = errors.New("meshio: vertex index out of range")

// ErrAttributeCountTooLarge is returned by Validate when AttributeCount
// exceeds the codec's 64-column limit.
var ErrAttributeCountTooLarge = errors.New("meshio: attribute count exceeds 64")

// ErrAttributeBufferSize is returned by Validate when Attributes isn't
// exactly VertexCount*AttributeCount long.
var ErrAttributeBufferSize = errors.New("meshio: attribute buffer wrong size")

// Mesh is a width-agnostic bundle of an indexed triangle list and its
// per-vertex attribute matrix, row-major, one row of AttributeCount
// scalars per vertex.
type Mesh[I meshcodec.Index, A meshcodec.Attribute] struct {
	Triangles      []I
	Attributes     []A
	VertexCount    int
	AttributeCount int
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh[I, A]) TriangleCount() int {
	return len(m.Triangles) / 3
}

// Validate checks the invariants Compress assumes and would otherwise
// discover only by panicking mid-encode: no degenerate triangle, every
// index in range, attribute buffer sized to match, attribute count within
// the codec's 64-column limit. It's the boundary check spec.md §7 asks
// for, moved out of the per-triangle loop and into one pass a caller runs
// once after assembling a mesh.
func (m *Mesh[I, A]) Validate() error {
	if m.AttributeCount > 64 {
		return errors.Wrapf(ErrAttributeCountTooLarge, "got %d", m.AttributeCount)
	}
	if len(m.Attributes) != m.VertexCount*m.AttributeCount {
		return errors.Wrapf(ErrAttributeBufferSize, "want %d (%d vertices * %d columns), got %d",
			m.VertexCount*m.AttributeCount, m.VertexCount, m.AttributeCount, len(m.Attributes))
	}
	if len(m.Triangles)%3 != 0 {
		return errors.Errorf("meshio: triangle index count %d not a multiple of 3", len(m.Triangles))
	}
	for ti := 0; ti < m.TriangleCount(); ti++ {
		a := int(m.Triangles[ti*3])
		b := int(m.Triangles[ti*3+1])
		c := int(m.Triangles[ti*3+2])
		for _, v := range [3]int{a, b, c} {
			if v < 0 || v >= m.VertexCount {
				return errors.Wrapf(ErrIndexOutOfRange, "triangle %d references vertex %d, vertex count %d", ti, v, m.VertexCount)
			}
		}
		if a == b || b == c || c == a {
			return errors.Wrapf(ErrDegenerateTriangle, "triangle %d: (%d,%d,%d)", ti, a, b, c)
		}
	}
	return nil
}

// AdjacencyStats summarizes the edge FIFO's raw material: how many edges
// are used by more than one triangle, counting both traversal directions
// of an edge as the same edge (a rough proxy for how much a
// well-ordered mesh will actually hit the codec's edge back-references)
// and the largest number of triangles sharing a single vertex.
type AdjacencyStats struct {
	SharedHalfEdges int
	MaxVertexDegree int
}

// Adjacency walks the triangle list once and computes AdjacencyStats. It
// does not touch the codec's own FIFOs — this is descriptive tooling for
// cmd/meshcodecbench, not part of the wire format.
func (m *Mesh[I, A]) Adjacency() AdjacencyStats {
	type halfEdge struct{ a, b uint32 }
	seen := make(map[halfEdge]int)
	degree := make([]int, m.VertexCount)

	for ti := 0; ti < m.TriangleCount(); ti++ {
		t := [3]uint32{uint32(m.Triangles[ti*3]), uint32(m.Triangles[ti*3+1]), uint32(m.Triangles[ti*3+2])}
		for i := 0; i < 3; i++ {
			a, b := t[i], t[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			seen[halfEdge{a, b}]++
			degree[t[i]]++
		}
	}

	stats := AdjacencyStats{}
	for _, count := range seen {
		if count > 1 {
			stats.SharedHalfEdges++
		}
	}
	for _, d := range degree {
		if d > stats.MaxVertexDegree {
			stats.MaxVertexDegree = d
		}
	}
	return stats
}
