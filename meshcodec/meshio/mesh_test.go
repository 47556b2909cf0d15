package meshio

import (
	"testing"

	"github.com/pkg/errors"
)

func TestValidateAcceptsWellFormedMesh(t *testing.T) {
	m := &Mesh[uint16, int32]{
		Triangles:      []uint16{0, 1, 2, 1, 3, 2},
		Attributes:     make([]int32, 4*3),
		VertexCount:    4,
		AttributeCount: 3,
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsDegenerateTriangle(t *testing.T) {
	m := &Mesh[uint16, int32]{
		Triangles:      []uint16{0, 0, 1},
		Attributes:     make([]int32, 2),
		VertexCount:    2,
		AttributeCount: 1,
	}
	err := m.Validate()
	if !errors.Is(err, ErrDegenerateTriangle) {
		t.Fatalf("want ErrDegenerateTriangle, got %v", err)
	}
}

func TestValidateRejectsOutOfRangeIndex(t *testing.T) {
	m := &Mesh[uint16, int32]{
		Triangles:      []uint16{0, 1, 5},
		Attributes:     make([]int32, 3),
		VertexCount:    3,
		AttributeCount: 1,
	}
	err := m.Validate()
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("want ErrIndexOutOfRange, got %v", err)
	}
}

func TestValidateRejectsAttributeCountOver64(t *testing.T) {
	m := &Mesh[uint16, int32]{
		Triangles:      []uint16{0, 1, 2},
		Attributes:     make([]int32, 3*65),
		VertexCount:    3,
		AttributeCount: 65,
	}
	err := m.Validate()
	if !errors.Is(err, ErrAttributeCountTooLarge) {
		t.Fatalf("want ErrAttributeCountTooLarge, got %v", err)
	}
}

func TestValidateRejectsMismatchedAttributeBuffer(t *testing.T) {
	m := &Mesh[uint16, int32]{
		Triangles:      []uint16{0, 1, 2},
		Attributes:     make([]int32, 2),
		VertexCount:    3,
		AttributeCount: 1,
	}
	err := m.Validate()
	if !errors.Is(err, ErrAttributeBufferSize) {
		t.Fatalf("want ErrAttributeBufferSize, got %v", err)
	}
}

func TestAdjacencyCountsSharedEdgesAndDegree(t *testing.T) {
	// Two triangles sharing edge (1,2): 0-1-2 and 1-3-2.
	m := &Mesh[uint16, int32]{
		Triangles:      []uint16{0, 1, 2, 1, 3, 2},
		Attributes:     make([]int32, 4),
		VertexCount:    4,
		AttributeCount: 1,
	}
	stats := m.Adjacency()
	if stats.SharedHalfEdges != 1 {
		t.Fatalf("expected exactly one shared edge, got %d", stats.SharedHalfEdges)
	}
	if stats.MaxVertexDegree < 2 {
		t.Fatalf("expected some vertex with degree >= 2, got %d", stats.MaxVertexDegree)
	}
}
