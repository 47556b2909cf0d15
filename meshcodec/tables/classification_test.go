package tables

import "testing"

// Table compliance (spec.md §8): the literal 27-entry ClassificationTable
// must agree with DeriveCompressionCase's rotation rule for every entry.
func TestClassificationTableAgreesWithRotationRule(t *testing.T) {
	classes := [3]VertexClass{NewVertex, CachedVertex, FreeVertex}
	for _, c0 := range classes {
		for _, c1 := range classes {
			for _, c2 := range classes {
				want := ClassificationTable[c0][c1][c2]
				got := DeriveCompressionCase(c0, c1, c2)
				if got.Code != want.Code {
					t.Fatalf("(%s,%s,%s): derived symbol %s; table says %s", c0, c1, c2, got.Code, want.Code)
				}
				if got.VertexOrder != want.VertexOrder {
					t.Fatalf("(%s,%s,%s): derived order %v; table says %v", c0, c1, c2, got.VertexOrder, want.VertexOrder)
				}
			}
		}
	}
}

func TestTriangleCodesCoverAllSymbols(t *testing.T) {
	if len(TriangleCodes) != int(SymbolCount) {
		t.Fatalf("len(TriangleCodes) = %d; want %d", len(TriangleCodes), SymbolCount)
	}
	for _, pc := range TriangleCodes {
		if pc.BitLength == 0 || pc.BitLength > TriangleMaxCodeLength {
			t.Fatalf("triangle code bit length %d out of [1,%d]", pc.BitLength, TriangleMaxCodeLength)
		}
	}
}

func TestEdgeAndVertexTablesHave32Entries(t *testing.T) {
	if len(EdgeCodes) != 32 {
		t.Fatalf("len(EdgeCodes) = %d; want 32", len(EdgeCodes))
	}
	if len(VertexCodes) != 32 {
		t.Fatalf("len(VertexCodes) = %d; want 32", len(VertexCodes))
	}
}
