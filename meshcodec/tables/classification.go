package tables

// CompressionCase is the symbol and vertex-order permutation the encoder
// uses for one (class0, class1, class2) combination that did not hit an
// edge in the FIFO.
type CompressionCase struct {
	Code       Symbol
	VertexOrder [3]uint32
}

// ClassificationTable mirrors indexbufferencodetables.h's CompressionCase
// array verbatim: indexed [class(t0)][class(t1)][class(t2)], it gives the
// canonical symbol and the permutation that rotates (t0,t1,t2) into the
// order the symbol's payload table expects.
var ClassificationTable = [3][3][3]CompressionCase{
	{ // t0 = new
		{ // t1 = new
			{NewNewNew, [3]uint32{0, 1, 2}},
			{NewNewCached, [3]uint32{0, 1, 2}},
			{NewNewFree, [3]uint32{0, 1, 2}},
		},
		{ // t1 = cached
			{NewNewCached, [3]uint32{2, 0, 1}},
			{NewCachedCached, [3]uint32{0, 1, 2}},
			{NewCachedFree, [3]uint32{0, 1, 2}},
		},
		{ // t1 = free
			{NewNewFree, [3]uint32{2, 0, 1}},
			{NewFreeCached, [3]uint32{0, 1, 2}},
			{NewFreeFree, [3]uint32{0, 1, 2}},
		},
	},
	{ // t0 = cached
		{ // t1 = new
			{NewNewCached, [3]uint32{1, 2, 0}},
			{NewCachedCached, [3]uint32{1, 2, 0}},
			{NewFreeCached, [3]uint32{1, 2, 0}},
		},
		{ // t1 = cached
			{NewCachedCached, [3]uint32{2, 0, 1}},
			{CachedCachedCached, [3]uint32{0, 1, 2}},
			{CachedCachedFree, [3]uint32{0, 1, 2}},
		},
		{ // t1 = free
			{NewCachedFree, [3]uint32{2, 0, 1}},
			{CachedCachedFree, [3]uint32{2, 0, 1}},
			{CachedFreeFree, [3]uint32{0, 1, 2}},
		},
	},
	{ // t0 = free
		{ // t1 = new
			{NewNewFree, [3]uint32{1, 2, 0}},
			{NewCachedFree, [3]uint32{1, 2, 0}},
			{NewFreeFree, [3]uint32{1, 2, 0}},
		},
		{ // t1 = cached
			{NewFreeCached, [3]uint32{2, 0, 1}},
			{CachedCachedFree, [3]uint32{1, 2, 0}},
			{CachedFreeFree, [3]uint32{1, 2, 0}},
		},
		{ // t1 = free
			{NewFreeFree, [3]uint32{2, 0, 1}},
			{CachedFreeFree, [3]uint32{2, 0, 1}},
			{FreeFreeFree, [3]uint32{0, 1, 2}},
		},
	},
}

// canonicalPatterns gives the 11 no-edge-hit symbols in the fixed order a
// rotation search must match against, each with the class sequence that
// symbol's payload table assumes.
var canonicalPatterns = []struct {
	symbol  Symbol
	classes [3]VertexClass
}{
	{NewNewNew, [3]VertexClass{NewVertex, NewVertex, NewVertex}},
	{NewNewCached, [3]VertexClass{NewVertex, NewVertex, CachedVertex}},
	{NewNewFree, [3]VertexClass{NewVertex, NewVertex, FreeVertex}},
	{NewCachedCached, [3]VertexClass{NewVertex, CachedVertex, CachedVertex}},
	{NewCachedFree, [3]VertexClass{NewVertex, CachedVertex, FreeVertex}},
	{NewFreeCached, [3]VertexClass{NewVertex, FreeVertex, CachedVertex}},
	{NewFreeFree, [3]VertexClass{NewVertex, FreeVertex, FreeVertex}},
	{CachedCachedCached, [3]VertexClass{CachedVertex, CachedVertex, CachedVertex}},
	{CachedCachedFree, [3]VertexClass{CachedVertex, CachedVertex, FreeVertex}},
	{CachedFreeFree, [3]VertexClass{CachedVertex, FreeVertex, FreeVertex}},
	{FreeFreeFree, [3]VertexClass{FreeVertex, FreeVertex, FreeVertex}},
}

// DeriveCompressionCase computes the same (symbol, permutation) pair as
// ClassificationTable by rotation search, per §4.3's rule: among the
// rotations of (class0,class1,class2) that match one of the eleven canonical
// patterns, prefer the one that keeps the first canonical slot "new" when
// more than one rotation qualifies. It exists to let a test assert the
// literal table agrees with the rule it was built from, not to replace the
// table at runtime.
func DeriveCompressionCase(class0, class1, class2 VertexClass) CompressionCase {
	classes := [3]VertexClass{class0, class1, class2}
	var best CompressionCase
	found := false
	for _, pat := range canonicalPatterns {
		for rot := 0; rot < 3; rot++ {
			order := [3]uint32{uint32(rot), uint32((rot + 1) % 3), uint32((rot + 2) % 3)}
			if classes[order[0]] == pat.classes[0] &&
				classes[order[1]] == pat.classes[1] &&
				classes[order[2]] == pat.classes[2] {
				candidate := CompressionCase{Code: pat.symbol, VertexOrder: order}
				if !found || (classes[order[0]] == NewVertex && classes[best.VertexOrder[0]] != NewVertex) {
					best = candidate
					found = true
				}
			}
		}
	}
	return best
}
