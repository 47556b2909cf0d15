// Package tables holds the codec's frozen wire-format data: the three
// static prefix-code tables, the classification-to-symbol rotation table,
// and the default FIFO/adaptive-code layout. Nothing here looks at a mesh;
// it is pure static data plus the small amount of logic needed to derive
// or validate it.
package tables

// Symbol is one of the fourteen per-triangle codes. Values 0-2 are the
// edge-hit symbols; 3-13 are the no-edge-hit classification patterns, in
// the same order TriangleCodes and the classification table use.
type Symbol uint32

const (
	EdgeNew Symbol = iota
	EdgeCached
	EdgeFree
	NewNewNew
	NewNewCached
	NewNewFree
	NewCachedCached
	NewCachedFree
	NewFreeCached
	NewFreeFree
	CachedCachedCached
	CachedCachedFree
	CachedFreeFree
	FreeFreeFree

	SymbolCount = iota
)

func (s Symbol) String() string {
	switch s {
	case EdgeNew:
		return "EDGE_NEW"
	case EdgeCached:
		return "EDGE_CACHED"
	case EdgeFree:
		return "EDGE_FREE"
	case NewNewNew:
		return "NEW_NEW_NEW"
	case NewNewCached:
		return "NEW_NEW_CACHED"
	case NewNewFree:
		return "NEW_NEW_FREE"
	case NewCachedCached:
		return "NEW_CACHED_CACHED"
	case NewCachedFree:
		return "NEW_CACHED_FREE"
	case NewFreeCached:
		return "NEW_FREE_CACHED"
	case NewFreeFree:
		return "NEW_FREE_FREE"
	case CachedCachedCached:
		return "CACHED_CACHED_CACHED"
	case CachedCachedFree:
		return "CACHED_CACHED_FREE"
	case CachedFreeFree:
		return "CACHED_FREE_FREE"
	case FreeFreeFree:
		return "FREE_FREE_FREE"
	default:
		return "UNKNOWN_SYMBOL"
	}
}

// VertexClass is a single vertex's classification relative to the remap
// table and vertex FIFO.
type VertexClass uint32

const (
	NewVertex VertexClass = iota
	CachedVertex
	FreeVertex
)

func (c VertexClass) String() string {
	switch c {
	case NewVertex:
		return "new"
	case CachedVertex:
		return "cached"
	case FreeVertex:
		return "free"
	default:
		return "unknown"
	}
}
