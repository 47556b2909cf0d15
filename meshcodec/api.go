package meshcodec

import (
	"github.com/ConorStokes/MeshCompression/bitio"
	"github.com/ConorStokes/MeshCompression/meshcodec/tables"
)

// Compress encodes triangles (vertex indices into the attribute matrix) and
// attributes (vertexCount rows of attrCount scalars each) into a fresh byte
// buffer using DefaultLayout. vertexRemapOut is caller-owned, one slot per
// original vertex index (len(vertexRemapOut) == vertexCount); Compress
// resets it and fills vertexRemapOut[original] with that vertex's
// emission-order index, leaving UnmappedVertex for indices the triangle
// list never references. It panics via InvariantError on a malformed mesh
// — see Encoder.Encode.
func Compress[I Index, A Attribute](triangles []I, vertexRemapOut []uint32, attrCount int, attributes []A) []byte {
	layout := tables.DefaultLayout()
	enc := NewEncoder[I, A](vertexRemapOut, attrCount, layout)

	capacityHint := len(triangles)*2 + len(attributes)*4
	w := bitio.NewWriter(capacityHint)
	enc.Encode(w, triangles, attributes)
	return w.Bytes()
}

// Decompress is Compress's inverse: given the triangle count and the
// attribute width it was encoded with, it reconstructs the triangle list
// and attribute matrix. The returned attribute slice has room for
// 3*triangleCount vertex rows, the most a stream can emit; only the rows of
// the vertices the stream actually emits are filled, and the slice is not
// trimmed to that count.
func Decompress[I Index, A Attribute](data []byte, triangleCount, attrCount int) (triangles []I, attributes []A, err error) {
	layout := tables.DefaultLayout()
	dec := NewDecoder[I, A](attrCount, layout)

	triangles = make([]I, triangleCount*3)
	// A stream can emit at most 3*triangleCount distinct vertices (every
	// triangle all-new); overallocate and let the caller trim once the
	// true count is known from the decoded index range.
	attributes = make([]A, triangleCount*3*attrCount)

	r := bitio.NewReader(data)
	if err := dec.Decode(r, triangleCount, triangles, attributes); err != nil {
		return nil, nil, err
	}
	return triangles, attributes, nil
}

// CompressUint16Int32 is the uint16-index/int32-attribute instantiation of
// Compress, mirroring meshcompression.cpp's explicit template wrapper.
func CompressUint16Int32(triangles []uint16, vertexRemapOut []uint32, attrCount int, attributes []int32) []byte {
	return Compress[uint16, int32](triangles, vertexRemapOut, attrCount, attributes)
}

// CompressUint32Int32 is the uint32-index/int32-attribute instantiation.
func CompressUint32Int32(triangles []uint32, vertexRemapOut []uint32, attrCount int, attributes []int32) []byte {
	return Compress[uint32, int32](triangles, vertexRemapOut, attrCount, attributes)
}

// CompressUint16Int16 is the uint16-index/int16-attribute instantiation.
func CompressUint16Int16(triangles []uint16, vertexRemapOut []uint32, attrCount int, attributes []int16) []byte {
	return Compress[uint16, int16](triangles, vertexRemapOut, attrCount, attributes)
}

// CompressUint32Int16 is the uint32-index/int16-attribute instantiation.
func CompressUint32Int16(triangles []uint32, vertexRemapOut []uint32, attrCount int, attributes []int16) []byte {
	return Compress[uint32, int16](triangles, vertexRemapOut, attrCount, attributes)
}

// DecompressUint16Int32 is CompressUint16Int32's inverse.
func DecompressUint16Int32(data []byte, triangleCount, attrCount int) ([]uint16, []int32, error) {
	return Decompress[uint16, int32](data, triangleCount, attrCount)
}

// DecompressUint32Int32 is CompressUint32Int32's inverse.
func DecompressUint32Int32(data []byte, triangleCount, attrCount int) ([]uint32, []int32, error) {
	return Decompress[uint32, int32](data, triangleCount, attrCount)
}

// DecompressUint16Int16 is CompressUint16Int16's inverse.
func DecompressUint16Int16(data []byte, triangleCount, attrCount int) ([]uint16, []int16, error) {
	return Decompress[uint16, int16](data, triangleCount, attrCount)
}

// DecompressUint32Int16 is CompressUint32Int16's inverse.
func DecompressUint32Int16(data []byte, triangleCount, attrCount int) ([]uint32, []int16, error) {
	return Decompress[uint32, int16](data, triangleCount, attrCount)
}
