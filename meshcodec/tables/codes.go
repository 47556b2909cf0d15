package tables

import "github.com/ConorStokes/MeshCompression/bitio"

// Max code lengths for the three tables, per the wire format.
const (
	TriangleMaxCodeLength = 7
	EdgeMaxCodeLength     = 11
	VertexMaxCodeLength   = 8
)

// TriangleCodes is the 14-entry symbol prefix-code table, indexed by Symbol.
var TriangleCodes = []bitio.PrefixCode{
	{Code: 0, BitLength: 1},
	{Code: 3, BitLength: 2},
	{Code: 5, BitLength: 3},
	{Code: 49, BitLength: 7},
	{Code: 33, BitLength: 7},
	{Code: 81, BitLength: 7},
	{Code: 9, BitLength: 5},
	{Code: 113, BitLength: 7},
	{Code: 57, BitLength: 7},
	{Code: 25, BitLength: 6},
	{Code: 121, BitLength: 7},
	{Code: 17, BitLength: 7},
	{Code: 1, BitLength: 6},
	{Code: 97, BitLength: 7},
}

// EdgeCodes is the 32-entry edge-back-reference age table.
var EdgeCodes = []bitio.PrefixCode{
	{Code: 1, BitLength: 2},
	{Code: 2, BitLength: 2},
	{Code: 0, BitLength: 3},
	{Code: 15, BitLength: 4},
	{Code: 11, BitLength: 4},
	{Code: 3, BitLength: 4},
	{Code: 7, BitLength: 5},
	{Code: 28, BitLength: 5},
	{Code: 20, BitLength: 5},
	{Code: 55, BitLength: 6},
	{Code: 12, BitLength: 6},
	{Code: 36, BitLength: 6},
	{Code: 23, BitLength: 7},
	{Code: 44, BitLength: 7},
	{Code: 215, BitLength: 8},
	{Code: 87, BitLength: 8},
	{Code: 196, BitLength: 8},
	{Code: 132, BitLength: 8},
	{Code: 236, BitLength: 9},
	{Code: 364, BitLength: 9},
	{Code: 324, BitLength: 9},
	{Code: 68, BitLength: 9},
	{Code: 1004, BitLength: 10},
	{Code: 492, BitLength: 10},
	{Code: 108, BitLength: 10},
	{Code: 772, BitLength: 10},
	{Code: 516, BitLength: 10},
	{Code: 4, BitLength: 10},
	{Code: 1644, BitLength: 11},
	{Code: 620, BitLength: 11},
	{Code: 1284, BitLength: 11},
	{Code: 260, BitLength: 11},
}

// VertexCodes is the 32-entry vertex-FIFO-back-reference age table.
var VertexCodes = []bitio.PrefixCode{
	{Code: 215, BitLength: 8},
	{Code: 0, BitLength: 1},
	{Code: 5, BitLength: 3},
	{Code: 3, BitLength: 4},
	{Code: 15, BitLength: 5},
	{Code: 11, BitLength: 5},
	{Code: 9, BitLength: 5},
	{Code: 1, BitLength: 5},
	{Code: 55, BitLength: 6},
	{Code: 39, BitLength: 6},
	{Code: 27, BitLength: 6},
	{Code: 25, BitLength: 6},
	{Code: 17, BitLength: 6},
	{Code: 63, BitLength: 7},
	{Code: 31, BitLength: 7},
	{Code: 23, BitLength: 7},
	{Code: 7, BitLength: 7},
	{Code: 59, BitLength: 7},
	{Code: 121, BitLength: 7},
	{Code: 113, BitLength: 7},
	{Code: 49, BitLength: 7},
	{Code: 255, BitLength: 8},
	{Code: 127, BitLength: 8},
	{Code: 223, BitLength: 8},
	{Code: 95, BitLength: 8},
	{Code: 87, BitLength: 8},
	{Code: 199, BitLength: 8},
	{Code: 71, BitLength: 8},
	{Code: 251, BitLength: 8},
	{Code: 123, BitLength: 8},
	{Code: 185, BitLength: 8},
	{Code: 57, BitLength: 8},
}

// Decode tables are built once at package init, matching readbitstream.h's
// direct-lookup technique: a 2^maxLen table indexed by the low maxLen bits
// of the bit buffer.
var (
	TriangleDecodeTable = bitio.BuildDecodeTable(TriangleCodes, TriangleMaxCodeLength)
	EdgeDecodeTable     = bitio.BuildDecodeTable(EdgeCodes, EdgeMaxCodeLength)
	VertexDecodeTable   = bitio.BuildDecodeTable(VertexCodes, VertexMaxCodeLength)
)
