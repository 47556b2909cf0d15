// Package bitio provides the bit-level primitives the mesh codec driver is
// built on: fixed-width bit writes/reads, LEB128 variable-length integers,
// static prefix-code tables, and an adaptive, exponential-Golomb-like
// universal code for signed deltas.
//
// The writer and reader both keep a 64-bit bit buffer; the writer grows its
// byte slice in 8-byte chunks and the reader refills one byte at a time,
// following the same discipline as
// the teacher's range coder (github.com/ulikunitz/xz rc.Encoder/rc.Decoder):
// accumulate bits in a wide register, flush or refill only when it runs dry.
package bitio

import "math/bits"

// PrefixCode is one entry of a static prefix-code table: Code is emitted
// LSB-first using the low BitLength bits.
type PrefixCode struct {
	Code      uint32
	BitLength uint32
}

// DecodeEntry is one slot of a direct 2^maxLen decode table, indexed by the
// low maxLen bits of the bit buffer.
type DecodeEntry struct {
	Symbol     uint32
	BitLength  uint32
}

// BuildDecodeTable turns a PrefixCode table (indexed by symbol) into a
// direct lookup table of 2^maxLen entries, indexed by the low maxLen bits of
// a bit buffer — the technique readbitstream.h documents for Decode.
func BuildDecodeTable(codes []PrefixCode, maxLen uint32) []DecodeEntry {
	table := make([]DecodeEntry, 1<<maxLen)
	for symbol, pc := range codes {
		step := uint32(1) << pc.BitLength
		for base := pc.Code; base < uint32(len(table)); base += step {
			table[base] = DecodeEntry{Symbol: uint32(symbol), BitLength: pc.BitLength}
		}
	}
	return table
}

// ZigZag folds a signed value into a nonnegative one so small magnitudes of
// either sign map to small codes.
func ZigZag(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

// UnZigZag is the inverse of ZigZag.
func UnZigZag(z uint32) int32 {
	return int32(z>>1) ^ -int32(z&1)
}

// Log2 returns floor(log2(v)). v must be nonzero. This is the portable
// equivalent of the teacher's hand-rolled NLZ/_BitScanReverse tricks
// (basics/u32.NLZ, rc.Prob's bit-width helpers) — Go's math/bits gives the
// same bit-scan instruction without the platform-specific assembly.
func Log2(v uint32) uint32 {
	return uint32(bits.Len32(v)) - 1
}
