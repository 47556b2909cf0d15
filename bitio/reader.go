package bitio

import (
	"math/bits"

	"github.com/pkg/errors"
)

// ErrTruncated is returned when a read runs past the end of the buffer.
var ErrTruncated = errors.New("bitio: truncated stream")

// ErrCorruptPrefixCode is returned by Decode when the bit buffer's low
// maxLen bits don't resolve to a table entry (only possible if the table
// was built with gaps, which the static tables never have, but the decoder
// checks anyway rather than trust the wire).
var ErrCorruptPrefixCode = errors.New("bitio: corrupt prefix code")

// Reader consumes bits from a byte slice with the same LSB-first,
// little-endian convention Writer produces.
type Reader struct {
	buf       []byte
	pos       int // next unconsumed byte
	bitBuffer uint64
	bitsLeft  uint32 // valid bits currently sitting in bitBuffer
}

// NewReader wraps buf for reading. buf is not copied or modified.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// fill tops the bit buffer up with as many whole bytes as are available,
// without blocking on length — short input just leaves bitsLeft smaller
// than requested, and the caller is expected to err via Read's own check.
func (r *Reader) fill() {
	for r.bitsLeft <= 56 && r.pos < len(r.buf) {
		r.bitBuffer |= uint64(r.buf[r.pos]) << r.bitsLeft
		r.pos++
		r.bitsLeft += 8
	}
}

// Read consumes the low bitCount bits of the stream and returns them
// right-aligned. bitCount must be in [0, 32].
func (r *Reader) Read(bitCount uint32) (uint32, error) {
	if bitCount == 0 {
		return 0, nil
	}
	r.fill()
	if bitCount > r.bitsLeft {
		return 0, errors.Wrapf(ErrTruncated, "need %d bits, have %d", bitCount, r.bitsLeft)
	}
	mask := uint64(1)<<bitCount - 1
	value := uint32(r.bitBuffer & mask)
	r.bitBuffer >>= bitCount
	r.bitsLeft -= bitCount
	return value, nil
}

// ReadVarInt reads a LEB128 value written by Writer.WriteVarInt.
func (r *Reader) ReadVarInt() (uint32, error) {
	var value uint32
	var shift uint32
	for {
		b, err := r.Read(8)
		if err != nil {
			return 0, errors.Wrap(err, "bitio: short varint")
		}
		value |= (b & 0x7F) << shift
		if b&0x80 == 0 {
			return value, nil
		}
		shift += 7
		if shift >= 32 {
			return 0, errors.New("bitio: varint too long")
		}
	}
}

// Decode looks the next maxLen bits up in a table built by BuildDecodeTable
// and consumes only the matched entry's actual bit length.
func (r *Reader) Decode(table []DecodeEntry, maxLen uint32) (uint32, error) {
	r.fill()
	peekLen := maxLen
	if peekLen > r.bitsLeft {
		peekLen = r.bitsLeft
	}
	if peekLen == 0 {
		return 0, errors.Wrap(ErrTruncated, "bitio: decode on empty stream")
	}
	mask := uint64(1)<<maxLen - 1
	index := uint32(r.bitBuffer & mask)
	entry := table[index]
	if entry.BitLength == 0 {
		return 0, errors.Wrapf(ErrCorruptPrefixCode, "index %d", index)
	}
	if entry.BitLength > peekLen {
		return 0, errors.Wrapf(ErrTruncated, "need %d bits, have %d", entry.BitLength, peekLen)
	}
	r.bitBuffer >>= entry.BitLength
	r.bitsLeft -= entry.BitLength
	return entry.Symbol, nil
}

// DecodeUniversal is the exact inverse of Writer.writeUniversal: it counts
// the trailing zeros of the refreshed bit buffer to recover the unary
// prefix length d, then reads the k+d-nz payload bits the prefix didn't
// carry. It also returns kEstimate = floor(log2((result<<1)|1)) so the
// caller can mirror the encoder's adaptive k update.
func (r *Reader) DecodeUniversal(k uint32) (value uint32, kEstimate uint32, err error) {
	r.fill()
	if r.bitsLeft == 0 {
		return 0, 0, errors.Wrap(ErrTruncated, "bitio: universal code on empty stream")
	}
	d := trailingZeros(r.bitBuffer, r.bitsLeft)
	if d+1 > r.bitsLeft {
		return 0, 0, errors.Wrap(ErrTruncated, "bitio: universal prefix runs past buffer")
	}
	r.bitBuffer >>= d + 1
	r.bitsLeft -= d + 1

	var nz uint32
	if d != 0 {
		nz = 1
	}
	payloadBits := k + d - nz
	var payload uint32
	if payloadBits > 0 {
		payload, err = r.Read(payloadBits)
		if err != nil {
			return 0, 0, errors.Wrap(err, "bitio: universal payload")
		}
	}
	value = (nz << payloadBits) | payload
	kEstimate = Log2((value << 1) | 1)
	return value, kEstimate, nil
}

// DecodeUniversalZigZag decodes a universal code and un-zig-zags it back to
// a signed value.
func (r *Reader) DecodeUniversalZigZag(k uint32) (value int32, kEstimate uint32, err error) {
	zigzag, kEstimate, err := r.DecodeUniversal(k)
	if err != nil {
		return 0, 0, err
	}
	return UnZigZag(zigzag), kEstimate, nil
}

// trailingZeros counts zero bits from the LSB of buffer, stopping at limit
// (the number of valid bits remaining) if no set bit is found first.
func trailingZeros(buffer uint64, limit uint32) uint32 {
	if buffer == 0 {
		return limit
	}
	tz := uint32(bits.TrailingZeros64(buffer))
	if tz > limit {
		return limit
	}
	return tz
}

// SkipPadding consumes and discards the 32 bits of trailing zero padding
// every encoded stream ends with.
func (r *Reader) SkipPadding() error {
	_, err := r.Read(32)
	return err
}
