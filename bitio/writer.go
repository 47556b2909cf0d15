package bitio

import "github.com/pkg/errors"

// ErrCodeOutOfRange is returned by WritePrefixCode when the symbol has no
// entry in the supplied table.
var ErrCodeOutOfRange = errors.New("bitio: prefix code symbol out of range")

// Writer accumulates bits into a growable byte buffer, LSB-first within
// each byte, little-endian across bytes — the same contract
// writebitstream.h documents for WriteBitstream.
type Writer struct {
	buf       []byte
	bitBuffer uint64
	bitsLeft  uint32 // free bits remaining in bitBuffer before it must flush
	size      uint64 // total bits written
}

// NewWriter returns a Writer with an initial buffer capacity hint.
func NewWriter(capacityHint int) *Writer {
	if capacityHint <= 0 {
		capacityHint = 16
	}
	return &Writer{
		buf:      make([]byte, 0, capacityHint),
		bitsLeft: 64,
	}
}

// BitLen returns the number of bits written so far.
func (w *Writer) BitLen() uint64 { return w.size }

// ByteLen returns the number of bytes the written bits occupy, rounded up.
func (w *Writer) ByteLen() uint64 { return (w.size + 7) >> 3 }

// Write appends the low bitCount bits of value, LSB-first. bitCount must be
// in [0, 32].
func (w *Writer) Write(value uint32, bitCount uint32) {
	if bitCount == 0 {
		return
	}
	if w.bitsLeft == 64 {
		w.bitBuffer |= uint64(value)
	} else {
		w.bitBuffer |= uint64(value) << (64 - w.bitsLeft)
	}
	if bitCount > w.bitsLeft {
		w.flushWord()
		w.bitBuffer = uint64(value) >> w.bitsLeft
		w.bitsLeft = 64 - (bitCount - w.bitsLeft)
	} else {
		w.bitsLeft -= bitCount
	}
	w.size += uint64(bitCount)
}

// flushWord appends the current 64-bit register to the byte buffer,
// little-endian, and clears it.
func (w *Writer) flushWord() {
	var tmp [8]byte
	v := w.bitBuffer
	for i := 0; i < 8; i++ {
		tmp[i] = byte(v)
		v >>= 8
	}
	w.buf = append(w.buf, tmp[:]...)
	w.bitBuffer = 0
}

// WriteVarInt appends value as LEB128: 7-bit groups, MSB continuation.
func (w *Writer) WriteVarInt(value uint32) {
	for {
		lower7 := value & 0x7F
		value >>= 7
		if value > 0 {
			w.Write(lower7|0x80, 8)
		} else {
			w.Write(lower7, 8)
			return
		}
	}
}

// WritePrefixCode looks symbol up in table and emits its (code, bitLength).
func (w *Writer) WritePrefixCode(symbol uint32, table []PrefixCode) error {
	if int(symbol) >= len(table) {
		return errors.Wrapf(ErrCodeOutOfRange, "symbol %d, table size %d", symbol, len(table))
	}
	pc := table[symbol]
	w.Write(pc.Code, pc.BitLength)
	return nil
}

// WriteUniversalZigZag writes the zig-zag of a signed value using the
// universal code with parameter k. It returns the kEstimate —
// floor(log2((zigzag<<1)|1)) — so the caller can update its adaptive k.
func (w *Writer) WriteUniversalZigZag(value int32, k uint32) uint32 {
	zigzag := ZigZag(value)
	return w.writeUniversal(zigzag, k)
}

func (w *Writer) writeUniversal(zigzag uint32, k uint32) uint32 {
	bits := Log2((zigzag << 1) | 1)
	var d uint32
	if bits > k {
		d = bits - k
	}
	// unary d: d zero bits then a one bit, LSB-first == writing (1<<d) over
	// d+1 bits. d==0 collapses to the single "1" of the bits<=k case.
	w.Write(1<<d, d+1)
	var nz uint32
	if d != 0 {
		nz = 1
	}
	payloadBits := k + d - nz
	if payloadBits > 0 {
		w.Write(zigzag&((1<<payloadBits)-1), payloadBits)
	}
	return bits
}

// Finish pads the stream so the decoder can safely over-read its final
// refill; the codec's wire format requires 32 zero bits of trailing
// padding after the last triangle (the core driver calls this, not
// WritePrefixCode consumers directly).
func (w *Writer) Finish() {
	w.Write(0, 32)
	if w.bitsLeft < 64 {
		w.flushWord()
	}
}

// Bytes returns the raw encoded bytes. Call Finish first.
func (w *Writer) Bytes() []byte {
	return w.buf
}
