package bitio

import "testing"

func TestZigZagRoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 2, -2, 1000, -1000, 1 << 20, -(1 << 20)} {
		z := ZigZag(v)
		got := UnZigZag(z)
		if got != v {
			t.Fatalf("UnZigZag(ZigZag(%d)) = %d", v, got)
		}
	}
}

func TestLog2(t *testing.T) {
	tests := []struct {
		v    uint32
		want uint32
	}{
		{1, 0}, {2, 1}, {3, 1}, {4, 2}, {7, 2}, {8, 3}, {1 << 31, 31},
	}
	for _, c := range tests {
		if got := Log2(c.v); got != c.want {
			t.Fatalf("Log2(%d) = %d; want %d", c.v, got, c.want)
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	w := NewWriter(16)
	values := []struct{ v, n uint32 }{
		{1, 1}, {0, 1}, {5, 3}, {0xFFFF, 16}, {1, 1}, {3, 2}, {0, 32},
	}
	for _, c := range values {
		w.Write(c.v, c.n)
	}
	w.Finish()

	r := NewReader(w.Bytes())
	for _, c := range values {
		got, err := r.Read(c.n)
		if err != nil {
			t.Fatalf("Read(%d) error %s", c.n, err)
		}
		if got != c.v {
			t.Fatalf("Read(%d) = %d; want %d", c.n, got, c.v)
		}
	}
	if err := r.SkipPadding(); err != nil {
		t.Fatalf("SkipPadding: %s", err)
	}
}

func TestVarIntRoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 127, 128, 300, 1 << 20, 1<<32 - 1} {
		w := NewWriter(8)
		w.WriteVarInt(v)
		w.Finish()
		r := NewReader(w.Bytes())
		got, err := r.ReadVarInt()
		if err != nil {
			t.Fatalf("ReadVarInt after WriteVarInt(%d): %s", v, err)
		}
		if got != v {
			t.Fatalf("ReadVarInt() = %d; want %d", got, v)
		}
	}
}

func TestUniversalZigZagRoundTrip(t *testing.T) {
	for k := uint32(0); k <= 16; k++ {
		for _, v := range []int32{0, 1, -1, 5, -5, 100, -100, 1 << 20, -(1 << 20)} {
			w := NewWriter(8)
			w.WriteUniversalZigZag(v, k)
			w.Finish()
			r := NewReader(w.Bytes())
			got, kEstimate, err := r.DecodeUniversalZigZag(k)
			if err != nil {
				t.Fatalf("k=%d v=%d: DecodeUniversalZigZag error %s", k, v, err)
			}
			if got != v {
				t.Fatalf("k=%d v=%d: DecodeUniversalZigZag = %d", k, v, got)
			}
			zz := ZigZag(v)
			want := Log2((zz << 1) | 1)
			if kEstimate != want {
				t.Fatalf("k=%d v=%d: kEstimate = %d; want %d", k, v, kEstimate, want)
			}
		}
	}
}

func TestPrefixCodeRoundTrip(t *testing.T) {
	table := []PrefixCode{
		{Code: 0, BitLength: 1},
		{Code: 1, BitLength: 2},
		{Code: 3, BitLength: 2},
	}
	decodeTable := BuildDecodeTable(table, 2)
	for symbol := range table {
		w := NewWriter(4)
		if err := w.WritePrefixCode(uint32(symbol), table); err != nil {
			t.Fatalf("WritePrefixCode(%d): %s", symbol, err)
		}
		w.Finish()
		r := NewReader(w.Bytes())
		got, err := r.Decode(decodeTable, 2)
		if err != nil {
			t.Fatalf("Decode after symbol %d: %s", symbol, err)
		}
		if got != uint32(symbol) {
			t.Fatalf("Decode() = %d; want %d", got, symbol)
		}
	}
}

func TestWritePrefixCodeOutOfRange(t *testing.T) {
	w := NewWriter(4)
	table := []PrefixCode{{Code: 0, BitLength: 1}}
	if err := w.WritePrefixCode(5, table); err == nil {
		t.Fatalf("WritePrefixCode with out-of-range symbol returned no error")
	}
}

func TestReadTruncated(t *testing.T) {
	w := NewWriter(4)
	w.Write(1, 4)
	w.Finish()
	r := NewReader(w.Bytes()[:0])
	if _, err := r.Read(4); err == nil {
		t.Fatalf("Read on empty buffer returned no error")
	}
}
