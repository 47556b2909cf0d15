// Package history implements the codec's two ring-buffer history
// structures: the edge FIFO and the vertex FIFO. Both follow the same
// "monotonic counter + counter&mask for the slot, keep a valid window"
// idiom the teacher's lzb.dict/lzb.buffer pair uses for its match window,
// adapted here to fixed-size triangle/vertex-index records instead of
// byte history.
package history

import "github.com/pkg/errors"

// ErrAgeOutOfWindow is returned when a back-reference age names a slot
// that has already aged out of the FIFO's valid window.
var ErrAgeOutOfWindow = errors.New("history: age outside valid FIFO window")

// EdgeRecord is a directed edge first->second of an already-emitted
// triangle, with the opposing vertex third kept alongside for
// parallelogram prediction.
type EdgeRecord struct {
	First, Second, Third uint32
}

// EdgeFIFO is the edge history buffer: capacity is fixed at construction
// and must be a power of two so slot = counter & mask.
type EdgeFIFO struct {
	mask    uint32
	data    []EdgeRecord
	written uint32 // edgesWritten
}

// NewEdgeFIFO allocates an EdgeFIFO of the given power-of-two capacity.
func NewEdgeFIFO(capacity uint32) *EdgeFIFO {
	return &EdgeFIFO{
		mask: capacity - 1,
		data: make([]EdgeRecord, capacity),
	}
}

// Written returns the edgesWritten counter.
func (f *EdgeFIFO) Written() uint32 { return f.written }

// ValidCount returns how many of the most-recently-appended records are
// still addressable (bounded by capacity).
func (f *EdgeFIFO) ValidCount() uint32 {
	cap32 := f.mask + 1
	if f.written < cap32 {
		return f.written
	}
	return cap32
}

// Append writes a new edge record into the newest slot and advances the
// counter, silently overwriting the oldest entry once the FIFO is full.
func (f *EdgeFIFO) Append(first, second, third uint32) {
	f.data[f.written&f.mask] = EdgeRecord{First: first, Second: second, Third: third}
	f.written++
}

// AgeOf returns the age of the record most recently written at absolute
// index target: (written-1) - target.
func (f *EdgeFIFO) AgeOf(target uint32) uint32 {
	return (f.written - 1) - target
}

// AtAge returns the record with the given age (0 = most recently
// appended). It errors if the age has aged out of the valid window.
func (f *EdgeFIFO) AtAge(age uint32) (EdgeRecord, error) {
	if age >= f.ValidCount() {
		return EdgeRecord{}, errors.Wrapf(ErrAgeOutOfWindow, "edge age %d, valid count %d", age, f.ValidCount())
	}
	target := (f.written - 1) - age
	return f.data[target&f.mask], nil
}

// ScanFunc is called with (age, record) from newest to oldest; returning
// true stops the scan and reports a match.
type ScanFunc func(age uint32, rec EdgeRecord) bool

// Scan walks the valid window newest-to-oldest, invoking match for each
// record. It returns the first record match accepts, and its age.
func (f *EdgeFIFO) Scan(match ScanFunc) (age uint32, rec EdgeRecord, found bool) {
	valid := f.ValidCount()
	for age = 0; age < valid; age++ {
		target := (f.written - 1) - age
		rec = f.data[target&f.mask]
		if match(age, rec) {
			return age, rec, true
		}
	}
	return 0, EdgeRecord{}, false
}
