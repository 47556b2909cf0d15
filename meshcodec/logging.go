package meshcodec

import "fmt"

// Logger receives trace output from Encoder.Encode and Decoder.Decode.
// *log.Logger implements it; the zero value of the Logger field on
// Encoder/Decoder is nil, which disables tracing with no formatting cost.
type Logger interface {
	Output(calldepth int, s string) error
}

// traceDispatch logs one triangle's dispatched symbol alongside the edge
// and vertex FIFOs' current occupancy. Encoder and Decoder call it from
// the same point in their respective loops, so --verbose output from the
// two sides of a round trip lines up: a divergence in the occupancy
// counts at matching triangle indices means the FIFOs have fallen out of
// lockstep before the symbol mismatch that would otherwise be the first
// visible symptom.
func traceDispatch(l Logger, ti int, symbol fmt.Stringer, edgeFifoCount, vertexFifoCount uint32) {
	if l == nil {
		return
	}
	l.Output(3, fmt.Sprintf("triangle %d: %s (edge fifo %d, vertex fifo %d)", ti, symbol, edgeFifoCount, vertexFifoCount))
}
