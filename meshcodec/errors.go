package meshcodec

import "github.com/pkg/errors"

// InvariantError marks a programming-error failure on the encode side:
// degenerate input the caller should never have produced. It panics
// rather than returning an error, matching the teacher's own use of
// panic for implementation-bug conditions (lzb/dict.go's "dist out of
// range", lzb/buffer.go's "b.Top overflow?").
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return "meshcodec: " + e.Msg }

func invariant(format string, args ...interface{}) {
	panic(&InvariantError{Msg: errors.Errorf(format, args...).Error()})
}

// Sentinel errors surfaced from the decoder — all recoverable stream-level
// failures, never panics, per spec.md §7.
var (
	ErrTruncatedStream    = errors.New("meshcodec: truncated stream")
	ErrCorruptStream      = errors.New("meshcodec: corrupt stream")
	ErrBackRefOutOfWindow = errors.New("meshcodec: back-reference outside valid FIFO window")
)
