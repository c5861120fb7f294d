// Package errs defines the sentinel error values surfaced by the bosm
// codec packages (bitio, pack, block, stream). The compress façade does
// not use them.
//
// Every failure is fatal to the current encode/decode call; there is no
// recoverable condition. Callers use errors.Is against one of the four
// sentinels below to classify a failure.
package errs

import "errors"

var (
	// ErrInsufficientOutputBuffer is returned when the caller-supplied
	// output buffer is too small to hold the encoded result.
	ErrInsufficientOutputBuffer = errors.New("bosm: output buffer too small")

	// ErrCorruptHeader is returned when a decoded header field is out of
	// range, k1+k2 exceeds the collapsed delta length, or a run table
	// entry references a position outside the block.
	ErrCorruptHeader = errors.New("bosm: corrupt block header")

	// ErrTruncatedInput is returned when the decoder cursor would have to
	// advance past the end of the input to satisfy a read.
	ErrTruncatedInput = errors.New("bosm: truncated input")

	// ErrInvalidInput is returned when the encoder's input violates a
	// precondition, e.g. max-min overflowing uint32, or a block size
	// outside the codec's supported range.
	ErrInvalidInput = errors.New("bosm: invalid input")
)
