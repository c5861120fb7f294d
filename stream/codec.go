// Package stream implements the BOS-M top-level frame: a 4-byte
// total-length prefix, a 4-byte block-size prefix, an iteration over full
// block.Codec blocks, and a tail policy that either emits the remaining
// values as raw big-endian i32 literals (r <= 3) or as one more
// block.Codec block (r > 3).
package stream

import (
	"fmt"

	"github.com/xjz17/tsfile/block"
	"github.com/xjz17/tsfile/endian"
	"github.com/xjz17/tsfile/internal/errs"
	"github.com/xjz17/tsfile/internal/options"
)

// frameHeaderSize is the combined size of the total_length and
// block_size fields at the start of the frame.
const frameHeaderSize = 8

// literalTailThreshold is the frame-level literal/sub-block tail
// boundary: a tail of this many values or fewer is emitted as raw i32
// literals instead of a sub-block.
const literalTailThreshold = 3

// defaultBlockSize is the Codec's block size when no Option overrides it.
const defaultBlockSize = 1024

// Codec frames a sequence of int32 into the BOS-M stream layout, using
// one block.Codec instance internally for both full blocks and the tail
// block (the tail block is simply a block.Codec call of length r).
type Codec struct {
	blockSize int
	block     *block.Codec
}

// Option configures a Codec.
type Option = options.Option[*Codec]

// WithBlockSize overrides the stream's block size B. B must be in
// [1, 32767], the precondition block.Codec's k_byte field imposes.
func WithBlockSize(b int) Option {
	return options.New(func(c *Codec) error {
		c.blockSize = b

		return nil
	})
}

// NewCodec builds a Codec with defaultBlockSize, then applies opts.
func NewCodec(opts ...Option) (*Codec, error) {
	c := &Codec{blockSize: defaultBlockSize}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	bc, err := block.NewCodec(block.WithBlockSize(c.blockSize))
	if err != nil {
		return nil, err
	}
	c.block = bc

	return c, nil
}

// maxEncodedSize returns the legacy upper-bound output size for n
// values: the frame header plus 4 bytes per value, the conservative
// output-buffer-sizing guidance no block can exceed, plus slack for
// block headers (bounded by the number of blocks).
func (c *Codec) maxEncodedSize(n int) int {
	blocks := 1
	if c.blockSize > 0 {
		blocks = n/c.blockSize + 2
	}

	const perBlockHeaderSlack = 64

	return frameHeaderSize + 4*n + blocks*perBlockHeaderSlack
}

// Encode frames raw as a complete BOS-M stream: total_length, block_size,
// full blocks, then the tail per the r<=3 literal/sub-block policy.
func (c *Codec) Encode(raw []int32) ([]byte, error) {
	n := len(raw)

	out := make([]byte, c.maxEncodedSize(n))
	pos := 0

	endian.BigEndian.PutUint32(out[pos:], uint32(n))
	pos += 4
	endian.BigEndian.PutUint32(out[pos:], uint32(c.blockSize))
	pos += 4

	full := n / c.blockSize
	for i := 0; i < full; i++ {
		chunk := raw[i*c.blockSize : (i+1)*c.blockSize]

		written, err := c.block.Encode(chunk, out[pos:])
		if err != nil {
			return nil, fmt.Errorf("stream: encoding block %d: %w", i, err)
		}
		pos += written
	}

	tail := raw[full*c.blockSize:]
	r := len(tail)

	switch {
	case r == 0:
		// no tail.
	case r <= literalTailThreshold:
		for _, v := range tail {
			endian.BigEndian.PutUint32(out[pos:], uint32(v))
			pos += 4
		}
	default:
		written, err := c.block.Encode(tail, out[pos:])
		if err != nil {
			return nil, fmt.Errorf("stream: encoding tail block: %w", err)
		}
		pos += written
	}

	return out[:pos], nil
}

// Decode reconstructs the original []int32 sequence from a BOS-M stream.
func (c *Codec) Decode(data []byte) ([]int32, error) {
	if len(data) < frameHeaderSize {
		return nil, fmt.Errorf("%w: frame shorter than header", errs.ErrTruncatedInput)
	}

	n := int(endian.BigEndian.Uint32(data[0:4]))
	blockSize := int(endian.BigEndian.Uint32(data[4:8]))
	pos := frameHeaderSize

	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: non-positive block size %d", errs.ErrCorruptHeader, blockSize)
	}

	bc := c.block
	if blockSize != c.blockSize {
		var err error
		bc, err = block.NewCodec(block.WithBlockSize(blockSize))
		if err != nil {
			return nil, fmt.Errorf("%w: frame block size %d: %v", errs.ErrCorruptHeader, blockSize, err)
		}
	}

	out := make([]int32, n)

	full := n / blockSize
	for i := 0; i < full; i++ {
		dst := out[i*blockSize : (i+1)*blockSize]

		consumed, err := bc.Decode(data[pos:], blockSize, dst)
		if err != nil {
			return nil, fmt.Errorf("stream: decoding block %d: %w", i, err)
		}
		pos += consumed
	}

	r := n - full*blockSize
	switch {
	case r == 0:
		// no tail.
	case r <= literalTailThreshold:
		for i := 0; i < r; i++ {
			if pos+4 > len(data) {
				return nil, fmt.Errorf("%w: truncated tail literal", errs.ErrTruncatedInput)
			}
			out[full*blockSize+i] = int32(endian.BigEndian.Uint32(data[pos:]))
			pos += 4
		}
	default:
		dst := out[full*blockSize:]

		_, err := bc.Decode(data[pos:], r, dst)
		if err != nil {
			return nil, fmt.Errorf("stream: decoding tail block: %w", err)
		}
	}

	return out, nil
}
