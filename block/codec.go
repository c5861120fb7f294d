// Package block implements the BOS-M per-block codec: delta+run-length
// collapsing (DeltaRLE), the bit-cost-optimal outlier partition
// (MedianSplit), and Codec, which orchestrates both into the on-wire
// block header and value-stream layout described for the legacy
// (non-interleaved) encode path.
package block

import (
	"fmt"

	"github.com/xjz17/tsfile/internal/arena"
	"github.com/xjz17/tsfile/internal/errs"
	"github.com/xjz17/tsfile/internal/options"
	"github.com/xjz17/tsfile/pack"
)

// defaultBlockSize is the Codec's block size when no Option overrides it.
const defaultBlockSize = 1024

// maxBlockSize is the precondition spec'd for k_byte's 15-bit k1 field.
const maxBlockSize = maxK1

// Codec encodes and decodes single blocks using the legacy (three
// separate value-stream) layout. BlockSize sets the bit width run tables
// and outlier index lists are packed at. Encode and Decode do not check
// the value count against it; run lengths or outlier indices that do not
// fit that width in a call carrying more than BlockSize values are
// truncated. stream.Codec reuses one Codec for both full blocks and the
// tail block, which never exceed BlockSize values.
type Codec struct {
	blockSize int
}

// Option configures a Codec.
type Option = options.Option[*Codec]

// WithBlockSize overrides the configured block size B used to size run
// table and outlier index fields. It errors if b is not in [1, 32767],
// the precondition k_byte's 15-bit k1 field imposes.
func WithBlockSize(b int) Option {
	return options.New(func(c *Codec) error {
		if b < 1 || b > maxBlockSize {
			return fmt.Errorf("%w: block size %d outside [1, %d]", errs.ErrInvalidInput, b, maxBlockSize)
		}
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

	return c, nil
}

// Encode writes raw as one BOS-M block into out, returning the number of
// bytes written.
func (c *Codec) Encode(raw []int32, out []byte) (int, error) {
	l := len(raw)
	if l == 0 {
		return 0, fmt.Errorf("%w: empty block", errs.ErrInvalidInput)
	}

	deltaScratch, putDeltas := arena.GetUint32Slice(l)
	defer putDeltas()
	runScratch, putRuns := arena.GetRunSlice(l / 8)
	defer putRuns()

	min, deltas, runs, err := DeltaRLE(raw, deltaScratch, runScratch)
	if err != nil {
		return 0, err
	}

	lp := len(deltas)
	var maxDelta uint32
	for _, d := range deltas {
		if d > maxDelta {
			maxDelta = d
		}
	}

	medianScratch, putMedian := arena.GetUint32Slice(lp)
	defer putMedian()
	part := MedianSplit(deltas, maxDelta, medianScratch)

	codes, putCodes := arena.GetByteSlice(lp)
	defer putCodes()
	leftIdx, putLeftIdx := arena.GetUint32Slice(lp)
	defer putLeftIdx()
	rightIdx, putRightIdx := arena.GetUint32Slice(lp)
	defer putRightIdx()
	normals, putNormals := arena.GetUint32Slice(lp)
	defer putNormals()
	leftVals, putLeftVals := arena.GetUint32Slice(lp)
	defer putLeftVals()
	rightVals, putRightVals := arena.GetUint32Slice(lp)
	defer putRightVals()

	k1, k2, normalCount := 0, 0, 0
	for i, d := range deltas {
		switch {
		case int32(d) <= part.XLMinus:
			codes[i] = classLeft
			leftIdx[k1] = uint32(i)
			leftVals[k1] = d
			k1++
		case int32(d) >= part.XUPlus:
			codes[i] = classRight
			rightIdx[k2] = uint32(i)
			rightVals[k2] = d - uint32(part.XUPlus)
			k2++
		default:
			codes[i] = classNormal
			normals[normalCount] = d
			normalCount++
		}
	}
	leftIdx, leftVals = leftIdx[:k1], leftVals[:k1]
	rightIdx, rightVals = rightIdx[:k2], rightVals[:k2]
	normals = normals[:normalCount]

	pos := 0
	kb, err := encodeKByte(false, k1, k2)
	if err != nil {
		return 0, err
	}
	pos, err = putU32(out, pos, kb)
	if err != nil {
		return 0, err
	}
	pos, err = putI32(out, pos, min)
	if err != nil {
		return 0, err
	}
	pos, err = writeRunTable(out, pos, runs, c.blockSize)
	if err != nil {
		return 0, err
	}

	if k1 == 0 && k2 == 0 {
		bwNormal := bitwidth(maxDelta)
		pos, err = putU8(out, pos, byte(bwNormal))
		if err != nil {
			return 0, err
		}

		pos, err = pack.EncodeOutliers(normals, bwNormal, out, pos)
		if err != nil {
			return 0, err
		}

		return pos, nil
	}

	alpha := (k1+k2)*bitwidth(uint32(lp-1)) <= lp+k1+k2

	bwNormal := bitwidthSigned(int64(part.XUMinus) - int64(part.XLPlus))
	bwLeft := bitwidthSigned(int64(part.XLMinus))
	bwRight := bitwidthSigned(int64(maxDelta) - int64(part.XUPlus))

	pos, err = putI32(out, pos, part.XLPlus)
	if err != nil {
		return 0, err
	}
	pos, err = putI32(out, pos, part.XUPlus)
	if err != nil {
		return 0, err
	}
	pos, err = putU8(out, pos, byte(bwNormal))
	if err != nil {
		return 0, err
	}
	pos, err = putU8(out, pos, byte(bwLeft))
	if err != nil {
		return 0, err
	}
	pos, err = putU8(out, pos, byte(bwRight))
	if err != nil {
		return 0, err
	}

	if alpha {
		pos, err = pack.EncodeOutliers(leftIdx, runTableWidth(c.blockSize), out, pos)
		if err != nil {
			return 0, err
		}
		pos, err = pack.EncodeOutliers(rightIdx, runTableWidth(c.blockSize), out, pos)
		if err != nil {
			return 0, err
		}
	} else {
		pos, err = writeBitmap(codes, k1, k2, out, pos)
		if err != nil {
			return 0, err
		}
	}

	for i, v := range normals {
		normals[i] = v - uint32(part.XLPlus)
	}

	pos, err = pack.EncodeOutliers(normals, bwNormal, out, pos)
	if err != nil {
		return 0, err
	}
	pos, err = pack.EncodeOutliers(leftVals, bwLeft, out, pos)
	if err != nil {
		return 0, err
	}
	pos, err = pack.EncodeOutliers(rightVals, bwRight, out, pos)
	if err != nil {
		return 0, err
	}

	return pos, nil
}

// Decode reads one BOS-M block of length (original, uncollapsed) values
// from data into out, returning the number of bytes of data consumed.
func (c *Codec) Decode(data []byte, length int, out []int32) (int, error) {
	if length <= 0 {
		return 0, fmt.Errorf("%w: non-positive block length %d", errs.ErrInvalidInput, length)
	}
	if len(out) < length {
		return 0, errs.ErrInsufficientOutputBuffer
	}

	pos := 0
	kb, pos, err := getU32(data, pos)
	if err != nil {
		return pos, err
	}
	_, k1, k2 := decodeKByte(kb)

	min, pos, err := getI32(data, pos)
	if err != nil {
		return pos, err
	}

	runScratch, putRuns := arena.GetRunSlice(length / 8)
	defer putRuns()
	runs, pos, err := readRunTable(data, pos, c.blockSize, runScratch)
	if err != nil {
		return pos, err
	}

	collapsed := length
	for _, r := range runs {
		if r.Length == 0 {
			return pos, fmt.Errorf("%w: zero-length run at %d", errs.ErrCorruptHeader, r.Start)
		}
		collapsed -= int(r.Length) - 1
	}
	if collapsed < 0 || k1+k2 > collapsed {
		return pos, fmt.Errorf("%w: k1+k2 %d exceeds collapsed length %d", errs.ErrCorruptHeader, k1+k2, collapsed)
	}
	lp := collapsed

	deltas, putDeltas := arena.GetUint32Slice(lp)
	defer putDeltas()

	if k1 == 0 && k2 == 0 {
		bwNormal, p, err := getU8(data, pos)
		pos = p
		if err != nil {
			return pos, err
		}
		if bwNormal > 32 {
			return pos, fmt.Errorf("%w: bit_width_normal %d exceeds 32", errs.ErrCorruptHeader, bwNormal)
		}

		pos, err = pack.DecodeOutliers(data, pos, lp, int(bwNormal), deltas)
		if err != nil {
			return pos, err
		}

		return c.expand(deltas, runs, min, length, out, pos)
	}

	xlPlus, pos, err := getI32(data, pos)
	if err != nil {
		return pos, err
	}
	xuPlus, pos, err := getI32(data, pos)
	if err != nil {
		return pos, err
	}
	bwNormal, pos, err := getU8(data, pos)
	if err != nil {
		return pos, err
	}
	bwLeft, pos, err := getU8(data, pos)
	if err != nil {
		return pos, err
	}
	bwRight, pos, err := getU8(data, pos)
	if err != nil {
		return pos, err
	}
	if bwNormal > 32 || bwLeft > 32 || bwRight > 32 {
		return pos, fmt.Errorf("%w: bit width exceeds 32", errs.ErrCorruptHeader)
	}

	alpha := (k1+k2)*bitwidth(uint32(lp-1)) <= lp+k1+k2

	codes := make([]byte, lp)
	leftIdx := make([]uint32, k1)
	rightIdx := make([]uint32, k2)

	if alpha {
		pos, err = pack.DecodeOutliers(data, pos, k1, runTableWidth(c.blockSize), leftIdx)
		if err != nil {
			return pos, err
		}
		pos, err = pack.DecodeOutliers(data, pos, k2, runTableWidth(c.blockSize), rightIdx)
		if err != nil {
			return pos, err
		}
		for _, v := range leftIdx {
			if int(v) >= lp {
				return pos, fmt.Errorf("%w: left index %d out of range", errs.ErrCorruptHeader, v)
			}
			codes[v] = classLeft
		}
		for _, v := range rightIdx {
			if int(v) >= lp {
				return pos, fmt.Errorf("%w: right index %d out of range", errs.ErrCorruptHeader, v)
			}
			codes[v] = classRight
		}
	} else {
		var c2 []byte
		c2, pos, err = readBitmap(data, pos, lp, k1, k2)
		if err != nil {
			return pos, err
		}
		codes = c2
	}

	normals := make([]uint32, lp-k1-k2)
	leftVals := make([]uint32, k1)
	rightVals := make([]uint32, k2)

	pos, err = pack.DecodeOutliers(data, pos, len(normals), int(bwNormal), normals)
	if err != nil {
		return pos, err
	}
	pos, err = pack.DecodeOutliers(data, pos, k1, int(bwLeft), leftVals)
	if err != nil {
		return pos, err
	}
	pos, err = pack.DecodeOutliers(data, pos, k2, int(bwRight), rightVals)
	if err != nil {
		return pos, err
	}

	ni, li, ri := 0, 0, 0
	for i, cc := range codes {
		switch cc {
		case classLeft:
			deltas[i] = leftVals[li]
			li++
		case classRight:
			deltas[i] = rightVals[ri] + uint32(xuPlus)
			ri++
		default:
			deltas[i] = normals[ni] + uint32(xlPlus)
			ni++
		}
	}

	return c.expand(deltas, runs, min, length, out, pos)
}

// expand reassembles the collapsed delta sequence into length original
// values by walking the run table and re-emitting each collapsed run
// Length times, then adding back min.
func (c *Codec) expand(deltas []uint32, runs []arena.RepeatRun, min int32, length int, out []int32, pos int) (int, error) {
	ri := 0
	cur := 0
	o := 0

	for _, d := range deltas {
		if ri < len(runs) && int(runs[ri].Start) == cur {
			run := int(runs[ri].Length)
			if o+run > length {
				return pos, fmt.Errorf("%w: run at %d overruns block length %d", errs.ErrCorruptHeader, runs[ri].Start, length)
			}
			for k := 0; k < run; k++ {
				out[o] = int32(d) + min
				o++
			}
			cur += run
			ri++

			continue
		}

		if o >= length {
			return pos, fmt.Errorf("%w: decoded more than %d values", errs.ErrCorruptHeader, length)
		}
		out[o] = int32(d) + min
		o++
		cur++
	}

	if o != length {
		return pos, fmt.Errorf("%w: decoded %d values, want %d", errs.ErrCorruptHeader, o, length)
	}

	return pos, nil
}
