package block

import (
	"fmt"

	"github.com/xjz17/tsfile/endian"
	"github.com/xjz17/tsfile/internal/arena"
	"github.com/xjz17/tsfile/internal/errs"
	"github.com/xjz17/tsfile/pack"
)

// maxK1 and maxK2 are the largest left and right outlier counts k_byte's
// 15-bit and 16-bit count fields can hold.
const (
	maxK1 = (1 << 15) - 1
	maxK2 = (1 << 16) - 1
)

// header holds the parsed fields of a block header, common to both the
// degenerate (k1=k2=0) and split layouts.
type header struct {
	Alpha bool
	K1    int
	K2    int
	Min   int32
	Runs  []arena.RepeatRun

	XLPlus         int32
	XUPlus         int32
	BitWidthNormal int
	BitWidthLeft   int
	BitWidthRight  int
}

func encodeKByte(alpha bool, k1, k2 int) (uint32, error) {
	if k1 < 0 || k1 > maxK1 {
		return 0, fmt.Errorf("%w: k1 %d exceeds 15-bit field", errs.ErrInvalidInput, k1)
	}
	if k2 < 0 || k2 > maxK2 {
		return 0, fmt.Errorf("%w: k2 %d exceeds 16-bit field", errs.ErrInvalidInput, k2)
	}

	var a uint32
	if alpha {
		a = 1
	}

	return (a << 31) | (uint32(k1) << 16) | uint32(k2), nil
}

func decodeKByte(k uint32) (alpha bool, k1, k2 int) {
	alpha = k>>31 != 0
	k1 = int((k >> 16) & maxK1)
	k2 = int(k & maxK2)

	return
}

func putU32(out []byte, pos int, v uint32) (int, error) {
	if pos+4 > len(out) {
		return pos, errs.ErrInsufficientOutputBuffer
	}
	endian.BigEndian.PutUint32(out[pos:], v)

	return pos + 4, nil
}

func putI32(out []byte, pos int, v int32) (int, error) {
	return putU32(out, pos, uint32(v))
}

func putU8(out []byte, pos int, v byte) (int, error) {
	if pos+1 > len(out) {
		return pos, errs.ErrInsufficientOutputBuffer
	}
	out[pos] = v

	return pos + 1, nil
}

func getU32(data []byte, pos int) (uint32, int, error) {
	if pos+4 > len(data) {
		return 0, pos, errs.ErrTruncatedInput
	}

	return endian.BigEndian.Uint32(data[pos:]), pos + 4, nil
}

func getI32(data []byte, pos int) (int32, int, error) {
	v, next, err := getU32(data, pos)

	return int32(v), next, err
}

func getU8(data []byte, pos int) (byte, int, error) {
	if pos+1 > len(data) {
		return 0, pos, errs.ErrTruncatedInput
	}

	return data[pos], pos + 1, nil
}

// runTableWidth is the field width the run table and outlier index lists
// are packed at: bitwidth(B), where B is the configured block size (not
// the number of values actually present, so tail blocks reuse the same
// width as full blocks). bitwidth(B) rather than bitwidth(B-1) so a run
// covering a whole block, of length B, fits the field.
func runTableWidth(blockSize int) int {
	if blockSize <= 1 {
		return 1
	}

	return bitwidth(uint32(blockSize))
}

// writeRunTable packs runs as a flat (start_0, len_0, start_1, len_1, ...)
// sequence at width runTableWidth(blockSize), preceded by a u8 run_count
// field holding 2*len(runs).
func writeRunTable(out []byte, pos int, runs []arena.RepeatRun, blockSize int) (int, error) {
	s := 2 * len(runs)
	if s > 0xFF {
		return pos, fmt.Errorf("%w: run_count %d exceeds u8 field", errs.ErrInvalidInput, s)
	}

	pos, err := putU8(out, pos, byte(s))
	if err != nil {
		return pos, err
	}
	if s == 0 {
		return pos, nil
	}

	flat := make([]uint32, s)
	for i, r := range runs {
		flat[2*i] = r.Start
		flat[2*i+1] = r.Length
	}

	return pack.EncodeOutliers(flat, runTableWidth(blockSize), out, pos)
}

// readRunTable is the inverse of writeRunTable; runScratch is grown via
// append and sized to hold the decoded runs.
func readRunTable(data []byte, pos int, blockSize int, runScratch []arena.RepeatRun) ([]arena.RepeatRun, int, error) {
	s, pos, err := getU8(data, pos)
	if err != nil {
		return nil, pos, err
	}
	if s%2 != 0 {
		return nil, pos, fmt.Errorf("%w: odd run_count %d", errs.ErrCorruptHeader, s)
	}
	if s == 0 {
		return runScratch[:0], pos, nil
	}

	flat := make([]uint32, s)
	pos, err = pack.DecodeOutliers(data, pos, int(s), runTableWidth(blockSize), flat)
	if err != nil {
		return nil, pos, err
	}

	runs := runScratch[:0]
	for i := 0; i < int(s); i += 2 {
		runs = append(runs, arena.RepeatRun{Start: flat[i], Length: flat[i+1]})
	}

	return runs, pos, nil
}
