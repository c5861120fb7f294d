package block

import (
	"fmt"

	"github.com/xjz17/tsfile/bitio"
	"github.com/xjz17/tsfile/internal/errs"
)

// Classification codes a single delta position falls into.
const (
	classNormal byte = iota
	classLeft
	classRight
)

// bitmapByteLen is the number of bytes a bitmap for l positions with k1+k2
// outliers occupies: 1 bit per normal plus 2 bits per outlier, rounded up
// to a whole byte.
func bitmapByteLen(l, k1, k2 int) int {
	return (l + k1 + k2 + 7) / 8
}

// writeBitmap packs codes (one classNormal/classLeft/classRight per
// position, in original order) MSB-first into out starting at pos: a
// normal position is a single 0 bit, a left outlier is "11", a right
// outlier is "10". The final byte is zero-padded on the right.
func writeBitmap(codes []byte, k1, k2 int, out []byte, pos int) (int, error) {
	n := bitmapByteLen(len(codes), k1, k2)
	if pos+n > len(out) {
		return pos, errs.ErrInsufficientOutputBuffer
	}

	dst := out[pos : pos+n]
	clear(dst)

	wr := bitio.NewWriter(dst)
	for _, c := range codes {
		switch c {
		case classNormal:
			if err := wr.WriteBits(0, 1); err != nil {
				return pos, err
			}
		case classLeft:
			if err := wr.WriteBits(0b11, 2); err != nil {
				return pos, err
			}
		case classRight:
			if err := wr.WriteBits(0b10, 2); err != nil {
				return pos, err
			}
		default:
			return pos, fmt.Errorf("%w: unknown classification code %d", errs.ErrInvalidInput, c)
		}
	}
	wr.AlignToByte()

	return pos + n, nil
}

// readBitmap is the inverse of writeBitmap, decoding exactly l codes.
func readBitmap(data []byte, pos int, l, k1, k2 int) ([]byte, int, error) {
	n := bitmapByteLen(l, k1, k2)
	if pos+n > len(data) {
		return nil, pos, errs.ErrTruncatedInput
	}

	rd := bitio.NewReader(data[pos : pos+n])
	codes := make([]byte, l)
	for i := 0; i < l; i++ {
		first, err := rd.ReadBits(1)
		if err != nil {
			return nil, pos, err
		}
		if first == 0 {
			codes[i] = classNormal

			continue
		}

		second, err := rd.ReadBits(1)
		if err != nil {
			return nil, pos, err
		}
		if second == 1 {
			codes[i] = classLeft
		} else {
			codes[i] = classRight
		}
	}

	return codes, pos + n, nil
}
