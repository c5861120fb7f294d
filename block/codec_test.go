package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTripBlock(t *testing.T, c *Codec, raw []int32) []int32 {
	t.Helper()

	out := make([]byte, 4*len(raw)+64)
	n, err := c.Encode(raw, out)
	require.NoError(t, err)

	decoded := make([]int32, len(raw))
	consumed, err := c.Decode(out[:n], len(raw), decoded)
	require.NoError(t, err)
	require.Equal(t, n, consumed)

	return decoded
}

func newCodec(t *testing.T, blockSize int) *Codec {
	t.Helper()

	c, err := NewCodec(WithBlockSize(blockSize))
	require.NoError(t, err)

	return c
}

func TestCodec_ConstantRun(t *testing.T) {
	c := newCodec(t, 16)

	raw := make([]int32, 16)
	for i := range raw {
		raw[i] = 7
	}

	require.Equal(t, raw, roundTripBlock(t, c, raw))
}

func TestCodec_AllDistinctSmall(t *testing.T) {
	c := newCodec(t, 8)

	raw := []int32{0, 1, 2, 3, 4, 5, 6, 7}
	require.Equal(t, raw, roundTripBlock(t, c, raw))
}

func TestCodec_OneSidedOutlier(t *testing.T) {
	c := newCodec(t, 8)

	raw := []int32{0, 0, 0, 0, 0, 0, 0, 1000}
	require.Equal(t, raw, roundTripBlock(t, c, raw))
}

func TestCodec_TwoSidedSplit(t *testing.T) {
	c := newCodec(t, 8)

	raw := []int32{0, 50, 50, 50, 50, 50, 50, 100}
	require.Equal(t, raw, roundTripBlock(t, c, raw))
}

func TestCodec_SingleValue(t *testing.T) {
	c := newCodec(t, 1)
	require.Equal(t, []int32{-5}, roundTripBlock(t, c, []int32{-5}))
}

func TestCodec_NegativeValues(t *testing.T) {
	c := newCodec(t, 8)

	raw := []int32{-100, -99, -98, -97, -96, -95, -94, -1000000}
	require.Equal(t, raw, roundTripBlock(t, c, raw))
}

func TestCodec_EmptyBlockIsInvalid(t *testing.T) {
	c := newCodec(t, 8)

	_, err := c.Encode(nil, make([]byte, 64))
	require.Error(t, err)
}

func TestCodec_InsufficientOutputBuffer(t *testing.T) {
	c := newCodec(t, 8)

	raw := []int32{1, 2, 3, 4, 5, 6, 7, 8}
	_, err := c.Encode(raw, make([]byte, 1))
	require.Error(t, err)
}

func TestCodec_TruncatedInputOnDecode(t *testing.T) {
	c := newCodec(t, 8)

	raw := []int32{1, 2, 3, 4, 5, 6, 7, 8}
	out := make([]byte, 64)
	n, err := c.Encode(raw, out)
	require.NoError(t, err)

	decoded := make([]int32, len(raw))
	_, err = c.Decode(out[:n-1], len(raw), decoded)
	require.Error(t, err)
}

func TestCodec_BlockSizePrecondition(t *testing.T) {
	_, err := NewCodec(WithBlockSize(0))
	require.Error(t, err)

	_, err = NewCodec(WithBlockSize(32768))
	require.Error(t, err)

	_, err = NewCodec(WithBlockSize(32767))
	require.NoError(t, err)
}

func TestCodec_Determinism(t *testing.T) {
	c := newCodec(t, 8)

	raw := []int32{0, 50, 50, 50, 50, 50, 50, 100}
	a := make([]byte, 64)
	b := make([]byte, 64)

	na, err := c.Encode(raw, a)
	require.NoError(t, err)
	nb, err := c.Encode(raw, b)
	require.NoError(t, err)

	require.Equal(t, a[:na], b[:nb])
}
