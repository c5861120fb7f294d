package stream

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, xs []int32, blockSize int) []int32 {
	t.Helper()

	c, err := NewCodec(WithBlockSize(blockSize))
	require.NoError(t, err)

	encoded, err := c.Encode(xs)
	require.NoError(t, err)

	decoded, err := c.Decode(encoded)
	require.NoError(t, err)

	return decoded
}

func TestCodec_RoundTrip_RandomSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, blockSize := range []int{64, 256, 1024, 2048} {
		for _, n := range []int{0, 1, 3, 4, 5, 7, 8, blockSize - 1, blockSize, blockSize + 1, 3*blockSize + 17} {
			xs := make([]int32, n)
			for i := range xs {
				xs[i] = rng.Int31n(2000) - 1000
			}

			decoded := roundTrip(t, xs, blockSize)
			require.Equal(t, xs, decoded)
		}
	}
}

func TestCodec_Determinism(t *testing.T) {
	xs := []int32{1, 2, 3, 4, 5, 100, 100, 100, 100, 100, 100, 100, 100, 100, -5}

	c, err := NewCodec(WithBlockSize(8))
	require.NoError(t, err)

	a, err := c.Encode(xs)
	require.NoError(t, err)
	b, err := c.Encode(xs)
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestCodec_ConstantRun(t *testing.T) {
	xs := make([]int32, 16)
	for i := range xs {
		xs[i] = 7
	}

	decoded := roundTrip(t, xs, 16)
	require.Equal(t, xs, decoded)
}

func TestCodec_AllDistinctSmall(t *testing.T) {
	xs := []int32{0, 1, 2, 3, 4, 5, 6, 7}

	decoded := roundTrip(t, xs, 8)
	require.Equal(t, xs, decoded)
}

func TestCodec_OneSidedOutlier(t *testing.T) {
	xs := []int32{0, 0, 0, 0, 0, 0, 0, 1000}

	decoded := roundTrip(t, xs, 8)
	require.Equal(t, xs, decoded)
}

func TestCodec_TwoSidedSplit(t *testing.T) {
	xs := []int32{0, 50, 50, 50, 50, 50, 50, 100}

	decoded := roundTrip(t, xs, 8)
	require.Equal(t, xs, decoded)
}

func TestCodec_TailBelowLiteralThreshold(t *testing.T) {
	xs := make([]int32, 1026)
	for i := range xs {
		xs[i] = int32(i % 37)
	}

	decoded := roundTrip(t, xs, 1024)
	require.Equal(t, xs, decoded)
}

func TestCodec_TailBlock(t *testing.T) {
	xs := make([]int32, 1500)
	for i := range xs {
		xs[i] = int32(i%53) - 20
	}

	decoded := roundTrip(t, xs, 1024)
	require.Equal(t, xs, decoded)
}

// Open question §9.2: tail-block L' recovery must hold at every boundary
// r value on the sub-block side, from r=4, the smallest tail encoded as
// a sub-block rather than literals.
func TestCodec_TailSizeBoundaries(t *testing.T) {
	const blockSize = 64

	for _, r := range []int{4, 5, 7, 8, blockSize - 1} {
		n := 3*blockSize + r
		xs := make([]int32, n)
		for i := range xs {
			xs[i] = int32(i%11) - 5
		}

		decoded := roundTrip(t, xs, blockSize)
		require.Equal(t, xs, decoded, "tail size r=%d", r)
	}
}

func TestCodec_LengthPreservation(t *testing.T) {
	xs := make([]int32, 777)
	for i := range xs {
		xs[i] = int32(i)
	}

	decoded := roundTrip(t, xs, 128)
	require.Len(t, decoded, len(xs))
}

func TestCodec_EmptyStream(t *testing.T) {
	decoded := roundTrip(t, nil, 64)
	require.Empty(t, decoded)
}

func TestCodec_NegativeAndZeroValues(t *testing.T) {
	xs := []int32{0, -1, -1000000, 1000000, 0, -1, -1, -1, -1, -1, -1, -1, -1, -1}

	decoded := roundTrip(t, xs, 16)
	require.Equal(t, xs, decoded)
}
