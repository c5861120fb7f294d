package pack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackP8_UnpackP8_RoundTrip(t *testing.T) {
	values := []uint32{1, 2, 3, 4, 5, 6, 7, 8}
	w := 4

	out := make([]byte, 64)
	end, err := PackP8(values, w, out, 0)
	require.NoError(t, err)
	require.Equal(t, len(values)/8*w, end)

	dst := make([]uint32, len(values))
	end2, err := UnpackP8(out, 0, len(values), w, dst)
	require.NoError(t, err)
	require.Equal(t, end, end2)
	require.Equal(t, values, dst)
}

func TestPackP8_RejectsNonMultipleOf8(t *testing.T) {
	out := make([]byte, 16)
	_, err := PackP8([]uint32{1, 2, 3}, 4, out, 0)
	require.Error(t, err)
}

func TestPackP8_ExactByteCount(t *testing.T) {
	values := make([]uint32, 16)
	for i := range values {
		values[i] = uint32(i)
	}
	w := 5

	out := make([]byte, 64)
	end, err := PackP8(values, w, out, 0)
	require.NoError(t, err)
	require.Equal(t, 16/8*w, end)
}

func TestPackTail_UnpackTail_RoundTrip(t *testing.T) {
	values := []uint32{5, 12, 100, 3}
	w := 7

	out := make([]byte, 32)
	end, err := PackTail(values, w, out, 0)
	require.NoError(t, err)
	require.Equal(t, 4, end) // ceil(4*7/32)*4 = ceil(28/32)*4 = 4

	dst := make([]uint32, len(values))
	end2, err := UnpackTail(out, 0, len(values), w, dst)
	require.NoError(t, err)
	require.Equal(t, end, end2)
	require.Equal(t, values, dst)
}

func TestPackTail_ZeroPadsFinalWord(t *testing.T) {
	values := []uint32{0b111}
	w := 3

	out := make([]byte, 8, 8)
	for i := range out {
		out[i] = 0xFF
	}

	end, err := PackTail(values, w, out, 0)
	require.NoError(t, err)
	require.Equal(t, 4, end)
	require.Equal(t, []byte{0b11100000, 0, 0, 0}, out[:4])
}

func TestEncodeOutliers_DecodeOutliers_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 4, 7, 8, 9, 15, 16, 17, 100} {
		values := make([]uint32, n)
		for i := range values {
			values[i] = uint32(i * 3 % 17)
		}
		w := 5

		out := make([]byte, 1024)
		end, err := EncodeOutliers(values, w, out, 0)
		require.NoError(t, err, "n=%d", n)

		dst := make([]uint32, n)
		end2, err := DecodeOutliers(out, 0, n, w, dst)
		require.NoError(t, err, "n=%d", n)
		require.Equal(t, end, end2, "n=%d", n)
		require.Equal(t, values, dst, "n=%d", n)
	}
}

func TestEncodeOutliers_EmptyList(t *testing.T) {
	out := make([]byte, 4)
	end, err := EncodeOutliers(nil, 0, out, 2)
	require.NoError(t, err)
	require.Equal(t, 2, end)
}

func TestPackP8_InsufficientBuffer(t *testing.T) {
	values := make([]uint32, 8)
	out := make([]byte, 2)
	_, err := PackP8(values, 4, out, 0)
	require.Error(t, err)
}

func TestUnpackTail_Truncated(t *testing.T) {
	dst := make([]uint32, 4)
	_, err := UnpackTail([]byte{0x00, 0x00}, 0, 4, 7, dst)
	require.Error(t, err)
}
