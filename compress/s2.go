package compress

import "github.com/klauspost/compress/s2"

// S2Codec wraps github.com/klauspost/compress/s2, a faster drop-in
// variant of Snappy's block format.
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec returns an S2Codec.
func NewS2Codec() S2Codec { return S2Codec{} }

func (c S2Codec) Tag() byte { return TagS2 }

// Compress compresses data using S2's block encoder.
func (c S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses S2-encoded data.
func (c S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
