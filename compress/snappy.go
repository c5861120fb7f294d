package compress

import "github.com/golang/snappy"

// SnappyCodec wraps github.com/golang/snappy, the literal Snappy wire
// format (distinct from the S2 variant, which trades wire compatibility
// for speed).
type SnappyCodec struct{}

var _ Codec = SnappyCodec{}

// NewSnappyCodec returns a SnappyCodec.
func NewSnappyCodec() SnappyCodec { return SnappyCodec{} }

func (c SnappyCodec) Tag() byte { return TagSnappy }

// Compress compresses data using Snappy's block format.
func (c SnappyCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return snappy.Encode(nil, data), nil
}

// Decompress decompresses Snappy-encoded data.
func (c SnappyCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return snappy.Decode(nil, data)
}
