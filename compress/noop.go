package compress

// NoneCodec is a passthrough codec: no compression, no copying. Useful as
// the Registry baseline for measuring BOS-M's own ratio without a
// second-stage compressor muddying the comparison.
type NoneCodec struct{}

var _ Codec = NoneCodec{}

// NewNoneCodec returns a NoneCodec.
func NewNoneCodec() NoneCodec { return NoneCodec{} }

func (c NoneCodec) Tag() byte { return TagNone }

// Compress returns data unchanged. The returned slice aliases the input;
// callers must not mutate it afterward.
func (c NoneCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged.
func (c NoneCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
