package compress

// ZstdCodec provides Zstandard compression for stream.Codec output.
//
// Two build-tag-selected implementations exist: zstd_pure.go (default,
// pure-Go github.com/klauspost/compress/zstd) and zstd_cgo.go (opt-in via
// the "nobuild" tag, github.com/valyala/gozstd's cgo binding). The cgo
// path is not built by default so the module stays cgo-free out of the
// box; pass -tags nobuild to switch to it.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec returns a ZstdCodec.
func NewZstdCodec() ZstdCodec { return ZstdCodec{} }

func (c ZstdCodec) Tag() byte { return TagZstd }
