// Package compress is a tag-dispatched façade over general-purpose
// third-party byte-slice compressors, applied as an optional second
// stage on top of a fully-framed stream.Codec output.
//
// # Two-stage compression
//
// The BOS-M codec core (bitio, pack, block, stream) already exploits the
// structure of integer columns: min-subtraction, run-length collapsing,
// and a bit-cost-optimal outlier split. compress is the second,
// orthogonal stage, squeezing general-purpose redundancy out of the
// whole stream.Codec output as one opaque blob; it is never applied to
// pieces of a block, and it never sees block internals.
//
// # Supported algorithms
//
//   - None (TagNone): passthrough, for baseline ratio measurements.
//   - LZ4 (TagLZ4): github.com/pierrec/lz4/v4, fast decompression.
//   - S2 (TagS2): github.com/klauspost/compress/s2, a faster Snappy
//     variant.
//   - Snappy (TagSnappy): github.com/golang/snappy, the literal Snappy
//     wire format.
//   - Gzip (TagGzip): github.com/klauspost/compress/gzip, a drop-in
//     higher-throughput gzip.
//   - Zstd (TagZstd): github.com/klauspost/compress/zstd by default, or
//     github.com/valyala/gozstd's cgo binding under the "nobuild" build
//     tag.
//   - LZMA2 (TagLZMA2): github.com/ulikunitz/xz/lzma.
//
// # Registry
//
// Registry maps a single tag byte to a registered Codec and frames
// Compress output with [tag(1)][original_length(4 BE)][payload...], so
// Decompress never needs the algorithm passed out-of-band:
//
//	r := compress.NewRegistry()
//	block, err := r.Compress(compress.TagZstd, streamBytes)
//	original, err := r.Decompress(block)
package compress
