package compress

import (
	"fmt"

	"github.com/xjz17/tsfile/endian"
)

// Compressor compresses an arbitrary byte slice.
type Compressor interface {
	// Compress compresses data and returns the compressed result. The
	// input is not modified. The returned slice is newly allocated,
	// except for NoneCodec, which returns data itself.
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte slice previously produced by the
// matching Compressor.
type Decompressor interface {
	// Decompress decompresses data and returns the original result.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines Compressor and Decompressor with the single-byte tag
// used to dispatch a compressed block back to the codec that produced it.
type Codec interface {
	Compressor
	Decompressor

	// Tag returns the single-byte algorithm identifier Registry.Compress
	// writes ahead of the compressed payload.
	Tag() byte
}

// Algorithm tag bytes, one per supported general-purpose compressor.
// Values are arbitrary but stable once assigned; they are never
// interpreted by the block/stream codec, only by Registry.
const (
	TagNone   byte = 0x00
	TagLZ4    byte = 0x01
	TagS2     byte = 0x02
	TagSnappy byte = 0x03
	TagGzip   byte = 0x04
	TagZstd   byte = 0x05
	TagLZMA2  byte = 0x06
)

// headerSize is the fixed prefix Registry.Compress writes ahead of the
// compressed payload: the tag byte plus the original (uncompressed)
// length as a big-endian uint32, needed because not every wrapped
// library self-describes its decompressed size.
const headerSize = 5

// Registry resolves an algorithm tag byte to a registered Codec and
// frames Compress/Decompress calls with a tag+length header, so a
// decompressor never needs to be told out-of-band which algorithm
// produced a given blob. Generalized from the method-byte dispatch of a
// ClickHouse-style compressed block format to a registerable map instead
// of a fixed two-case switch.
type Registry struct {
	codecs map[byte]Codec
}

// NewRegistry builds a Registry with the builtin codec set: none, lz4,
// s2, snappy, gzip, zstd, lzma2.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[byte]Codec, 8)}
	for _, c := range []Codec{
		NewNoneCodec(),
		NewLZ4Codec(),
		NewS2Codec(),
		NewSnappyCodec(),
		NewGzipCodec(),
		NewZstdCodec(),
		NewLZMA2Codec(),
	} {
		r.Register(c)
	}

	return r
}

// Register adds or replaces the codec for c.Tag().
func (r *Registry) Register(c Codec) {
	r.codecs[c.Tag()] = c
}

// Lookup returns the codec registered for tag, or false if none is.
func (r *Registry) Lookup(tag byte) (Codec, bool) {
	c, ok := r.codecs[tag]

	return c, ok
}

// Compress compresses data with the codec registered for tag and returns
// a self-describing block: [tag(1)][original_length(4 BE)][payload...].
func (r *Registry) Compress(tag byte, data []byte) ([]byte, error) {
	c, ok := r.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("compress: unregistered tag 0x%02x", tag)
	}

	payload, err := c.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("compress: tag 0x%02x: %w", tag, err)
	}

	out := make([]byte, headerSize+len(payload))
	out[0] = tag
	endian.BigEndian.PutUint32(out[1:5], uint32(len(data)))
	copy(out[headerSize:], payload)

	return out, nil
}

// Decompress reads the tag+length header Compress wrote and returns the
// original data.
func (r *Registry) Decompress(block []byte) ([]byte, error) {
	if len(block) < headerSize {
		return nil, fmt.Errorf("compress: block too small: %d bytes", len(block))
	}

	tag := block[0]
	originalLen := endian.BigEndian.Uint32(block[1:5])

	c, ok := r.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("compress: unregistered tag 0x%02x", tag)
	}

	out, err := c.Decompress(block[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("compress: tag 0x%02x: %w", tag, err)
	}
	if uint32(len(out)) != originalLen {
		return nil, fmt.Errorf("compress: tag 0x%02x: decompressed %d bytes, header says %d", tag, len(out), originalLen)
	}

	return out, nil
}

// CompressionStats reports the outcome of one Registry.Compress call, for
// cmd/bosmbench's ratio/timing report.
type CompressionStats struct {
	Tag                 byte
	OriginalSize        int64
	CompressedSize      int64
	CompressionTimeNs   int64
	DecompressionTimeNs int64
}

// CompressionRatio returns CompressedSize/OriginalSize; 0 if OriginalSize
// is 0.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage (0-100, negative
// on expansion).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}
