package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipCodec wraps github.com/klauspost/compress/gzip, a drop-in
// replacement for the standard library's compress/gzip from the same
// module already providing S2 and Zstd, keeping the whole façade on one
// higher-throughput implementation family instead of mixing in the
// stdlib gzip.
type GzipCodec struct{}

var _ Codec = GzipCodec{}

// NewGzipCodec returns a GzipCodec.
func NewGzipCodec() GzipCodec { return GzipCodec{} }

func (c GzipCodec) Tag() byte { return TagGzip }

// Compress compresses data with gzip at the default compression level.
func (c GzipCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses gzip-compressed data.
func (c GzipCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}

	return out, nil
}
