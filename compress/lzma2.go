package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// LZMA2Codec wraps github.com/ulikunitz/xz/lzma's raw LZMA2 reader/
// writer, the real ecosystem LZMA2 implementation. Present as a
// dependency of a vendored blockpack go.mod elsewhere in the retrieval
// pack, alongside golang/snappy.
type LZMA2Codec struct{}

var _ Codec = LZMA2Codec{}

// NewLZMA2Codec returns an LZMA2Codec.
func NewLZMA2Codec() LZMA2Codec { return LZMA2Codec{} }

func (c LZMA2Codec) Tag() byte { return TagLZMA2 }

// Compress compresses data using LZMA2 at default writer settings.
func (c LZMA2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	w, err := lzma.NewWriter2(&buf)
	if err != nil {
		return nil, fmt.Errorf("lzma2 compress: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lzma2 compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lzma2 compress: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses LZMA2-compressed data.
func (c LZMA2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := lzma.NewReader2(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("lzma2 decompress: %w", err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lzma2 decompress: %w", err)
	}

	return out, nil
}
