// Command bosmbench round-trips an integer column through stream.Codec,
// optionally re-compresses the result with a compress.Registry tag, and
// reports the achieved size ratio and wall-clock timing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/xjz17/tsfile/compress"
	"github.com/xjz17/tsfile/internal/stats"
	"github.com/xjz17/tsfile/source"
	"github.com/xjz17/tsfile/stream"
)

var compressTags = map[string]byte{
	"none":   compress.TagNone,
	"lz4":    compress.TagLZ4,
	"s2":     compress.TagS2,
	"snappy": compress.TagSnappy,
	"gzip":   compress.TagGzip,
	"zstd":   compress.TagZstd,
	"lzma2":  compress.TagLZMA2,
}

func main() {
	csvPath := flag.String("csv", "", "path to a CSV file (mutually exclusive with -synthetic)")
	column := flag.String("column", "", "column name to read from -csv")
	synthetic := flag.String("synthetic", "", "synthetic generator name: constant|linear|noisy|spiky")
	n := flag.Int("n", 100000, "synthetic row count")
	blockSize := flag.Int("block-size", 1024, "B, stream block size")
	compressName := flag.String("compress", "none", "compress.Registry tag: none|lz4|s2|snappy|gzip|zstd|lzma2")
	flag.Parse()

	values, err := loadValues(*csvPath, *column, *synthetic, *n)
	if err != nil {
		log.Fatalf("bosmbench: %v", err)
	}

	tag, ok := compressTags[*compressName]
	if !ok {
		log.Fatalf("bosmbench: unknown -compress %q", *compressName)
	}

	if err := run(values, *blockSize, tag); err != nil {
		log.Fatalf("bosmbench: %v", err)
	}
}

func loadValues(csvPath, column, synthetic string, n int) ([]int32, error) {
	if csvPath != "" {
		if synthetic != "" {
			return nil, fmt.Errorf("-csv and -synthetic are mutually exclusive")
		}
		if column == "" {
			return nil, fmt.Errorf("-column is required with -csv")
		}

		src := source.NewCSVColumnSource(csvPath)

		return src.Column(context.Background(), column)
	}

	if synthetic == "" {
		return nil, fmt.Errorf("one of -csv or -synthetic is required")
	}

	return generateSynthetic(synthetic, n)
}

func generateSynthetic(kind string, n int) ([]int32, error) {
	out := make([]int32, n)

	switch kind {
	case "constant":
		for i := range out {
			out[i] = 42
		}
	case "linear":
		for i := range out {
			out[i] = int32(i)
		}
	case "noisy":
		for i := range out {
			out[i] = int32(i) + int32(i%7) - 3
		}
	case "spiky":
		for i := range out {
			out[i] = int32(i % 11)
			if i%97 == 0 {
				out[i] += 100000
			}
		}
	default:
		return nil, fmt.Errorf("unknown -synthetic %q", kind)
	}

	return out, nil
}

func run(values []int32, blockSize int, tag byte) error {
	codec, err := stream.NewCodec(stream.WithBlockSize(blockSize))
	if err != nil {
		return fmt.Errorf("building stream codec: %w", err)
	}

	originalSize := int64(len(values)) * 4

	encodeStart := time.Now()
	encoded, err := codec.Encode(values)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	encodeTime := time.Since(encodeStart)

	decodeStart := time.Now()
	decoded, err := codec.Decode(encoded)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	decodeTime := time.Since(decodeStart)

	if len(decoded) != len(values) {
		return fmt.Errorf("round trip length mismatch: got %d, want %d", len(decoded), len(values))
	}
	for i := range values {
		if decoded[i] != values[i] {
			return fmt.Errorf("round trip value mismatch at index %d: got %d, want %d", i, decoded[i], values[i])
		}
	}

	fmt.Printf("values:          %d\n", len(values))
	fmt.Printf("block size:      %d\n", blockSize)
	fmt.Printf("original size:   %d bytes\n", originalSize)
	fmt.Printf("bosm size:       %d bytes (%.4f bits/value)\n", len(encoded), bitsPerValue(len(encoded), len(values)))
	fmt.Printf("bosm ratio:      %.4f\n", float64(len(encoded))/float64(originalSize))
	fmt.Printf("encode time:     %s\n", encodeTime)
	fmt.Printf("decode time:     %s\n", decodeTime)

	stat, err := reportCompression(encoded, tag)
	if err != nil {
		return err
	}
	if stat != nil {
		fmt.Printf("compress tag:    0x%02x\n", stat.Tag)
		fmt.Printf("compressed size: %d bytes\n", stat.CompressedSize)
		fmt.Printf("compress ratio:  %.4f (%.2f%% saved)\n", stat.CompressionRatio(), stat.SpaceSavings())
		fmt.Printf("compress time:   %dns, decompress time: %dns\n", stat.CompressionTimeNs, stat.DecompressionTimeNs)
	}

	reportTrend(values, blockSize)

	return nil
}

func reportCompression(encoded []byte, tag byte) (*compress.CompressionStats, error) {
	if tag == compress.TagNone {
		return nil, nil
	}

	registry := compress.NewRegistry()

	compressStart := time.Now()
	block, err := registry.Compress(tag, encoded)
	if err != nil {
		return nil, fmt.Errorf("compressing: %w", err)
	}
	compressTime := time.Since(compressStart)

	decompressStart := time.Now()
	roundTripped, err := registry.Decompress(block)
	if err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	decompressTime := time.Since(decompressStart)

	if len(roundTripped) != len(encoded) {
		return nil, fmt.Errorf("compress round trip size mismatch: got %d, want %d", len(roundTripped), len(encoded))
	}

	return &compress.CompressionStats{
		Tag:                 tag,
		OriginalSize:        int64(len(encoded)),
		CompressedSize:      int64(len(block)),
		CompressionTimeNs:   compressTime.Nanoseconds(),
		DecompressionTimeNs: decompressTime.Nanoseconds(),
	}, nil
}

// reportTrend re-encodes values at a small sweep of block sizes around
// blockSize and prints the fitted bits-per-value-vs-block-size trend.
// Sweep points that fail to build (e.g. exceeding the B<=32767
// precondition) or that the input is too small for are dropped silently;
// Fit itself rejects fewer than two surviving samples.
func reportTrend(values []int32, blockSize int) {
	if len(values) == 0 {
		return
	}

	sweep := []int{blockSize / 2, blockSize, blockSize * 2, blockSize * 4}

	var samples []stats.Sample
	for _, b := range sweep {
		if b <= 0 || b > len(values) {
			continue
		}

		c, err := stream.NewCodec(stream.WithBlockSize(b))
		if err != nil {
			continue
		}

		encoded, err := c.Encode(values)
		if err != nil {
			continue
		}

		samples = append(samples, stats.Sample{
			BlockSize:    b,
			BitsPerValue: bitsPerValue(len(encoded), len(values)),
		})
	}

	trend, err := stats.Fit(samples)
	if err != nil {
		return
	}

	fmt.Printf("size trend:      %s\n", trend)
}

func bitsPerValue(encodedBytes, valueCount int) float64 {
	if valueCount == 0 {
		return 0
	}

	return float64(encodedBytes) * 8 / float64(valueCount)
}
