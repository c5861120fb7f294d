// Package stats fits a bits-per-value vs. block-size trend from a handful
// of measured (blockSize, bitsPerValue) samples, for cmd/bosmbench's
// reporting. It never runs inside the codec's encode/decode path.
package stats

import (
	"fmt"
	"math"
)

// Sample is one measured point: a stream.Codec block size and the
// resulting bits-per-value (encoded size in bits / value count) it
// produced on some representative input.
type Sample struct {
	BlockSize    int
	BitsPerValue float64
}

// Trend is a fitted hyperbolic model BitsPerValue = A + B/BlockSize,
// the shape per-block header overhead naturally takes: fixed per-block
// cost B amortizes over more values as the block grows, flattening
// toward the asymptote A.
type Trend struct {
	A, B     float64
	RSquared float64
	RMSE     float64
}

// Estimate returns the fitted bits-per-value for blockSize.
func (t Trend) Estimate(blockSize int) float64 {
	if blockSize <= 0 {
		return math.Inf(1)
	}

	return t.A + t.B/float64(blockSize)
}

// String renders the fitted formula and goodness of fit.
func (t Trend) String() string {
	return fmt.Sprintf("bits_per_value = %.4f + %.4f/block_size (R²=%.4f, RMSE=%.4f)", t.A, t.B, t.RSquared, t.RMSE)
}

// Fit performs ordinary least squares on the transformed variable
// x' = 1/blockSize against y = bitsPerValue, the hyperbolic-model
// linearization: y = A + B*x'. Requires at least two samples with
// distinct block sizes.
func Fit(samples []Sample) (Trend, error) {
	n := len(samples)
	if n < 2 {
		return Trend{}, fmt.Errorf("stats: need at least 2 samples, got %d", n)
	}

	var sumX, sumY, sumXY, sumX2 float64
	for _, s := range samples {
		if s.BlockSize <= 0 {
			return Trend{}, fmt.Errorf("stats: non-positive block size %d", s.BlockSize)
		}

		x := 1.0 / float64(s.BlockSize)
		y := s.BitsPerValue
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	denom := sumX2 - float64(n)*meanX*meanX
	if denom == 0 {
		return Trend{}, fmt.Errorf("stats: samples have identical block sizes, cannot fit a trend")
	}

	b := (sumXY - float64(n)*meanX*meanY) / denom
	a := meanY - b*meanX

	var ssTot, ssRes float64
	for _, s := range samples {
		predicted := a + b/float64(s.BlockSize)
		ssTot += (s.BitsPerValue - meanY) * (s.BitsPerValue - meanY)
		ssRes += (s.BitsPerValue - predicted) * (s.BitsPerValue - predicted)
	}

	r2 := 0.0
	if ssTot != 0 {
		r2 = 1.0 - ssRes/ssTot
	}

	rmse := math.Sqrt(ssRes / float64(n))

	return Trend{A: a, B: b, RSquared: r2, RMSE: rmse}, nil
}
