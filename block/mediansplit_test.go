package block

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func maxOf(deltas []uint32) uint32 {
	var m uint32
	for _, v := range deltas {
		if v > m {
			m = v
		}
	}

	return m
}

// bruteForceSplit recomputes the same candidate set MedianSplit scans,
// but by rescanning deltas directly for each candidate beta instead of
// accumulating histograms, as an independent check on the optimizer.
func bruteForceSplit(deltas []uint32, maxDelta uint32) Partition {
	scratch := make([]uint32, len(deltas))
	m := median(deltas, scratch)
	l := len(deltas)
	w := bitwidth(maxDelta) + 1

	best := Partition{XLMinus: -1, XLPlus: 0, XUPlus: int32(maxDelta) + 1, XUMinus: int32(maxDelta)}
	bestCost := int64(l) * int64(bitwidth(maxDelta))

	for beta := w - 1; beta >= 1; beta-- {
		pow := int64(1) << (beta - 1)

		xu := int64(maxDelta) + 1
		if cand := int64(m) + pow; cand < xu {
			xu = cand
		}
		xl := int64(-1)
		if cand := int64(m) - pow; cand > xl {
			xl = cand
		}

		leftN, rightN := 0, 0
		for _, v := range deltas {
			vi := int64(v)
			if vi <= xl {
				leftN++
			} else if vi >= xu {
				rightN++
			}
		}

		outN := int64(leftN + rightN)
		normN := int64(l) - outN
		idxCost := outN * int64(bitwidth(uint32(l-1)))
		explicitCost := int64(l) + outN
		cost := idxCost
		if explicitCost < cost {
			cost = explicitCost
		}
		cost += int64(leftN) * int64(bitwidthSigned(xl))
		cost += int64(rightN) * int64(bitwidthSigned(int64(maxDelta)-xu))
		cost += normN * int64(bitwidthSigned(xu-xl-2))

		if cost < bestCost {
			bestCost = cost
			best = Partition{XLMinus: int32(xl), XLPlus: int32(xl) + 1, XUPlus: int32(xu), XUMinus: int32(xu) - 1}
		}
	}

	return best
}

func TestMedianSplit_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(40)
		deltas := make([]uint32, n)
		for i := range deltas {
			deltas[i] = uint32(rng.Intn(64))
		}

		maxDelta := maxOf(deltas)
		scratch := make([]uint32, n)
		got := MedianSplit(deltas, maxDelta, scratch)
		want := bruteForceSplit(deltas, maxDelta)

		require.Equal(t, want, got, "trial %d: deltas=%v", trial, deltas)
	}
}

func TestMedianSplit_DegenerateWhenNoImprovement(t *testing.T) {
	deltas := []uint32{0, 1, 2, 3, 4, 5, 6, 7}
	scratch := make([]uint32, len(deltas))

	p := MedianSplit(deltas, 7, scratch)
	require.Equal(t, int32(-1), p.XLMinus)
	require.Equal(t, int32(8), p.XUPlus)
}

func TestMedianSplit_TwoSidedOutlierOnBothSides(t *testing.T) {
	deltas := []uint32{0, 50, 50, 50, 50, 50, 50, 100}
	scratch := make([]uint32, len(deltas))

	p := MedianSplit(deltas, 100, scratch)

	k1 := 0
	k2 := 0
	for _, v := range deltas {
		switch {
		case int32(v) <= p.XLMinus:
			k1++
		case int32(v) >= p.XUPlus:
			k2++
		}
	}
	require.Equal(t, 1, k1)
	require.Equal(t, 1, k2)
}

func TestBitwidth(t *testing.T) {
	cases := map[uint32]int{0: 1, 1: 1, 2: 2, 3: 2, 4: 3, 255: 8, 256: 9}
	for in, want := range cases {
		require.Equal(t, want, bitwidth(in), "bitwidth(%d)", in)
	}
}
