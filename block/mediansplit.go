package block

import "math/bits"

// Partition is the three-way split around the delta median that
// MedianSplit selects. Left outliers satisfy v <= XLMinus, right
// outliers satisfy v >= XUPlus, and normals fall in [XLPlus, XUMinus].
type Partition struct {
	XLMinus int32
	XLPlus  int32
	XUPlus  int32
	XUMinus int32
}

// bitwidth returns the number of bits needed to represent x:
// 32-clz(x), with bitwidth(0) defined as 1.
func bitwidth(x uint32) int {
	if x == 0 {
		return 1
	}

	return 32 - bits.LeadingZeros32(x)
}

// bitwidthSigned is bitwidth for a value that may be negative because it
// was clamped against the partition's -1 sentinel; a negative input only
// ever multiplies a zero count in the cost formula, so its exact value
// does not matter as long as it does not panic.
func bitwidthSigned(x int64) int {
	if x < 0 {
		return 0
	}

	return bitwidth(uint32(x))
}

// MedianSplit finds the bit-optimal three-way partition of deltas around
// their median, by histogramming bitwidth(|v-median|) per side and
// scanning candidate half-widths from coarsest to finest. scratch must
// have the same length as deltas; it is used as working space for the
// median quickselect and is left in an unspecified order on return.
func MedianSplit(deltas []uint32, maxDelta uint32, scratch []uint32) Partition {
	l := len(deltas)
	m := median(deltas, scratch)

	w := bitwidth(maxDelta) + 1

	countLeft := make([]int, w+1)
	countRight := make([]int, w+1)

	for _, v := range deltas {
		if v == m {
			continue
		}

		var diff int64
		if v < m {
			diff = int64(m) - int64(v)
		} else {
			diff = int64(v) - int64(m)
		}

		beta := bitwidth(uint32(diff))
		if v < m {
			countLeft[beta]++
		} else {
			countRight[beta]++
		}
	}

	best := Partition{
		XLMinus: -1,
		XLPlus:  0,
		XUPlus:  int32(maxDelta) + 1,
		XUMinus: int32(maxDelta),
	}
	bestCost := int64(l) * int64(bitwidth(maxDelta))

	leftN, rightN := 0, 0
	for beta := w - 1; beta >= 1; beta-- {
		leftN += countLeft[beta]
		rightN += countRight[beta]

		pow := int64(1) << (beta - 1)

		xu := int64(maxDelta) + 1
		if cand := int64(m) + pow; cand < xu {
			xu = cand
		}

		xl := int64(-1)
		if cand := int64(m) - pow; cand > xl {
			xl = cand
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
			best = Partition{
				XLMinus: int32(xl),
				XLPlus:  int32(xl) + 1,
				XUPlus:  int32(xu),
				XUMinus: int32(xu) - 1,
			}
		}
	}

	return best
}

// median returns the element at index len(deltas)/2 of the sorted order
// (the upper median when len(deltas) is even) of deltas, found via Lomuto quickselect on scratch so the
// caller's slice is left untouched.
func median(deltas []uint32, scratch []uint32) uint32 {
	copy(scratch, deltas)

	return quickselect(scratch, len(scratch)/2)
}

// quickselect returns the k-th smallest element (0-indexed) of a,
// partitioning a in place via Lomuto partitioning.
func quickselect(a []uint32, k int) uint32 {
	lo, hi := 0, len(a)-1
	for lo < hi {
		p := lomutoPartition(a, lo, hi)
		switch {
		case k == p:
			return a[p]
		case k < p:
			hi = p - 1
		default:
			lo = p + 1
		}
	}

	return a[lo]
}

func lomutoPartition(a []uint32, lo, hi int) int {
	pivot := a[hi]
	i := lo
	for j := lo; j < hi; j++ {
		if a[j] < pivot {
			a[i], a[j] = a[j], a[i]
			i++
		}
	}
	a[i], a[hi] = a[hi], a[i]

	return i
}
