package block

import (
	"fmt"
	"math"

	"github.com/xjz17/tsfile/internal/arena"
	"github.com/xjz17/tsfile/internal/errs"
)

// runThreshold is the longest run that stays inlined in the delta array;
// runs longer than it collapse into a RepeatRun.
const runThreshold = 7

// RepeatRun is the (start, length) pair describing a collapsed run of
// equal deltas within the uncollapsed block.
type RepeatRun = arena.RepeatRun

// DeltaRLE subtracts the block minimum from raw and collapses runs of
// more than 7 equal deltas into a single emitted value plus a RepeatRun
// side-table entry. deltaScratch must have length len(raw); the returned
// deltas slice is deltaScratch sliced down to the collapsed length.
// runScratch is grown via append and may be reallocated if its capacity
// is exceeded.
//
// Unlike the literal description some RLE implementations use of
// flushing the final run without the collapse-length check, this
// implementation applies the same >7 threshold uniformly to every run,
// including the one flushed at end-of-block: round-trip and run-collapse
// correctness admit no exception for the last run, so an asymmetric
// flush would fail for any block ending in a long constant run.
func DeltaRLE(raw []int32, deltaScratch []uint32, runScratch []RepeatRun) (min int32, deltas []uint32, runs []RepeatRun, err error) {
	l := len(raw)
	if l == 0 {
		return 0, nil, nil, fmt.Errorf("%w: empty block", errs.ErrInvalidInput)
	}
	if len(deltaScratch) != l {
		return 0, nil, nil, fmt.Errorf("%w: delta scratch length %d != block length %d", errs.ErrInvalidInput, len(deltaScratch), l)
	}

	minV, maxV := raw[0], raw[0]
	for _, v := range raw[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	diff := int64(maxV) - int64(minV)
	if diff < 0 || diff > math.MaxUint32 {
		return 0, nil, nil, fmt.Errorf("%w: block range %d exceeds uint32", errs.ErrInvalidInput, diff)
	}

	idx := 0
	runsOut := runScratch[:0]

	flush := func(preDelta uint32, run, runStart int) {
		if run > runThreshold {
			runsOut = append(runsOut, RepeatRun{Start: uint32(runStart), Length: uint32(run)})
			deltaScratch[idx] = preDelta
			idx++

			return
		}

		for k := 0; k < run; k++ {
			deltaScratch[idx] = preDelta
			idx++
		}
	}

	preDelta := uint32(int64(raw[0]) - int64(minV))
	run := 1
	runStart := 0

	for j := 1; j < l; j++ {
		d := uint32(int64(raw[j]) - int64(minV))
		if d == preDelta {
			run++
			continue
		}

		flush(preDelta, run, runStart)
		run = 1
		runStart = j
		preDelta = d
	}
	flush(preDelta, run, runStart)

	return minV, deltaScratch[:idx], runsOut, nil
}
