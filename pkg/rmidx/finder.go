package rmidx

import "math"

// Finder is the top-level learned model mapping a key to a candidate
// segment index: a linear regression over (keyMin[i] -> i), corrected by a
// directional search that expands outward from the prediction until it
// brackets the true segment.
//
// Grounded on pkg/slotcache's binarySearchSlotGE/LT shape (narrow a sorted
// run with a fast probe, then resolve exactly with a half-open binary
// search) — here the "fast probe" is a regression prediction instead of the
// midpoint of the remaining range.
type Finder[K Number] struct {
	slope, intercept   float64
	maxSegmentResidual uint32
}

// MaxSegmentResidual is the certificate bounding how far the linear
// predictor's guess can be from the true segment index (invariant I4).
func (f Finder[K]) MaxSegmentResidual() uint32 { return f.maxSegmentResidual }

// buildFinder fits slope/intercept over (segments[i].KeyMin -> i) and
// records the maximum residual of that fit.
func buildFinder[K Number](segments []Segment[K]) Finder[K] {
	n := len(segments)
	if n <= 1 {
		return Finder[K]{}
	}

	x0 := float64(segments[0].KeyMin)
	x1 := float64(segments[n-1].KeyMin)
	span := x1 - x0

	var slope, intercept float64
	if math.Abs(span) < machineEpsilon {
		slope, intercept = 0, 0
	} else {
		slope = float64(n-1) / span
		intercept = 0 - slope*x0
	}

	var maxResidual int
	for i, s := range segments {
		pred := slope*float64(s.KeyMin) + intercept
		diff := math.Abs(pred - float64(i))
		r := int(math.Ceil(diff))
		if r > maxResidual {
			maxResidual = r
		}
	}

	residual, _ := saturateResidual(maxResidual)
	return Finder[K]{slope: slope, intercept: intercept, maxSegmentResidual: residual}
}

// segment returns the index of the segment a boundary query should search.
//
// For strict=false it is the leftmost segment with KeyMax >= k: invariant
// I2 (segment key ranges monotonically non-decreasing) guarantees every
// segment before it has KeyMax < k, so any position with key >= k — in
// particular the true lower-bound position, and any exact match — must lie
// within this segment, even when a run of duplicate keys spans several
// single-key segments.
//
// For strict=true it is the leftmost segment with KeyMax > k, which is
// exactly what upper-bound needs by the same argument.
//
// The regression prediction seeds the search; a directional expansion
// (gallopLeftmostTrue) corrects it regardless of how far off the guess is,
// so correctness never depends on maxSegmentResidual being exact — only the
// common-case speed does.
func (f Finder[K]) segment(k K, segments []Segment[K], less LessFunc[K], strict bool) int {
	n := len(segments)
	if n <= 1 {
		return 0
	}

	guess := clampToInt(f.slope*float64(k)+f.intercept, 0, n-1)

	var pred func(int) bool
	if strict {
		pred = func(j int) bool { return less(k, segments[j].KeyMax) }
	} else {
		pred = func(j int) bool { return !less(segments[j].KeyMax, k) }
	}

	j := gallopLeftmostTrue(0, n, guess, int(f.maxSegmentResidual)+1, pred)
	if j >= n {
		j = n - 1
	}
	return j
}
