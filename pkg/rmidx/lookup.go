package rmidx

import "sort"

// gallopLeftmostTrue returns the smallest i in [lo, hi) such that pred(i) is
// true, given pred is false for every index below the answer and true for
// every index at or above it (monotonic over [lo, hi)). It returns hi if
// pred is false throughout.
//
// guess seeds the search: if pred(guess) already holds, the search expands
// left with a doubling step (step0, 2*step0, 4*step0, ...) until it finds
// an index where pred is false, then resolves the exact boundary with
// sort.Search over just the bracketed span; symmetrically for the forward
// case. This is a directional exponential search: step0 should be the
// segment's certified search radius (or 1 if none is known), so the
// common case brackets the boundary in a single probe and the doubling
// only kicks in when the certificate undershoots.
func gallopLeftmostTrue(lo, hi, guess, step0 int, pred func(int) bool) int {
	if lo >= hi {
		return hi
	}
	if guess < lo {
		guess = lo
	}
	if guess > hi-1 {
		guess = hi - 1
	}
	if step0 < 1 {
		step0 = 1
	}

	if pred(guess) {
		left := guess
		step := step0
		for {
			probe := left - step
			if probe < lo {
				n := left - lo + 1
				idx := sort.Search(n, func(i int) bool { return pred(lo + i) })
				return lo + idx
			}
			if !pred(probe) {
				n := left - probe
				idx := sort.Search(n, func(i int) bool { return pred(probe + 1 + i) })
				return probe + 1 + idx
			}
			if probe == lo {
				return lo
			}
			left = probe
			step *= 2
		}
	}

	right := guess
	step := step0
	for {
		probe := right + step
		if probe >= hi {
			n := hi - right - 1
			idx := sort.Search(n, func(i int) bool { return pred(right + 1 + i) })
			return right + 1 + idx
		}
		if pred(probe) {
			n := probe - right
			idx := sort.Search(n, func(i int) bool { return pred(right + 1 + i) })
			return right + 1 + idx
		}
		right = probe
		step *= 2
	}
}

// Find returns the index of a record whose key is equivalent to k under
// less, or Size() if no such record exists. When less admits ties (a !<
// b and b !< a for distinct records), any one equivalent position may be
// returned — Find makes no promise about which.
func (ix *Index[K, R]) Find(k K) int {
	n := ix.Size()
	if n == 0 {
		return n
	}
	if ix.less(k, ix.keyMinGlobal) || ix.less(ix.keyMaxGlobal, k) {
		return n
	}

	seg := ix.segments[ix.finder.segment(k, ix.segments, ix.less, false)]
	pred := seg.predict(k)
	pos := gallopLeftmostTrue(seg.IdxStart, seg.IdxEnd, pred, seg.searchRadius(), func(i int) bool {
		return !ix.less(ix.keyFunc(ix.data[i]), k)
	})

	if pos < seg.IdxEnd && equal(ix.less, ix.keyFunc(ix.data[pos]), k) {
		ix.logger.Debugf("rmidx: find(%v) hit at %d (segment starting %d)", k, pos, seg.IdxStart)
		return pos
	}
	ix.logger.Debugf("rmidx: find(%v) miss", k)
	return n
}

// LowerBound returns the smallest index i such that k ⪯ key(data[i]), or
// Size() if no such index exists — the same contract as sort.Search /
// std::lower_bound.
func (ix *Index[K, R]) LowerBound(k K) int {
	n := ix.Size()
	if n == 0 {
		return 0
	}
	if ix.less(k, ix.keyMinGlobal) {
		return 0
	}
	if ix.less(ix.keyMaxGlobal, k) {
		return n
	}

	seg := ix.segments[ix.finder.segment(k, ix.segments, ix.less, false)]
	pred := seg.predict(k)
	return gallopLeftmostTrue(seg.IdxStart, seg.IdxEnd, pred, seg.searchRadius(), func(i int) bool {
		return !ix.less(ix.keyFunc(ix.data[i]), k)
	})
}

// UpperBound returns the smallest index i such that key(data[i]) is
// strictly greater than k, or Size() if no such index exists.
func (ix *Index[K, R]) UpperBound(k K) int {
	n := ix.Size()
	if n == 0 {
		return 0
	}
	if ix.less(k, ix.keyMinGlobal) {
		return 0
	}
	if ix.less(ix.keyMaxGlobal, k) {
		return n
	}

	seg := ix.segments[ix.finder.segment(k, ix.segments, ix.less, true)]
	pred := seg.predict(k)
	return gallopLeftmostTrue(seg.IdxStart, seg.IdxEnd, pred, seg.searchRadius(), func(i int) bool {
		return ix.less(k, ix.keyFunc(ix.data[i]))
	})
}

// EqualRange returns [LowerBound(k), UpperBound(k)), the maximal run of
// records equivalent to k under less. The range is empty (lo == hi) when k
// is absent.
func (ix *Index[K, R]) EqualRange(k K) (lo, hi int) {
	return ix.LowerBound(k), ix.UpperBound(k)
}
