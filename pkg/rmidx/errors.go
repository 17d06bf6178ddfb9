package rmidx

import "errors"

// Sentinel errors returned by build-time operations.
//
// Callers should classify errors with [errors.Is]:
//
//	idx, err := rmidx.Build(keys, rmidx.Identity[int64], rmidx.NaturalOrder[int64], cfg)
//	if errors.Is(err, rmidx.ErrUnsortedInput) {
//	    // the caller's slice was not actually sorted under the supplied order
//	}
//
// None of these can arise during a query: every [Index] method is a total
// function of already-built state.
var (
	// ErrUnsortedInput indicates two adjacent records violate the supplied
	// order. Returned wrapped with the offending position.
	//
	// Recovery: sort the input (or fix the comparator) and rebuild.
	ErrUnsortedInput = errors.New("rmidx: unsorted input")

	// ErrResidualOverflow indicates a segment's certificate could not be
	// represented: a build-time invariant was violated (the bound is
	// uint32, so this can only occur for absurdly malformed input).
	//
	// Recovery: use smaller segments (raise MaxSegments) or preprocess the
	// data to reduce model error.
	ErrResidualOverflow = errors.New("rmidx: residual overflow")

	// ErrTaskResultMismatch indicates Finalize received a results slice
	// whose length does not match the number of tasks PrepareTasks emitted.
	//
	// Recovery: pass back exactly one [SegmentAnalysis] per [AnalysisTask],
	// in order.
	ErrTaskResultMismatch = errors.New("rmidx: task result count mismatch")

	// ErrInvalidConfig indicates the supplied [Config] is not usable (for
	// example MaxSegments outside [1, MaxSegmentsLimit]).
	//
	// Recovery: fix the Config and retry; this is a programming error.
	ErrInvalidConfig = errors.New("rmidx: invalid config")
)
