package rmidx

// Index is an immutable, in-memory learned index over a borrowed, sorted
// slice of records.
//
// Index never copies or owns data: it stores the slice header handed to
// Build and the functions needed to extract and compare keys. Go's slice
// header is itself a non-owning view into the backing array, which is the
// literal realization of a borrowed key array whose lifetime is tied to
// the caller's storage — callers must not mutate the slice for as long
// as the Index is in use.
//
// Every method is read-only and safe for concurrent use by any number of
// goroutines.
type Index[K Number, R any] struct {
	data    []R
	keyFunc KeyFunc[R, K]
	less    LessFunc[K]

	segments []Segment[K]
	finder   Finder[K]

	keyMinGlobal K
	keyMaxGlobal K

	logger *DebugLog
}

// Size returns n, the number of records indexed.
func (ix *Index[K, R]) Size() int {
	if ix == nil {
		return 0
	}
	return len(ix.data)
}

// SegmentCount returns the number of segments the builder produced.
func (ix *Index[K, R]) SegmentCount() int {
	if ix == nil {
		return 0
	}
	return len(ix.segments)
}
