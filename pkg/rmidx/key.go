package rmidx

// Number is the set of key types rmidx can fit a numeric model over: any
// integer or floating-point type, convertible to float64 without loss of
// monotonic ordering across the value ranges this package targets.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
		~float32 | ~float64
}

// KeyFunc extracts an ordered key from a record. Identity is the key
// extractor for scalar keys: the record and the key are the same value.
type KeyFunc[R any, K Number] func(r R) K

// LessFunc is the total order ≺ used to compare two keys. NaturalOrder
// supplies the default (ascending) order for any [Number].
type LessFunc[K Number] func(a, b K) bool

// Identity is the [KeyFunc] for scalar key types, where the record is the key.
func Identity[K Number](k K) K { return k }

// NaturalOrder is the default [LessFunc]: ascending numeric order.
func NaturalOrder[K Number](a, b K) bool { return a < b }

// Reverse inverts a LessFunc, producing a descending order from an
// ascending one (or vice versa). Used for indexes built over
// descending-sorted input.
func Reverse[K Number](less LessFunc[K]) LessFunc[K] {
	return func(a, b K) bool { return less(b, a) }
}

// equal reports whether a and b compare equivalent under less: neither
// strictly precedes the other.
func equal[K Number](less LessFunc[K], a, b K) bool {
	return !less(a, b) && !less(b, a)
}
