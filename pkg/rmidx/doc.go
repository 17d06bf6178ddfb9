// Package rmidx provides an in-memory learned index over an immutable,
// sorted slice of keys.
//
// rmidx is not a general-purpose map: it never mutates after Build, never
// owns the slice it indexes, and never tolerates unsorted input. In
// exchange it answers Find/LowerBound/UpperBound/EqualRange by predicting a
// position with a piecewise regression model of the key→position CDF and
// correcting the residual with a short directional search, which beats
// classical binary search once the model's error bound is small.
//
// # Basic usage
//
//	keys := []int64{10, 20, 30, 40, 50}
//	ix, err := rmidx.Build(keys, rmidx.Identity[int64], rmidx.NaturalOrder[int64], rmidx.MediumConfig())
//	if err != nil {
//	    // handle ErrUnsortedInput / ErrResidualOverflow / ErrInvalidConfig
//	}
//	pos := ix.Find(30) // 2
//
// # Concurrency
//
// rmidx uses a single-writer, many-reader model:
//   - Build/BuildParallel/PrepareTasks/Finalize construct a new, independent
//     [Index]; there is no in-place rebuild.
//   - Every method on [Index] is read-only and safe for concurrent use by
//     any number of goroutines once Build has returned.
//
// # Error handling
//
// Build-time errors are classified with sentinel values
// ([ErrUnsortedInput], [ErrResidualOverflow], [ErrTaskResultMismatch],
// [ErrInvalidConfig]); callers should use [errors.Is]. Query methods never
// fail: "not found" is reported through sentinel positions (see [Index.Find]).
package rmidx
