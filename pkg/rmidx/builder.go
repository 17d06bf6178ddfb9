package rmidx

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// AnalysisTask is an independent unit of per-segment analysis work emitted
// by [PrepareTasks]. Each task reads a disjoint [start, end) slice of the
// input and is safe to run on any goroutine; results must be collected in
// task order and handed back to [Finalize].
type AnalysisTask[K Number, R any] struct {
	data    []R
	start   int
	end     int
	keyFunc KeyFunc[R, K]
	less    LessFunc[K]
}

// Start and End report the index range this task analyses.
func (t AnalysisTask[K, R]) Start() int { return t.start }
func (t AnalysisTask[K, R]) End() int   { return t.end }

// Run performs the analysis. It is pure and may be called from any
// goroutine, any number of times.
func (t AnalysisTask[K, R]) Run() SegmentAnalysis {
	return analyseSegment(t.data, t.start, t.end, t.keyFunc, t.less)
}

// Build constructs an [Index] sequentially over records, which must already
// be sorted under less. keyFunc extracts the ordered key from each record.
//
// Build returns a wrapped [ErrUnsortedInput] if records is not sorted, or a
// wrapped [ErrInvalidConfig] if cfg is not usable.
func Build[K Number, R any](records []R, keyFunc KeyFunc[R, K], less LessFunc[K], cfg Config) (*Index[K, R], error) {
	tasks, err := PrepareTasks(records, keyFunc, less, cfg)
	if err != nil {
		return nil, err
	}

	results := make([]SegmentAnalysis, len(tasks))
	for i, t := range tasks {
		results[i] = t.Run()
	}

	return Finalize(records, keyFunc, less, cfg, results)
}

// BuildParallel constructs an [Index] exactly like [Build], but dispatches
// the independent per-segment analyses across a worker pool bounded by
// runtime.GOMAXPROCS(0), using an [errgroup.Group]. Build(records, ...) and
// BuildParallel(ctx, records, ...) over the same input always produce
// indexes that answer every query identically; the only difference is
// how the segment analyses are scheduled.
func BuildParallel[K Number, R any](ctx context.Context, records []R, keyFunc KeyFunc[R, K], less LessFunc[K], cfg Config) (*Index[K, R], error) {
	tasks, err := PrepareTasks(records, keyFunc, less, cfg)
	if err != nil {
		return nil, err
	}

	results := make([]SegmentAnalysis, len(tasks))

	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, t := range tasks {
		group.Go(func() error {
			results[i] = t.Run()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return Finalize(records, keyFunc, less, cfg, results)
}

// PrepareTasks validates the config and input, checks sortedness, and
// partitions [0, n) into min(cfg.MaxSegments, n) equal-count (quantile)
// segments, returning one independent [AnalysisTask] per segment.
//
// A sortedness violation is reported here (not deferred to Finalize), since
// it is detected by a single O(n) pass over records before any segment
// boundary is computed.
func PrepareTasks[K Number, R any](records []R, keyFunc KeyFunc[R, K], less LessFunc[K], cfg Config) ([]AnalysisTask[K, R], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := len(records)
	if n == 0 {
		return nil, nil
	}

	if err := checkSorted(records, keyFunc, less); err != nil {
		return nil, err
	}

	m := cfg.MaxSegments
	if m > n {
		m = n
	}

	bounds := quantileBounds(n, m)
	tasks := make([]AnalysisTask[K, R], len(bounds))
	for i, b := range bounds {
		tasks[i] = AnalysisTask[K, R]{data: records, start: b.start, end: b.end, keyFunc: keyFunc, less: less}
	}

	cfg.logger().Debugf("rmidx: prepared %d analysis tasks for %d records", len(tasks), n)

	return tasks, nil
}

// Finalize installs per-segment analysis results (in task order, as
// returned by [PrepareTasks]) into segment descriptors and builds the
// top-level [Finder]. It returns a wrapped [ErrTaskResultMismatch] if
// len(results) does not match the number of tasks PrepareTasks would have
// produced for this input and config, and a wrapped [ErrResidualOverflow]
// if any segment's true residual exceeded the uint32 certificate width.
func Finalize[K Number, R any](records []R, keyFunc KeyFunc[R, K], less LessFunc[K], cfg Config, results []SegmentAnalysis) (*Index[K, R], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := len(records)
	logger := cfg.logger()

	if n == 0 {
		return &Index[K, R]{data: records, keyFunc: keyFunc, less: less, logger: logger}, nil
	}

	// n == 1 falls straight through the general path below: m clamps to 1,
	// there is exactly one quantile bound [0,1), and analyseSegment already
	// selects Constant for any range of length <= 1.

	m := cfg.MaxSegments
	if m > n {
		m = n
	}
	bounds := quantileBounds(n, m)

	if len(results) != len(bounds) {
		return nil, fmt.Errorf("%w: got %d results, want %d", ErrTaskResultMismatch, len(results), len(bounds))
	}

	segments := make([]Segment[K], len(bounds))
	for i, b := range bounds {
		r := results[i]
		if r.Overflowed {
			return nil, fmt.Errorf("%w: segment %d residual exceeds uint32 (try raising MaxSegments)", ErrResidualOverflow, i)
		}
		segments[i] = Segment[K]{
			KeyMin:      keyFunc(records[b.start]),
			KeyMax:      keyFunc(records[b.end-1]),
			IdxStart:    b.start,
			IdxEnd:      b.end,
			Model:       r.Model,
			MaxResidual: r.MaxResidual,
		}
		logger.Debugf("rmidx: segment %d [%d,%d) model=%s max_residual=%d", i, b.start, b.end, r.Model.Kind(), r.MaxResidual)
	}

	finder := buildFinder(segments)

	return &Index[K, R]{
		data: records, keyFunc: keyFunc, less: less,
		segments: segments, finder: finder,
		keyMinGlobal: segments[0].KeyMin,
		keyMaxGlobal: segments[len(segments)-1].KeyMax,
		logger:       logger,
	}, nil
}

// checkSorted requires φ(records[i-1]) ⪯ φ(records[i]) for every adjacent
// pair, returning a wrapped ErrUnsortedInput naming the first violation.
func checkSorted[K Number, R any](records []R, keyFunc KeyFunc[R, K], less LessFunc[K]) error {
	for i := 1; i < len(records); i++ {
		if less(keyFunc(records[i]), keyFunc(records[i-1])) {
			return fmt.Errorf("%w: at position %d", ErrUnsortedInput, i)
		}
	}
	return nil
}

type indexRange struct{ start, end int }

// quantileBounds partitions [0, n) into m equal-count segments:
// start_i = floor(i*n/m), end_i = floor((i+1)*n/m). Integer division means
// segments may differ by at most one record; this is the single shared
// helper both PrepareTasks and Finalize use so their boundaries are always
// bit-for-bit identical, which is what makes sequential and parallel
// builds answer every query identically.
func quantileBounds(n, m int) []indexRange {
	bounds := make([]indexRange, m)
	for i := range m {
		bounds[i] = indexRange{
			start: i * n / m,
			end:   (i + 1) * n / m,
		}
	}
	return bounds
}
