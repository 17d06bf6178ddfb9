package rmidx

import "math"

// linearAcceptRadius is the maximum linear-fit residual that short-circuits
// the quadratic attempt. An accepted linear segment therefore has a search
// radius (see [Segment.searchRadius]) of at most 10, which the first probe
// of gallopLeftmostTrue in lookup.go already spans.
const linearAcceptRadius = 8

// quadraticImprovementRatio is the fraction of the linear residual the
// quadratic fit must beat to be worth the extra multiply-add at query time.
const quadraticImprovementRatio = 0.7

// SegmentAnalysis is the result of fitting a segment's local model.
type SegmentAnalysis struct {
	Model        Model
	MaxResidual  uint32
	MeanResidual float64

	// Overflowed reports whether the true residual exceeded MaxResidual's
	// uint32 range and was saturated. The wide-certificate build this
	// package implements treats this as a hard build failure
	// (ErrResidualOverflow) rather than silently degrading query
	// performance the way a narrow (u8) certificate implementation would.
	Overflowed bool
}

// analyseSegment fits the cheapest local model that meets the error budget
// for data[start:end], following the decision policy: degenerate ranges and
// near-equal key ranges get a Constant model; otherwise a linear fit is
// computed over the endpoints, accepted immediately if its max residual is
// small, and a quadratic fit is attempted (and adopted only if its max
// residual is below quadraticImprovementRatio times the linear one)
// otherwise.
//
// analyseSegment never reads outside [start, end) and never mutates its
// inputs: it is pure and safe to call concurrently on disjoint ranges,
// which is exactly what BuildParallel relies on.
func analyseSegment[K Number, R any](data []R, start, end int, keyFunc KeyFunc[R, K], less LessFunc[K]) SegmentAnalysis {
	n := end - start

	if n <= 1 {
		return SegmentAnalysis{Model: NewConstantModel(start), MaxResidual: 0}
	}

	allEqual := true
	k0rec := keyFunc(data[start])
	for i := start + 1; i < end; i++ {
		if !equal(less, keyFunc(data[i]), k0rec) {
			allEqual = false
			break
		}
	}
	if allEqual {
		return SegmentAnalysis{Model: NewConstantModel(start), MaxResidual: 0}
	}

	k0 := float64(keyFunc(data[start]))
	k1 := float64(keyFunc(data[end-1]))
	span := k1 - k0
	if math.Abs(span) < machineEpsilon {
		return SegmentAnalysis{Model: NewConstantModel(start), MaxResidual: 0}
	}

	a := float64(n-1) / span
	b := float64(start) - a*k0

	if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
		r, _ := saturateResidual(n - 1)
		return SegmentAnalysis{Model: NewConstantModel(start), MaxResidual: r}
	}

	linearModel := NewLinearModel(a, b)
	linearMax, linearMean := residualStats(data, start, end, keyFunc, linearModel)

	if linearMax <= linearAcceptRadius {
		r, overflow := saturateResidual(linearMax)
		return SegmentAnalysis{Model: linearModel, MaxResidual: r, MeanResidual: linearMean, Overflowed: overflow}
	}

	quadModel, ok := fitQuadratic(data, start, end, keyFunc)
	if !ok {
		r, overflow := saturateResidual(linearMax)
		return SegmentAnalysis{Model: linearModel, MaxResidual: r, MeanResidual: linearMean, Overflowed: overflow}
	}

	quadMax, quadMean := residualStats(data, start, end, keyFunc, quadModel)
	if float64(quadMax) < quadraticImprovementRatio*float64(linearMax) {
		r, overflow := saturateResidual(quadMax)
		return SegmentAnalysis{Model: quadModel, MaxResidual: r, MeanResidual: quadMean, Overflowed: overflow}
	}

	r, overflow := saturateResidual(linearMax)
	return SegmentAnalysis{Model: linearModel, MaxResidual: r, MeanResidual: linearMean, Overflowed: overflow}
}

// machineEpsilon bounds how close two distinct keys' float64 representations
// may be before the segment is treated as degenerate.
const machineEpsilon = 2.220446049250313e-16

// residualStats returns ceil(|predict(k)-i|) maximized and averaged over
// [start, end).
func residualStats[K Number, R any](data []R, start, end int, keyFunc KeyFunc[R, K], m Model) (maxResidual int, meanResidual float64) {
	var sum float64
	for i := start; i < end; i++ {
		pred := m.predictF(float64(keyFunc(data[i])))
		diff := math.Abs(pred - float64(i))
		r := int(math.Ceil(diff))
		if r > maxResidual {
			maxResidual = r
		}
		sum += diff
	}
	meanResidual = sum / float64(end-start)
	return maxResidual, meanResidual
}

// saturateResidual clamps a residual count to the width of the certificate
// field ([Segment.MaxResidual] is uint32) and reports whether clamping was
// necessary.
func saturateResidual(r int) (residual uint32, overflowed bool) {
	if r < 0 {
		return 0, false
	}
	if uint64(r) > math.MaxUint32 {
		return math.MaxUint32, true
	}
	return uint32(r), false
}

// fitQuadratic solves the ordinary-least-squares normal equations for
// y = a*x^2 + b*x + c over data[start:end], using key as x and index as y.
// Returns ok=false if the 3x3 system is singular (determinant below 1e-10).
func fitQuadratic[K Number, R any](data []R, start, end int, keyFunc KeyFunc[R, K]) (Model, bool) {
	var sx, sx2, sx3, sx4, sy, sxy, sx2y float64
	n := float64(end - start)

	for i := start; i < end; i++ {
		x := float64(keyFunc(data[i]))
		y := float64(i)
		x2 := x * x
		sx += x
		sx2 += x2
		sx3 += x2 * x
		sx4 += x2 * x2
		sy += y
		sxy += x * y
		sx2y += x2 * y
	}

	// Normal equations for [a b c] given basis [x^2, x, 1]:
	//   [sx4 sx3 sx2] [a]   [sx2y]
	//   [sx3 sx2 sx ] [b] = [sxy ]
	//   [sx2 sx  n  ] [c]   [sy  ]
	m := [3][3]float64{
		{sx4, sx3, sx2},
		{sx3, sx2, sx},
		{sx2, sx, n},
	}
	v := [3]float64{sx2y, sxy, sy}

	det := det3(m)
	if math.Abs(det) < 1e-10 {
		return Model{}, false
	}

	a := det3(replaceCol(m, 0, v)) / det
	b := det3(replaceCol(m, 1, v)) / det
	c := det3(replaceCol(m, 2, v)) / det

	if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) || math.IsNaN(c) || math.IsInf(c, 0) {
		return Model{}, false
	}

	return NewQuadraticModel(a, b, c), true
}

func det3(m [3][3]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

func replaceCol(m [3][3]float64, col int, v [3]float64) [3][3]float64 {
	out := m
	for row := range out {
		out[row][col] = v[row]
	}
	return out
}
