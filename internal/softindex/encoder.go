package softindex

import (
	"fmt"
	"math"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// Bandwidthify encodes a continuous scalar position as a length-bandwidth
// weight vector that linearly interpolates between the one-hot vectors
// of floor(p) and ceil(p):
//
//	i1 = clip(floor(p), 0, bandwidth-1)
//	i2 = clip(ceil(p), 0, bandwidth-1)
//	t  = (p - floor(p)) / (ceil(p) - floor(p)), 0 when the interval is empty
//	w  = clip(t*onehot(i1) + (1-t)*onehot(i2), 0, 1)
//
// Positions outside [0, bandwidth-1] are clamped, never rejected:
// out-of-range reads and writes saturate at the boundary index. The
// zero-width interval at integral p is a guarded division yielding
// t = 0, not an error.
//
// The position is carried as a single-element tensor so the gradient of
// anything computed from the returned weight vector flows back into it.
func Bandwidthify[T tensor.DType, B tensor.Backend](pos *tensor.Tensor[T, B], bandwidth int) *tensor.Tensor[T, B] {
	if pos.NumElements() != 1 {
		panic(fmt.Sprintf("bandwidthify: position must be a single element, got shape %v", pos.Shape()))
	}

	b := pos.Backend()
	p := float64(pos.Data()[0])
	lo, hi := math.Floor(p), math.Ceil(p)
	i1 := clipIndex(int(lo), bandwidth)
	i2 := clipIndex(int(hi), bandwidth)

	// Interpolation factor as a tensor of the position, so the weight
	// vector stays differentiable in p. The denominator is constant with
	// respect to p in a neighborhood of its current value.
	var t *tensor.Tensor[T, B]
	if hi == lo {
		t = pos.MulScalar(0)
	} else {
		t = pos.AddScalar(-lo).MulScalar(1 / (hi - lo))
	}
	oneMinusT := t.MulScalar(-1).AddScalar(1)

	oh1 := tensor.OneHot[T, B](i1, bandwidth, b)
	oh2 := tensor.OneHot[T, B](i2, bandwidth, b)

	return t.Mul(oh1).Add(oneMinusT.Mul(oh2)).Clamp(0, 1)
}

// BandwidthifyAll applies Bandwidthify independently to each element of
// a vector of positions, producing a row-major matrix of weight vectors
// (one row per input position). Rows do not interact.
func BandwidthifyAll[T tensor.DType, B tensor.Backend](positions *tensor.Tensor[T, B], bandwidth int) *tensor.Tensor[T, B] {
	if len(positions.Shape()) != 1 {
		panic(fmt.Sprintf("bandwidthifyall: positions must be 1-D, got shape %v", positions.Shape()))
	}

	n := positions.Shape()[0]
	rows := make([]*tensor.Tensor[T, B], n)
	for i := 0; i < n; i++ {
		rows[i] = Bandwidthify(positions.TakeRow(i), bandwidth).Reshape(1, bandwidth)
	}
	return tensor.Cat(rows, 0)
}

// clipIndex clamps i into [0, bandwidth-1].
func clipIndex(i, bandwidth int) int {
	if i < 0 {
		return 0
	}
	if i > bandwidth-1 {
		return bandwidth - 1
	}
	return i
}
