package softindex

import (
	"fmt"
	"math"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// NaiveLookup rounds a continuous index to the nearest integer and
// indexes directly. The result is exact, and the gradient with respect
// to the array is the standard one-hot scatter; the gradient with
// respect to the index does not exist (rounding is not differentiable)
// and callers must not rely on it.
func NaiveLookup[T tensor.DType, B tensor.Backend](arr *tensor.Tensor[T, B], index float64) *tensor.Tensor[T, B] {
	return arr.TakeRow(int(math.Round(index)))
}

// LinearLookup blends the two axis-adjacent rows around a continuous
// index: t*arr[i1] + (1-t)*arr[i2], with (t, i1, i2) computed exactly as
// in Bandwidthify. Differentiable in both the array and the index.
//
// Only the two adjacent rows ever contribute; a linear lookup cannot
// jump to a distant index. Use SuperpositionLookup with a Bandwidthify
// weight vector to read arbitrary positions softly.
func LinearLookup[T tensor.DType, B tensor.Backend](arr, pos *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	if pos.NumElements() != 1 {
		panic(fmt.Sprintf("linearlookup: position must be a single element, got shape %v", pos.Shape()))
	}

	bandwidth := arr.Shape()[0]
	p := float64(pos.Data()[0])
	lo, hi := math.Floor(p), math.Ceil(p)
	i1 := clipIndex(int(lo), bandwidth)
	i2 := clipIndex(int(hi), bandwidth)

	var t *tensor.Tensor[T, B]
	if hi == lo {
		t = pos.MulScalar(0)
	} else {
		t = pos.AddScalar(-lo).MulScalar(1 / (hi - lo))
	}
	oneMinusT := t.MulScalar(-1).AddScalar(1)

	return t.Mul(arr.TakeRow(i1)).Add(oneMinusT.Mul(arr.TakeRow(i2)))
}

// SuperpositionLookup reads an array under a full weight vector: the
// weighted sum Σ_i weights[i] * arr[i, ...], the dot product between an
// index distribution and the memory contents. This is the attention
// read pattern and the stack's read primitive.
//
// With a weight vector produced by Bandwidthify this composes into a
// bandwidth-aware soft lookup that can read any index in range.
func SuperpositionLookup[T tensor.DType, B tensor.Backend](arr, weights *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	b := arr.Backend()
	return tensor.New[T, B](b.Superpose(arr.Raw(), weights.Raw()), b)
}

// ResidualLookup returns the exact row at the rounded index together
// with the fractional residue index - round(index). The hard result is
// differentiable in the array only; the residue is differentiable in
// the index only. Downstream consumers can exploit the fractional
// offset explicitly instead of relying on an interpolated value.
func ResidualLookup[T tensor.DType, B tensor.Backend](arr, pos *tensor.Tensor[T, B]) (hard, residue *tensor.Tensor[T, B]) {
	if pos.NumElements() != 1 {
		panic(fmt.Sprintf("residuallookup: position must be a single element, got shape %v", pos.Shape()))
	}

	r := math.Round(float64(pos.Data()[0]))
	hard = arr.TakeRow(int(r))
	residue = pos.AddScalar(-r)
	return hard, residue
}

// Lookup2D extracts the slice addressed by two 1-D one-hot-like index
// vectors over the first two axes of arr. The outer product of the
// index vectors forms a mask, which is rank-aligned with Broadcastable,
// multiplied elementwise, and reduced by maximum over both indexed axes.
//
// The reduction is max, not sum, so that exact one-hot indices recover
// the true stored value; this deliberately differs from the 1-D
// superposition-sum convention, and the two diverge for blended masks.
func Lookup2D[T tensor.DType, B tensor.Backend](arr, xIndex, yIndex *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	mask := xIndex.Outer(yIndex)
	high, maskAligned, err := Broadcastable(arr, mask)
	if err != nil {
		return nil, fmt.Errorf("lookup2d: %w", err)
	}

	masked := high.Mul(maskAligned)
	return masked.MaxDim(0, false).MaxDim(0, false), nil
}
