package softindex

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// Assign writes an element into the row at an exact integer position
// via a one-hot blend mask: arr*(1-mask) + element*mask. Only the
// addressed row changes, and a new array is returned.
//
// Gradients flow to the array (for non-addressed rows) and to the
// element (for the addressed row); the integer index itself carries no
// gradient. Use AssignVector when the write position must be learnable.
func Assign[T tensor.DType, B tensor.Backend](arr *tensor.Tensor[T, B], row int, element *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	bandwidth := arr.Shape()[0]
	if row < 0 || row >= bandwidth {
		panic(fmt.Sprintf("assign: row %d out of range [0, %d)", row, bandwidth))
	}
	mask := tensor.OneHot[T, B](row, bandwidth, arr.Backend())
	return AssignVector(arr, mask, element)
}

// AssignVector writes an element under an arbitrary weight vector:
// out[i, ...] = (1-weights[i])*arr[i, ...] + weights[i]*element[...].
//
// With a strict one-hot this replaces a single row; with a blended
// weight vector the element is written into multiple rows
// proportionally (a superposed write). Gradients flow to the array, to
// the element, and to the weight vector itself, proportionally to the
// assignment weight. This is the stack's write primitive.
func AssignVector[T tensor.DType, B tensor.Backend](arr, weights, element *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	b := arr.Backend()
	return tensor.New[T, B](b.MaskedAssign(arr.Raw(), weights.Raw(), element.Raw()), b)
}

// Assign2D writes an element into the slice addressed by two 1-D
// one-hot-like index vectors over the first two axes of arr. The outer
// product of the index vectors forms the blend mask, rank-aligned with
// Broadcastable; the element broadcasts across both indexed axes:
// (1-mask)*arr + mask*element.
func Assign2D[T tensor.DType, B tensor.Backend](arr, xIndex, yIndex, element *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	mask := xIndex.Outer(yIndex)
	high, maskAligned, err := Broadcastable(arr, mask)
	if err != nil {
		return nil, fmt.Errorf("assign2d: %w", err)
	}

	inverse := maskAligned.MulScalar(-1).AddScalar(1)
	return high.Mul(inverse).Add(maskAligned.Mul(element)), nil
}

// AsymmetricLookup gathers, for each row, the value column holding the
// maximum weight: out[i] = values[i, argmax_j weights[i, j]].
//
// The forward value is exact and non-differentiable in the weights by
// construction. The registered backward rule estimates a per-row target
// from the upstream gradient, finds the stored value nearest to it, and
// pushes weight toward that column while pulling it from all others;
// see the autodiff layer for the full contract.
func AsymmetricLookup[T tensor.DType, B tensor.Backend](values, weights *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	b := values.Backend()
	return tensor.New[T, B](b.ArgmaxLookup(values.Raw(), weights.Raw()), b)
}
