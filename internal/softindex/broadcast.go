// Package softindex implements differentiable indexing primitives over
// dense numeric arrays.
//
// Ordinary array indexing is piecewise-constant in its index, so it has
// a zero or undefined gradient with respect to the index. The operators
// in this package replace hard integer indexing with continuous
// approximations, each with an explicit trade-off between soft
// (interpolated, differentiable) and exact (hard, non-differentiable)
// results:
//
//   - Broadcastable aligns a low-rank index mask with a higher-rank array
//   - Bandwidthify encodes a continuous position as a weight vector
//   - NaiveLookup / LinearLookup / SuperpositionLookup / ResidualLookup /
//     Lookup2D read from an array under the different strategies
//   - Assign / AssignVector / Assign2D write via blend masks
//   - AsymmetricLookup reads via hard argmax with a hand-specified
//     gradient rule
//
// An index is carried either as an exact integer address or as a weight
// vector over the index range; Bandwidthify converts the former into
// the latter when gradient flow into the index is required.
package softindex

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// Broadcastable aligns the ranks of two arrays for elementwise
// combination when one of them is a lower-rank index mask.
//
// The lower-rank array's shape must be a dimension-wise prefix of the
// higher-rank array's shape; trailing singleton axes are appended to it
// so the two broadcast elementwise under standard broadcasting rules.
// Returns (high, low reshaped). Pure function; no side effects.
func Broadcastable[T tensor.DType, B tensor.Backend](x, y *tensor.Tensor[T, B]) (high, low *tensor.Tensor[T, B], err error) {
	high, low = x, y
	if len(y.Shape()) > len(x.Shape()) {
		high, low = y, x
	}

	if !low.Shape().IsPrefixOf(high.Shape()) {
		return nil, nil, fmt.Errorf("broadcastable: shape %v is not a prefix of shape %v",
			low.Shape(), high.Shape())
	}

	padded := low.Shape().Clone()
	for len(padded) < len(high.Shape()) {
		padded = append(padded, 1)
	}

	return high, low.Reshape(padded...), nil
}
