package ops

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// ClampOp represents output = clamp(x, lo, hi).
//
// Backward pass: the gradient passes through where the input was inside
// [lo, hi] (inclusive, subgradient convention) and is zero where the
// forward pass saturated.
type ClampOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	lo, hi float64
}

// NewClampOp creates a new ClampOp.
func NewClampOp(x, output *tensor.RawTensor, lo, hi float64) *ClampOp {
	return &ClampOp{input: x, output: output, lo: lo, hi: hi}
}

// Backward masks the gradient at saturated positions.
func (op *ClampOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	grad := zerosLike(op.input.Shape(), outputGrad)

	switch op.input.DType() {
	case tensor.Float32:
		clampBackward(grad.AsFloat32(), outputGrad.AsFloat32(), op.input.AsFloat32(), float32(op.lo), float32(op.hi))
	case tensor.Float64:
		clampBackward(grad.AsFloat64(), outputGrad.AsFloat64(), op.input.AsFloat64(), op.lo, op.hi)
	default:
		panic(fmt.Sprintf("clamp backward: unsupported dtype %s", op.input.DType()))
	}

	return []*tensor.RawTensor{grad}
}

func clampBackward[T tensor.DType](grad, outputGrad, in []T, lo, hi T) {
	for i, v := range in {
		if v >= lo && v <= hi {
			grad[i] = outputGrad[i]
		}
	}
}

// Inputs returns the input tensor.
func (op *ClampOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *ClampOp) Output() *tensor.RawTensor {
	return op.output
}
