package ops

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// MaxDimOp represents a max-reduction along one dimension.
//
// Backward pass: the gradient is routed to the positions that held the
// maximum during the forward pass (first maximum wins on ties); all
// other positions receive zero. This is what lets the 2-D tensor lookup
// recover exact stored values under one-hot masks while staying
// differentiable.
type MaxDimOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	dim    int
}

// NewMaxDimOp creates a new MaxDimOp.
func NewMaxDimOp(input, output *tensor.RawTensor, dim int) *MaxDimOp {
	return &MaxDimOp{input: input, output: output, dim: dim}
}

// Backward routes the gradient to argmax positions.
func (op *MaxDimOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	grad := zerosLike(op.input.Shape(), outputGrad)

	shape := op.input.Shape()
	dim := op.dim
	if dim < 0 {
		dim = len(shape) + dim
	}
	outer, size, inner := 1, shape[dim], 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	for d := dim + 1; d < len(shape); d++ {
		inner *= shape[d]
	}

	switch op.input.DType() {
	case tensor.Float32:
		maxDimBackward(grad.AsFloat32(), outputGrad.AsFloat32(), op.input.AsFloat32(), outer, size, inner)
	case tensor.Float64:
		maxDimBackward(grad.AsFloat64(), outputGrad.AsFloat64(), op.input.AsFloat64(), outer, size, inner)
	default:
		panic(fmt.Sprintf("maxdim backward: unsupported dtype %s", op.input.DType()))
	}

	return []*tensor.RawTensor{grad}
}

func maxDimBackward[T tensor.DType](grad, g, in []T, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			best, bestK := in[o*size*inner+i], 0
			for k := 1; k < size; k++ {
				v := in[(o*size+k)*inner+i]
				if v > best {
					best, bestK = v, k
				}
			}
			grad[(o*size+bestK)*inner+i] = g[o*inner+i]
		}
	}
}

// Inputs returns the input tensor.
func (op *MaxDimOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the reduced tensor.
func (op *MaxDimOp) Output() *tensor.RawTensor {
	return op.output
}
