package ops

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// OuterOp represents the outer product of two 1-D tensors:
// output[i, j] = x[i] * y[j].
//
// Backward pass:
//   - grad_x[i] = Σ_j outputGrad[i, j] * y[j]
//   - grad_y[j] = Σ_i outputGrad[i, j] * x[i]
type OuterOp struct {
	inputs []*tensor.RawTensor // [x, y]
	output *tensor.RawTensor   // x ⊗ y
}

// NewOuterOp creates a new OuterOp.
func NewOuterOp(x, y, output *tensor.RawTensor) *OuterOp {
	return &OuterOp{
		inputs: []*tensor.RawTensor{x, y},
		output: output,
	}
}

// Backward computes gradients for both vectors.
func (op *OuterOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	x, y := op.inputs[0], op.inputs[1]
	gradX := zerosLike(x.Shape(), outputGrad)
	gradY := zerosLike(y.Shape(), outputGrad)

	switch outputGrad.DType() {
	case tensor.Float32:
		outerBackward(gradX.AsFloat32(), gradY.AsFloat32(), outputGrad.AsFloat32(), x.AsFloat32(), y.AsFloat32())
	case tensor.Float64:
		outerBackward(gradX.AsFloat64(), gradY.AsFloat64(), outputGrad.AsFloat64(), x.AsFloat64(), y.AsFloat64())
	default:
		panic(fmt.Sprintf("outer backward: unsupported dtype %s", outputGrad.DType()))
	}

	return []*tensor.RawTensor{gradX, gradY}
}

func outerBackward[T tensor.DType](gradX, gradY, g, x, y []T) {
	for i := range x {
		row := g[i*len(y) : (i+1)*len(y)]
		for j := range y {
			gradX[i] += row[j] * y[j]
			gradY[j] += row[j] * x[i]
		}
	}
}

// Inputs returns the input tensors [x, y].
func (op *OuterOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the outer-product tensor.
func (op *OuterOp) Output() *tensor.RawTensor {
	return op.output
}
