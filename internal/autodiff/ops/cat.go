package ops

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// CatOp represents concatenation of tensors along a dimension.
//
// Backward pass: the output gradient is split back into one slice per
// input, each matching that input's extent along the concat dimension.
type CatOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
	dim    int
}

// NewCatOp creates a new CatOp.
func NewCatOp(inputs []*tensor.RawTensor, output *tensor.RawTensor, dim int) *CatOp {
	return &CatOp{inputs: inputs, output: output, dim: dim}
}

// Backward splits the output gradient along the concat dimension.
func (op *CatOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	outShape := outputGrad.Shape()
	outer := 1
	for d := 0; d < op.dim; d++ {
		outer *= outShape[d]
	}
	inner := 1
	for d := op.dim + 1; d < len(outShape); d++ {
		inner *= outShape[d]
	}

	elemSize := outputGrad.DType().Size()
	outBlock := outShape[op.dim] * inner
	src := outputGrad.Data()

	grads := make([]*tensor.RawTensor, len(op.inputs))
	offsetRows := 0
	for i, in := range op.inputs {
		grad, err := tensor.NewRaw(in.Shape(), outputGrad.DType(), outputGrad.Device())
		if err != nil {
			panic(fmt.Sprintf("cat backward: %v", err))
		}
		srcBlock := in.Shape()[op.dim] * inner
		dst := grad.Data()
		for o := 0; o < outer; o++ {
			srcOff := (o*outBlock + offsetRows*inner) * elemSize
			dstOff := o * srcBlock * elemSize
			copy(dst[dstOff:dstOff+srcBlock*elemSize], src[srcOff:srcOff+srcBlock*elemSize])
		}
		offsetRows += in.Shape()[op.dim]
		grads[i] = grad
	}

	return grads
}

// Inputs returns the concatenated input tensors.
func (op *CatOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the concatenated output tensor.
func (op *CatOp) Output() *tensor.RawTensor {
	return op.output
}
