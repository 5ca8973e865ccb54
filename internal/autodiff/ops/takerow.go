package ops

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// TakeRowOp represents extraction of a single row along the first axis.
//
// Backward pass: the classic one-hot scatter. The gradient for the
// input is zero everywhere except the extracted row, which receives the
// output gradient. The row index itself is an integer and receives no
// gradient.
type TakeRowOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	row    int
}

// NewTakeRowOp creates a new TakeRowOp.
func NewTakeRowOp(input, output *tensor.RawTensor, row int) *TakeRowOp {
	return &TakeRowOp{input: input, output: output, row: row}
}

// Backward scatters the output gradient into the extracted row.
func (op *TakeRowOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	grad := zerosLike(op.input.Shape(), outputGrad)
	rowElems := outputGrad.NumElements()
	elemSize := outputGrad.DType().Size()
	off := op.row * rowElems * elemSize

	if copied := copy(grad.Data()[off:off+rowElems*elemSize], outputGrad.Data()); copied != rowElems*elemSize {
		panic(fmt.Sprintf("takerow backward: short copy (%d of %d bytes)", copied, rowElems*elemSize))
	}

	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor.
func (op *TakeRowOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the extracted row.
func (op *TakeRowOp) Output() *tensor.RawTensor {
	return op.output
}
