package ops

import "github.com/softstack-ml/softstack/internal/tensor"

// RollOp represents a cyclic shift of rows along the first axis.
//
// Roll is a permutation, so its backward pass is the inverse
// permutation: roll the gradient by the negated shift.
type RollOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	shift  int
}

// NewRollOp creates a new RollOp.
func NewRollOp(input, output *tensor.RawTensor, shift int) *RollOp {
	return &RollOp{input: input, output: output, shift: shift}
}

// Backward rolls the gradient back by the negated shift.
func (op *RollOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Roll(outputGrad, -op.shift)}
}

// Inputs returns the input tensor.
func (op *RollOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the rolled tensor.
func (op *RollOp) Output() *tensor.RawTensor {
	return op.output
}
