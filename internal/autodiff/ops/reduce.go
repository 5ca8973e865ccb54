package ops

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// SumOp represents a full reduction to a single-element sum.
//
// Backward pass: every input element contributed with weight 1, so the
// scalar gradient is broadcast to the input shape.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{input: input, output: output}
}

// Backward broadcasts the scalar gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{fillLike(op.input, outputGrad, 1)}
}

// Inputs returns the input tensor.
func (op *SumOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the sum.
func (op *SumOp) Output() *tensor.RawTensor {
	return op.output
}

// MeanOp represents a full reduction to a single-element mean.
//
// Backward pass: outputGrad / n broadcast to the input shape.
type MeanOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewMeanOp creates a new MeanOp.
func NewMeanOp(input, output *tensor.RawTensor) *MeanOp {
	return &MeanOp{input: input, output: output}
}

// Backward broadcasts outputGrad / n to the input shape.
func (op *MeanOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	n := float64(op.input.NumElements())
	return []*tensor.RawTensor{fillLike(op.input, outputGrad, 1/n)}
}

// Inputs returns the input tensor.
func (op *MeanOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the mean.
func (op *MeanOp) Output() *tensor.RawTensor {
	return op.output
}

// fillLike broadcasts the single-element gradient g, scaled, to the
// shape of ref.
func fillLike(ref, g *tensor.RawTensor, scale float64) *tensor.RawTensor {
	grad := zerosLike(ref.Shape(), g)
	switch g.DType() {
	case tensor.Float32:
		v := g.AsFloat32()[0] * float32(scale)
		data := grad.AsFloat32()
		for i := range data {
			data[i] = v
		}
	case tensor.Float64:
		v := g.AsFloat64()[0] * scale
		data := grad.AsFloat64()
		for i := range data {
			data[i] = v
		}
	default:
		panic(fmt.Sprintf("reduce backward: unsupported dtype %s", g.DType()))
	}
	return grad
}
