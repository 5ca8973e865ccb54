package cpu

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// TakeRow extracts row i along the first axis.
// For a rank-1 input the result has shape [1].
func (cpu *CPUBackend) TakeRow(x *tensor.RawTensor, row int) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) == 0 {
		panic("takerow: input must have at least one dimension")
	}
	if row < 0 || row >= shape[0] {
		panic(fmt.Sprintf("takerow: row %d out of range [0, %d)", row, shape[0]))
	}

	outShape := rowShape(shape)
	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("takerow: %v", err))
	}

	rowElems := outShape.NumElements()
	elemSize := x.DType().Size()
	off := row * rowElems * elemSize
	copy(result.Data(), x.Data()[off:off+rowElems*elemSize])
	return result
}

// rowShape is the shape of a single row of shape: the trailing element
// shape, or [1] when the input is rank-1.
func rowShape(shape tensor.Shape) tensor.Shape {
	if len(shape) <= 1 {
		return tensor.Shape{1}
	}
	return shape[1:].Clone()
}

// Roll cyclically shifts rows along the first axis.
// The element at row i moves to row (i+shift) mod n; shift may be
// negative. Wraparound is the intended boundary behavior.
func (cpu *CPUBackend) Roll(x *tensor.RawTensor, shift int) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) == 0 {
		panic("roll: input must have at least one dimension")
	}

	result, err := tensor.NewRaw(shape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("roll: %v", err))
	}

	n := shape[0]
	rowBytes := (x.NumElements() / n) * x.DType().Size()
	shift = ((shift % n) + n) % n

	src := x.Data()
	dst := result.Data()
	for i := 0; i < n; i++ {
		j := (i + shift) % n
		copy(dst[j*rowBytes:(j+1)*rowBytes], src[i*rowBytes:(i+1)*rowBytes])
	}
	return result
}

// Outer computes the outer product of two 1-D tensors:
// out[i, j] = x[i] * y[j].
func (cpu *CPUBackend) Outer(x, y *tensor.RawTensor) *tensor.RawTensor {
	if len(x.Shape()) != 1 || len(y.Shape()) != 1 {
		panic(fmt.Sprintf("outer: both inputs must be 1-D, got %v and %v", x.Shape(), y.Shape()))
	}
	if x.DType() != y.DType() {
		panic(fmt.Sprintf("outer: dtype mismatch: %s vs %s", x.DType(), y.DType()))
	}

	m, n := x.Shape()[0], y.Shape()[0]
	result, err := tensor.NewRaw(tensor.Shape{m, n}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("outer: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		outerKernel(result.AsFloat32(), x.AsFloat32(), y.AsFloat32())
	case tensor.Float64:
		outerKernel(result.AsFloat64(), x.AsFloat64(), y.AsFloat64())
	default:
		panic(fmt.Sprintf("outer: unsupported dtype %s", x.DType()))
	}
	return result
}

func outerKernel[T tensor.DType](out, x, y []T) {
	for i, xv := range x {
		row := out[i*len(y) : (i+1)*len(y)]
		for j, yv := range y {
			row[j] = xv * yv
		}
	}
}
