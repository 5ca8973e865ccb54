package cpu

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// Reshape returns a copy of x with a new shape.
// The new shape must hold the same number of elements.
func (cpu *CPUBackend) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if newShape.NumElements() != x.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			x.Shape(), x.NumElements(), newShape, newShape.NumElements()))
	}

	result, err := tensor.NewRaw(newShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	copy(result.Data(), x.Data())
	return result
}

// Cat concatenates tensors along a dimension.
// All inputs must share dtype and all dimensions except dim.
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: no tensors given")
	}

	first := tensors[0]
	ndim := len(first.Shape())
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("cat: dim %d out of range for rank %d", dim, ndim))
	}

	outShape := first.Shape().Clone()
	for _, t := range tensors[1:] {
		if t.DType() != first.DType() {
			panic("cat: dtype mismatch")
		}
		if len(t.Shape()) != ndim {
			panic("cat: rank mismatch")
		}
		for d := 0; d < ndim; d++ {
			if d == dim {
				continue
			}
			if t.Shape()[d] != first.Shape()[d] {
				panic(fmt.Sprintf("cat: shape mismatch at dim %d: %v vs %v", d, first.Shape(), t.Shape()))
			}
		}
		outShape[dim] += t.Shape()[dim]
	}

	result, err := tensor.NewRaw(outShape, first.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	// Copy block-wise: outer = product of dims before dim,
	// block = elements contributed per outer slice by each input.
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= outShape[d]
	}
	inner := 1
	for d := dim + 1; d < ndim; d++ {
		inner *= outShape[d]
	}

	elemSize := first.DType().Size()
	outBlock := outShape[dim] * inner
	dst := result.Data()

	offsetRows := 0
	for _, t := range tensors {
		srcBlock := t.Shape()[dim] * inner
		src := t.Data()
		for o := 0; o < outer; o++ {
			dstOff := (o*outBlock + offsetRows*inner) * elemSize
			srcOff := o * srcBlock * elemSize
			copy(dst[dstOff:dstOff+srcBlock*elemSize], src[srcOff:srcOff+srcBlock*elemSize])
		}
		offsetRows += t.Shape()[dim]
	}

	return result
}
