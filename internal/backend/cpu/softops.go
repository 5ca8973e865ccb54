package cpu

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// Superpose is the weighted-sum read: out[...] = Σ_i weights[i] * arr[i, ...].
// It is the dot product between an index distribution and the memory
// contents, the attention-read pattern the stack uses as its read primitive.
// For a rank-1 arr the result has shape [1].
func (cpu *CPUBackend) Superpose(arr, weights *tensor.RawTensor) *tensor.RawTensor {
	checkWeights("superpose", arr, weights)

	outShape := rowShape(arr.Shape())
	result, err := tensor.NewRaw(outShape, arr.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("superpose: %v", err))
	}

	switch arr.DType() {
	case tensor.Float32:
		superposeKernel(result.AsFloat32(), arr.AsFloat32(), weights.AsFloat32())
	case tensor.Float64:
		superposeKernel(result.AsFloat64(), arr.AsFloat64(), weights.AsFloat64())
	default:
		panic(fmt.Sprintf("superpose: unsupported dtype %s", arr.DType()))
	}
	return result
}

func superposeKernel[T tensor.DType](out, arr, w []T) {
	rowElems := len(out)
	for i, wi := range w {
		if wi == 0 {
			continue
		}
		row := arr[i*rowElems : (i+1)*rowElems]
		for j, v := range row {
			out[j] += wi * v
		}
	}
}

// MaskedAssign is the soft write:
// out[i, ...] = (1-weights[i]) * arr[i, ...] + weights[i] * elem[...].
// With a one-hot weight vector this replaces exactly one row; with an
// arbitrary weight vector the element is blended into multiple rows
// proportionally (a superposed write).
func (cpu *CPUBackend) MaskedAssign(arr, weights, elem *tensor.RawTensor) *tensor.RawTensor {
	checkWeights("maskedassign", arr, weights)

	rowElems := rowShape(arr.Shape()).NumElements()
	if elem.NumElements() != rowElems {
		panic(fmt.Sprintf("maskedassign: element has %d elements, rows have %d",
			elem.NumElements(), rowElems))
	}

	result, err := tensor.NewRaw(arr.Shape(), arr.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("maskedassign: %v", err))
	}

	switch arr.DType() {
	case tensor.Float32:
		maskedAssignKernel(result.AsFloat32(), arr.AsFloat32(), weights.AsFloat32(), elem.AsFloat32())
	case tensor.Float64:
		maskedAssignKernel(result.AsFloat64(), arr.AsFloat64(), weights.AsFloat64(), elem.AsFloat64())
	default:
		panic(fmt.Sprintf("maskedassign: unsupported dtype %s", arr.DType()))
	}
	return result
}

func maskedAssignKernel[T tensor.DType](out, arr, w, elem []T) {
	rowElems := len(elem)
	for i, wi := range w {
		dst := out[i*rowElems : (i+1)*rowElems]
		src := arr[i*rowElems : (i+1)*rowElems]
		for j := range dst {
			dst[j] = (1-wi)*src[j] + wi*elem[j]
		}
	}
}

// ArgmaxLookup gathers, per row, the values column holding the maximum
// weight: out[i] = values[i, argmax_j weights[i, j]].
// The hard argmax makes the forward value non-differentiable in the
// weights; the autodiff layer attaches a hand-specified gradient rule.
func (cpu *CPUBackend) ArgmaxLookup(values, weights *tensor.RawTensor) *tensor.RawTensor {
	if len(values.Shape()) != 2 || !values.Shape().Equal(weights.Shape()) {
		panic(fmt.Sprintf("argmaxlookup: values and weights must be 2-D with equal shape, got %v and %v",
			values.Shape(), weights.Shape()))
	}

	rows := values.Shape()[0]
	result, err := tensor.NewRaw(tensor.Shape{rows}, values.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("argmaxlookup: %v", err))
	}

	picks := ArgmaxDim(weights, 1)
	cols := values.Shape()[1]

	switch values.DType() {
	case tensor.Float32:
		v, out := values.AsFloat32(), result.AsFloat32()
		for i, j := range picks {
			out[i] = v[i*cols+j]
		}
	case tensor.Float64:
		v, out := values.AsFloat64(), result.AsFloat64()
		for i, j := range picks {
			out[i] = v[i*cols+j]
		}
	default:
		panic(fmt.Sprintf("argmaxlookup: unsupported dtype %s", values.DType()))
	}
	return result
}

func checkWeights(name string, arr, weights *tensor.RawTensor) {
	if arr.DType() != weights.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", name, arr.DType(), weights.DType()))
	}
	if len(arr.Shape()) == 0 {
		panic(fmt.Sprintf("%s: array must have at least one dimension", name))
	}
	if len(weights.Shape()) != 1 || weights.Shape()[0] != arr.Shape()[0] {
		panic(fmt.Sprintf("%s: weight vector shape %v does not match bandwidth %d",
			name, weights.Shape(), arr.Shape()[0]))
	}
}
