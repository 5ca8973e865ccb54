package ops

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// MaskedAssignOp represents the soft write:
// output[i, ...] = (1-weights[i]) * arr[i, ...] + weights[i] * elem[...].
//
// Backward pass:
//   - grad_arr[i, ...] = (1-weights[i]) * outputGrad[i, ...]
//     (non-addressed rows keep their full gradient)
//   - grad_elem[...] = Σ_i weights[i] * outputGrad[i, ...]
//     (the element receives gradient proportional to where it was written)
//   - grad_weights[i] = Σ_... (elem[...] - arr[i, ...]) * outputGrad[i, ...]
//     (the vectored index receives gradient proportional to the
//     assignment weight, which is what makes the write position learnable)
type MaskedAssignOp struct {
	inputs []*tensor.RawTensor // [arr, weights, elem]
	output *tensor.RawTensor
}

// NewMaskedAssignOp creates a new MaskedAssignOp.
func NewMaskedAssignOp(arr, weights, elem, output *tensor.RawTensor) *MaskedAssignOp {
	return &MaskedAssignOp{
		inputs: []*tensor.RawTensor{arr, weights, elem},
		output: output,
	}
}

// Backward computes gradients for the array, the weight vector and the element.
func (op *MaskedAssignOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	arr, weights, elem := op.inputs[0], op.inputs[1], op.inputs[2]
	gradArr := zerosLike(arr.Shape(), outputGrad)
	gradW := zerosLike(weights.Shape(), outputGrad)
	gradElem := zerosLike(elem.Shape(), outputGrad)

	switch outputGrad.DType() {
	case tensor.Float32:
		maskedAssignBackward(gradArr.AsFloat32(), gradW.AsFloat32(), gradElem.AsFloat32(),
			outputGrad.AsFloat32(), arr.AsFloat32(), weights.AsFloat32(), elem.AsFloat32())
	case tensor.Float64:
		maskedAssignBackward(gradArr.AsFloat64(), gradW.AsFloat64(), gradElem.AsFloat64(),
			outputGrad.AsFloat64(), arr.AsFloat64(), weights.AsFloat64(), elem.AsFloat64())
	default:
		panic(fmt.Sprintf("maskedassign backward: unsupported dtype %s", outputGrad.DType()))
	}

	return []*tensor.RawTensor{gradArr, gradW, gradElem}
}

func maskedAssignBackward[T tensor.DType](gradArr, gradW, gradElem, g, arr, w, elem []T) {
	rowElems := len(elem)
	for i, wi := range w {
		gRow := g[i*rowElems : (i+1)*rowElems]
		arrRow := arr[i*rowElems : (i+1)*rowElems]
		gradRow := gradArr[i*rowElems : (i+1)*rowElems]
		for j, gj := range gRow {
			gradRow[j] = (1 - wi) * gj
			gradElem[j] += wi * gj
			gradW[i] += (elem[j] - arrRow[j]) * gj
		}
	}
}

// Inputs returns the input tensors [arr, weights, elem].
func (op *MaskedAssignOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the written array.
func (op *MaskedAssignOp) Output() *tensor.RawTensor {
	return op.output
}
