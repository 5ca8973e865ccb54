package ops

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// SuperposeOp represents the weighted-sum read:
// output[...] = Σ_i weights[i] * arr[i, ...].
//
// Backward pass:
//   - grad_arr[i, ...] = weights[i] * outputGrad[...]
//     (the weight vector broadcast across the element dimensions)
//   - grad_weights[i] = Σ_... arr[i, ...] * outputGrad[...]
//     (the memory contents reduced against the upstream gradient)
type SuperposeOp struct {
	inputs []*tensor.RawTensor // [arr, weights]
	output *tensor.RawTensor
}

// NewSuperposeOp creates a new SuperposeOp.
func NewSuperposeOp(arr, weights, output *tensor.RawTensor) *SuperposeOp {
	return &SuperposeOp{
		inputs: []*tensor.RawTensor{arr, weights},
		output: output,
	}
}

// Backward computes gradients for the array and the weight vector.
func (op *SuperposeOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	arr, weights := op.inputs[0], op.inputs[1]
	gradArr := zerosLike(arr.Shape(), outputGrad)
	gradW := zerosLike(weights.Shape(), outputGrad)

	switch outputGrad.DType() {
	case tensor.Float32:
		superposeBackward(gradArr.AsFloat32(), gradW.AsFloat32(), outputGrad.AsFloat32(), arr.AsFloat32(), weights.AsFloat32())
	case tensor.Float64:
		superposeBackward(gradArr.AsFloat64(), gradW.AsFloat64(), outputGrad.AsFloat64(), arr.AsFloat64(), weights.AsFloat64())
	default:
		panic(fmt.Sprintf("superpose backward: unsupported dtype %s", outputGrad.DType()))
	}

	return []*tensor.RawTensor{gradArr, gradW}
}

func superposeBackward[T tensor.DType](gradArr, gradW, g, arr, w []T) {
	rowElems := len(g)
	for i, wi := range w {
		arrRow := arr[i*rowElems : (i+1)*rowElems]
		gradRow := gradArr[i*rowElems : (i+1)*rowElems]
		for j, gj := range g {
			gradRow[j] = wi * gj
			gradW[i] += arrRow[j] * gj
		}
	}
}

// Inputs returns the input tensors [arr, weights].
func (op *SuperposeOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the read element.
func (op *SuperposeOp) Output() *tensor.RawTensor {
	return op.output
}
