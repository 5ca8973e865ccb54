package ops

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// ArgmaxLookupOp is the asymmetric lookup: forward gathers, per row,
// the value column holding the maximum weight, which is hard argmax and
// therefore non-differentiable in the weights.
//
// Its backward pass is hand-specified rather than derived by the chain
// rule:
//
//  1. The value gradient pretends the forward pass was the dot product
//     v·k: grad_v[i, j] = k[i, j] * outputGrad[i].
//  2. The weight gradient first estimates a per-row target,
//     target = output[i] - outputGrad[i], then finds the value column
//     numerically closest (least squared difference) to that target.
//     The gradient is -1 at that column and +1 everywhere else, scaled
//     by |outputGrad[i]|. An optimizer that subtracts gradients is
//     thereby pushed to increase weight at the target column and
//     decrease it everywhere else.
//
// The rule is intentionally asymmetric: the column used in the forward
// pass (argmax of weights) and the column the backward pass steers
// toward (nearest to target) need not coincide. The estimate-then-push
// structure must be preserved exactly; a softmax-style gradient is a
// different operator.
type ArgmaxLookupOp struct {
	inputs []*tensor.RawTensor // [values, weights]
	output *tensor.RawTensor
}

// NewArgmaxLookupOp creates a new ArgmaxLookupOp.
func NewArgmaxLookupOp(values, weights, output *tensor.RawTensor) *ArgmaxLookupOp {
	return &ArgmaxLookupOp{
		inputs: []*tensor.RawTensor{values, weights},
		output: output,
	}
}

// Backward applies the hand-specified gradient rule.
func (op *ArgmaxLookupOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	values, weights := op.inputs[0], op.inputs[1]
	gradV := zerosLike(values.Shape(), outputGrad)
	gradK := zerosLike(weights.Shape(), outputGrad)

	switch outputGrad.DType() {
	case tensor.Float32:
		argmaxLookupBackward(gradV.AsFloat32(), gradK.AsFloat32(),
			outputGrad.AsFloat32(), values.AsFloat32(), weights.AsFloat32(), op.output.AsFloat32())
	case tensor.Float64:
		argmaxLookupBackward(gradV.AsFloat64(), gradK.AsFloat64(),
			outputGrad.AsFloat64(), values.AsFloat64(), weights.AsFloat64(), op.output.AsFloat64())
	default:
		panic(fmt.Sprintf("argmaxlookup backward: unsupported dtype %s", outputGrad.DType()))
	}

	return []*tensor.RawTensor{gradV, gradK}
}

func argmaxLookupBackward[T tensor.DType](gradV, gradK, g, v, k, out []T) {
	cols := len(v) / len(g)
	for i, gi := range g {
		vRow := v[i*cols : (i+1)*cols]
		kRow := k[i*cols : (i+1)*cols]
		gradVRow := gradV[i*cols : (i+1)*cols]
		gradKRow := gradK[i*cols : (i+1)*cols]

		// Value gradient: as if forward were v·k.
		for j := range vRow {
			gradVRow[j] = kRow[j] * gi
		}

		// Estimate the value the upstream wishes we had returned, then
		// find the stored value nearest to it.
		target := out[i] - gi
		nearest := 0
		bestDist := (vRow[0] - target) * (vRow[0] - target)
		for j := 1; j < cols; j++ {
			dist := (vRow[j] - target) * (vRow[j] - target)
			if dist < bestDist {
				bestDist = dist
				nearest = j
			}
		}

		mag := gi
		if mag < 0 {
			mag = -mag
		}
		for j := range gradKRow {
			if j == nearest {
				gradKRow[j] = -mag
			} else {
				gradKRow[j] = mag
			}
		}
	}
}

// Inputs returns the input tensors [values, weights].
func (op *ArgmaxLookupOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the gathered values.
func (op *ArgmaxLookupOp) Output() *tensor.RawTensor {
	return op.output
}
