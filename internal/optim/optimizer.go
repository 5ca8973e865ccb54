// Package optim implements optimization algorithms for training.
//
// Optimizers consume the gradient map produced by autodiff.Backward and
// update parameter data in place, outside the gradient tape, so a step
// never leaves stray nodes on the tape.
//
// Example usage:
//
//	sgd := optim.NewSGD(params, optim.SGDConfig{LR: 0.05})
//	for epoch := 0; epoch < epochs; epoch++ {
//	    backend.Tape().StartRecording()
//	    loss := lossFn.Forward(model(input), targets)
//	    grads := autodiff.Backward(loss, backend)
//	    sgd.Step(grads)
//	    sgd.ZeroGrad()
//	    backend.Tape().Clear()
//	}
package optim

import (
	"github.com/softstack-ml/softstack/internal/nn"
	"github.com/softstack-ml/softstack/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies gradient updates to all parameters. The gradient map
	// comes from autodiff.Backward; parameters with no entry are skipped.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// ZeroGrad clears all parameter gradients. Call before each
	// backward pass so gradients don't accumulate across iterations.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// getGradient retrieves the gradient for a parameter, or nil when the
// parameter was not part of the recorded computation.
func getGradient[T tensor.DType, B tensor.Backend](param *nn.Parameter[T, B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor().Raw()]
}
