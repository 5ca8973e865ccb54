// Package nn provides the small set of neural-network building blocks
// the soft-indexing training loops need: trainable parameters and loss
// functions. Losses are composed from recorded tensor operations, so a
// loss is itself differentiable and a single Backward call reaches every
// parameter that fed it.
package nn

import (
	"github.com/softstack-ml/softstack/internal/tensor"
)

// Parameter represents a trainable tensor with gradient tracking.
//
// Parameters are the leaves of a differentiable computation: an
// optimizer reads their gradients after a backward pass and updates
// their data in place.
type Parameter[T tensor.DType, B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[T, B]
	grad   *tensor.Tensor[T, B]
}

// NewParameter creates a trainable parameter from an initialized tensor.
// The gradient starts out nil and is populated after a backward pass.
func NewParameter[T tensor.DType, B tensor.Backend](name string, t *tensor.Tensor[T, B]) *Parameter[T, B] {
	return &Parameter[T, B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[T, B]) Name() string {
	return p.name
}

// Tensor returns the underlying parameter tensor.
func (p *Parameter[T, B]) Tensor() *tensor.Tensor[T, B] {
	return p.tensor
}

// Grad returns the gradient tensor, or nil before the first backward
// pass (and after ZeroGrad).
func (p *Parameter[T, B]) Grad() *tensor.Tensor[T, B] {
	return p.grad
}

// SetGrad stores a gradient for this parameter.
func (p *Parameter[T, B]) SetGrad(grad *tensor.Tensor[T, B]) {
	p.grad = grad
}

// ZeroGrad clears the stored gradient. Call before each training
// iteration so gradients from previous steps don't accumulate.
func (p *Parameter[T, B]) ZeroGrad() {
	p.grad = nil
}
