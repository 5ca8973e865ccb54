package nn

import (
	"github.com/softstack-ml/softstack/internal/tensor"
)

// MSELoss computes mean squared error:
//
//	loss = mean((predictions - targets)²)
//
// The loss is built entirely from backend operations, so when the
// backend records a tape the loss node is on it and Backward propagates
// through the subtraction, the square, and the mean back into the
// prediction graph.
type MSELoss[T tensor.DType, B tensor.Backend] struct{}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[T tensor.DType, B tensor.Backend]() *MSELoss[T, B] {
	return &MSELoss[T, B]{}
}

// Forward computes the scalar MSE loss (shape [1]).
//
// Predictions and targets must have the same shape.
func (m *MSELoss[T, B]) Forward(predictions, targets *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic("MSELoss: predictions and targets must have the same shape")
	}
	diff := predictions.Sub(targets)
	return diff.Mul(diff).Mean()
}

// Parameters returns nil: loss functions carry no trainable state.
func (m *MSELoss[T, B]) Parameters() []*Parameter[T, B] {
	return nil
}
