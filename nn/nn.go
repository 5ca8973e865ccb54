// Copyright 2026 SoftStack ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides trainable parameters and loss functions.
package nn

import (
	"github.com/softstack-ml/softstack/internal/nn"
	"github.com/softstack-ml/softstack/internal/tensor"
)

// Parameter represents a trainable tensor with gradient tracking.
type Parameter[T tensor.DType, B tensor.Backend] = nn.Parameter[T, B]

// NewParameter creates a trainable parameter from an initialized tensor.
func NewParameter[T tensor.DType, B tensor.Backend](name string, t *tensor.Tensor[T, B]) *Parameter[T, B] {
	return nn.NewParameter(name, t)
}

// MSELoss computes mean squared error as a recorded tensor computation,
// so Backward on the loss reaches the prediction graph.
type MSELoss[T tensor.DType, B tensor.Backend] = nn.MSELoss[T, B]

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[T tensor.DType, B tensor.Backend]() *MSELoss[T, B] {
	return nn.NewMSELoss[T, B]()
}
