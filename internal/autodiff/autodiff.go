// Package autodiff implements automatic differentiation using the decorator pattern.
//
// AutodiffBackend wraps any Backend implementation and adds gradient
// tracking capabilities through a GradientTape.
//
// Architecture:
//   - Decorator pattern: AutodiffBackend[B] wraps any Backend implementation
//   - GradientTape: Records operations during forward pass
//   - Operation interface: Each op implements its own backward pass
//   - Reverse-mode AD: Computes gradients using the chain rule, except
//     for ArgmaxLookup, whose backward pass is a hand-specified rule
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	x := tensor.FromSlice([]float64{2.0}, tensor.Shape{1}, backend)
//	y := x.Mul(x) // y = x²
//
//	grads := autodiff.Backward(y, backend)
//	fmt.Println(grads[x.Raw()]) // dy/dx = 2x = 4.0
package autodiff

import (
	"github.com/softstack-ml/softstack/internal/autodiff/ops"
	"github.com/softstack-ml/softstack/internal/tensor"
)

// AutodiffBackend wraps a Backend and adds automatic differentiation.
// It implements the tensor.Backend interface and records operations in
// a GradientTape. Backends are pure (no in-place writes), so recorded
// input tensors keep their forward values until the backward pass.
//
// Type parameter B must satisfy the tensor.Backend interface.
type AutodiffBackend[B tensor.Backend] struct {
	inner B             // Wrapped backend
	tape  *GradientTape // Records operations for backpropagation
}

// New creates a new AutodiffBackend wrapping the given backend.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control.
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend for direct access.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Add(x, y)
	b.tape.Record(ops.NewAddOp(x, y, result))
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *AutodiffBackend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sub(x, y)
	b.tape.Record(ops.NewSubOp(x, y, result))
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *AutodiffBackend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mul(x, y)
	b.tape.Record(ops.NewMulOp(x, y, result))
	return result
}

// Div performs element-wise division and records the operation.
func (b *AutodiffBackend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Div(x, y)
	b.tape.Record(ops.NewDivOp(x, y, result))
	return result
}

// AddScalar adds a scalar and records the operation.
func (b *AutodiffBackend[B]) AddScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	result := b.inner.AddScalar(x, s)
	b.tape.Record(ops.NewAddScalarOp(x, result))
	return result
}

// MulScalar multiplies by a scalar and records the operation.
func (b *AutodiffBackend[B]) MulScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	result := b.inner.MulScalar(x, s)
	b.tape.Record(ops.NewMulScalarOp(x, result, s))
	return result
}

// Clamp limits elements into [lo, hi] and records the operation.
func (b *AutodiffBackend[B]) Clamp(x *tensor.RawTensor, lo, hi float64) *tensor.RawTensor {
	result := b.inner.Clamp(x, lo, hi)
	b.tape.Record(ops.NewClampOp(x, result, lo, hi))
	return result
}

// Reshape reshapes a tensor and records the operation.
// Reshape allocates a new tensor; without recording it, gradients would
// never flow back to the original.
func (b *AutodiffBackend[B]) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result := b.inner.Reshape(x, newShape)
	b.tape.Record(ops.NewReshapeOp(x, result))
	return result
}

// Cat concatenates tensors and records the operation.
func (b *AutodiffBackend[B]) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	result := b.inner.Cat(tensors, dim)
	b.tape.Record(ops.NewCatOp(tensors, result, dim))
	return result
}

// TakeRow extracts a row and records the operation.
// The integer row index receives no gradient.
func (b *AutodiffBackend[B]) TakeRow(x *tensor.RawTensor, row int) *tensor.RawTensor {
	result := b.inner.TakeRow(x, row)
	b.tape.Record(ops.NewTakeRowOp(x, result, row))
	return result
}

// Roll cyclically shifts rows and records the operation.
func (b *AutodiffBackend[B]) Roll(x *tensor.RawTensor, shift int) *tensor.RawTensor {
	result := b.inner.Roll(x, shift)
	b.tape.Record(ops.NewRollOp(x, result, shift))
	return result
}

// Outer computes the outer product and records the operation.
func (b *AutodiffBackend[B]) Outer(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Outer(x, y)
	b.tape.Record(ops.NewOuterOp(x, y, result))
	return result
}

// MaxDim reduces by maximum along dim and records the operation.
func (b *AutodiffBackend[B]) MaxDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	result := b.inner.MaxDim(x, dim, keepDim)
	b.tape.Record(ops.NewMaxDimOp(x, result, dim))
	return result
}

// Sum reduces to a single-element sum and records the operation.
func (b *AutodiffBackend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sum(x)
	b.tape.Record(ops.NewSumOp(x, result))
	return result
}

// Mean reduces to a single-element mean and records the operation.
func (b *AutodiffBackend[B]) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mean(x)
	b.tape.Record(ops.NewMeanOp(x, result))
	return result
}

// Superpose performs the weighted-sum read and records the operation.
func (b *AutodiffBackend[B]) Superpose(arr, weights *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Superpose(arr, weights)
	b.tape.Record(ops.NewSuperposeOp(arr, weights, result))
	return result
}

// MaskedAssign performs the soft write and records the operation.
func (b *AutodiffBackend[B]) MaskedAssign(arr, weights, elem *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.MaskedAssign(arr, weights, elem)
	b.tape.Record(ops.NewMaskedAssignOp(arr, weights, elem, result))
	return result
}

// ArgmaxLookup performs the asymmetric lookup and records the operation
// that carries its hand-specified gradient rule.
func (b *AutodiffBackend[B]) ArgmaxLookup(values, weights *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.ArgmaxLookup(values, weights)
	b.tape.Record(ops.NewArgmaxLookupOp(values, weights, result))
	return result
}
