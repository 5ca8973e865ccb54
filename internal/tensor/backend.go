package tensor

// Backend defines the interface that compute backends must implement.
// Backends handle the actual computation for tensor operations; the
// autodiff decorator wraps a Backend and records every call on a tape.
//
// Implementations:
//   - CPU: pure Go, single-threaded, always allocates fresh results
//   - Autodiff: decorator over any Backend (internal/autodiff)
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Element-wise scalar operations
	AddScalar(x *RawTensor, s float64) *RawTensor
	MulScalar(x *RawTensor, s float64) *RawTensor

	// Clamp limits every element into [lo, hi].
	Clamp(x *RawTensor, lo, hi float64) *RawTensor

	// Shape operations
	Reshape(x *RawTensor, newShape Shape) *RawTensor
	Cat(tensors []*RawTensor, dim int) *RawTensor

	// Indexing operations.
	// TakeRow extracts row i along the first axis.
	// Roll cyclically shifts rows along the first axis; the element at
	// row i moves to row (i+shift) mod n.
	TakeRow(x *RawTensor, row int) *RawTensor
	Roll(x *RawTensor, shift int) *RawTensor

	// Outer computes the outer product of two 1-D tensors.
	Outer(x, y *RawTensor) *RawTensor

	// Reduction operations
	MaxDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	Sum(x *RawTensor) *RawTensor
	Mean(x *RawTensor) *RawTensor

	// Soft-indexing composite operations.
	// Superpose is the weighted-sum read Σ_i weights[i] * arr[i, ...].
	// MaskedAssign is the soft write (1-w[i])*arr[i,...] + w[i]*elem[...].
	Superpose(arr, weights *RawTensor) *RawTensor
	MaskedAssign(arr, weights, elem *RawTensor) *RawTensor

	// ArgmaxLookup gathers, per row, the value column with the maximum
	// weight. Its gradient rule is hand-specified by the autodiff layer.
	ArgmaxLookup(values, weights *RawTensor) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
