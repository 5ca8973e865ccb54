// Package stack implements a differentiable stack on top of the
// soft-indexing operators.
//
// A stack state is a (buffer, position) pair: the buffer holds one
// element per slot, and the position is a weight vector over slots that
// is exactly one-hot in the noiseless case, encoding "top of stack + 1".
// Push and pop are built from the soft write and the superposition read
// plus a cyclic shift of the position, so gradients flow through an
// arbitrary sequence of stack operations.
package stack

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/softindex"
	"github.com/softstack-ml/softstack/internal/tensor"
)

// State is a differentiable stack state. It is a value: every
// transition returns a new State and never mutates the old one, so
// states can be threaded explicitly through a computation and revisited.
type State[T tensor.DType, B tensor.Backend] struct {
	// Buffer holds the stack contents, one element per row:
	// shape [bandwidth, ...element_shape].
	Buffer *tensor.Tensor[T, B]
	// Position is a weight vector of length bandwidth addressing the
	// next free slot.
	Position *tensor.Tensor[T, B]
}

// New creates an empty stack: a zero-filled buffer of shape
// [bandwidth, elemShape...] and a position one-hot at slot 0.
func New[T tensor.DType, B tensor.Backend](bandwidth int, elemShape tensor.Shape, b B) State[T, B] {
	if bandwidth <= 0 {
		panic(fmt.Sprintf("stack: bandwidth must be positive, got %d", bandwidth))
	}
	bufShape := append(tensor.Shape{bandwidth}, elemShape...)
	return State[T, B]{
		Buffer:   tensor.Zeros[T, B](bufShape, b),
		Position: tensor.OneHot[T, B](0, bandwidth, b),
	}
}

// Bandwidth returns the stack capacity.
func (s State[T, B]) Bandwidth() int {
	return s.Position.Shape()[0]
}

// Push writes element at the current position and advances the
// position by one cyclic shift. Pushing past the bandwidth silently
// wraps around to slot 0 and overwrites; that wraparound is the
// intended boundary behavior, not a failure.
func Push[T tensor.DType, B tensor.Backend](s State[T, B], element *tensor.Tensor[T, B]) State[T, B] {
	return State[T, B]{
		Buffer:   softindex.AssignVector(s.Buffer, s.Position, element),
		Position: s.Position.Roll(1),
	}
}

// Pop retreats the position by one cyclic shift and reads the element
// it now addresses via superposition. The popped slot is not cleared:
// the buffer is carried over unchanged.
func Pop[T tensor.DType, B tensor.Backend](s State[T, B]) (State[T, B], *tensor.Tensor[T, B]) {
	position := s.Position.Roll(-1)
	element := softindex.SuperpositionLookup(s.Buffer, position)
	return State[T, B]{Buffer: s.Buffer, Position: position}, element
}

// Peek reads the top element exactly as Pop does, without producing a
// new state.
func Peek[T tensor.DType, B tensor.Backend](s State[T, B]) *tensor.Tensor[T, B] {
	return softindex.SuperpositionLookup(s.Buffer, s.Position.Roll(-1))
}
