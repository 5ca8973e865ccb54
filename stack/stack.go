// Copyright 2026 SoftStack ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package stack provides a differentiable stack built on soft indexing.
//
// A stack is a (buffer, position) value: Push writes through a soft
// assign and rolls the position forward, Pop rolls it back and reads
// through superposition. Because every transition is made of recorded
// tensor operations, a program over stacks — like the two-stack Reverse
// — can be trained end to end with gradient descent.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	s := stack.New[float32](4, tensor.Shape{3}, backend)
//	s = stack.Push(s, elem)
//	s, top := stack.Pop(s)
package stack

import (
	"github.com/softstack-ml/softstack/internal/stack"
	"github.com/softstack-ml/softstack/internal/tensor"
)

// State is a differentiable stack state: transitions return new states
// and never mutate old ones.
type State[T tensor.DType, B tensor.Backend] = stack.State[T, B]

// New creates an empty stack with the given slot count and element shape.
func New[T tensor.DType, B tensor.Backend](bandwidth int, elemShape tensor.Shape, b B) State[T, B] {
	return stack.New[T, B](bandwidth, elemShape, b)
}

// Push writes element at the current position and advances the position.
// Pushing past the capacity wraps around and overwrites the oldest slot.
func Push[T tensor.DType, B tensor.Backend](s State[T, B], element *tensor.Tensor[T, B]) State[T, B] {
	return stack.Push(s, element)
}

// Pop retreats the position and reads the element it addresses. The
// buffer itself is carried over unchanged.
func Pop[T tensor.DType, B tensor.Backend](s State[T, B]) (State[T, B], *tensor.Tensor[T, B]) {
	return stack.Pop(s)
}

// Peek reads the top element without changing the state.
func Peek[T tensor.DType, B tensor.Backend](s State[T, B]) *tensor.Tensor[T, B] {
	return stack.Peek(s)
}

// Reverse reverses the rows of seq by pushing them onto one stack and
// popping them onto another, returning the second stack's buffer. The
// computation is differentiable end to end.
func Reverse[T tensor.DType, B tensor.Backend](seq *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return stack.Reverse(seq)
}
