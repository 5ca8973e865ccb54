package stack

import (
	"github.com/softstack-ml/softstack/internal/tensor"
)

// Reverse reverses the rows of seq with two stacks: every row is pushed
// onto the first stack, then popped off and pushed onto the second, so
// the second stack's buffer holds the rows in reverse order. The whole
// pipeline is built from soft stack transitions and is differentiable
// end to end, which makes it a useful training target for the
// soft-indexing machinery.
func Reverse[T tensor.DType, B tensor.Backend](seq *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	n := seq.Shape()[0]
	elemShape := seq.Shape()[1:]
	b := seq.Backend()

	s1 := New[T, B](n, elemShape, b)
	for i := 0; i < n; i++ {
		s1 = Push(s1, seq.TakeRow(i))
	}

	s2 := New[T, B](n, elemShape, b)
	for i := 0; i < n; i++ {
		var element *tensor.Tensor[T, B]
		s1, element = Pop(s1)
		s2 = Push(s2, element)
	}
	return s2.Buffer
}
