package tensor

import "fmt"

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		panic(fmt.Sprintf("zeros: %v", err))
	}
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, 1, b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Arange creates a 1D tensor with values from start to end (exclusive),
// stepping by one.
func Arange[T DType, B Backend](start, end T, b B) *Tensor[T, B] {
	n := int(end - start)
	if n < 0 {
		n = 0
	}
	t := Zeros[T, B](Shape{n}, b)
	data := t.Data()
	for i := range data {
		data[i] = start + T(i)
	}
	return t
}

// OneHot creates a length-n vector that is 1 at index and 0 elsewhere.
// Panics if index is outside [0, n).
//
// One-hot vectors are the exact (noiseless) form of the weight-vector
// index representation used throughout the soft-indexing operators.
func OneHot[T DType, B Backend](index, n int, b B) *Tensor[T, B] {
	if index < 0 || index >= n {
		panic(fmt.Sprintf("onehot: index %d out of range [0, %d)", index, n))
	}
	t := Zeros[T, B](Shape{n}, b)
	t.Data()[index] = 1
	return t
}

// Scalar creates a single-element tensor holding value.
// Continuous positions are carried as Shape{1} tensors so that
// gradients can flow into them.
func Scalar[T DType, B Backend](value T, b B) *Tensor[T, B] {
	return Full[T, B](Shape{1}, value, b)
}
