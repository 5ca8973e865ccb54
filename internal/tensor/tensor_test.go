package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softstack-ml/softstack/internal/backend/cpu"
	"github.com/softstack-ml/softstack/internal/tensor"
)

func TestFromSlice(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)
	assert.True(t, x.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, tensor.Float32, x.DType())
	assert.Equal(t, float32(6), x.At(1, 2))

	// Element count mismatch.
	_, err = tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 3}, backend)
	assert.Error(t, err)
}

func TestCreation(t *testing.T) {
	backend := cpu.New()

	z := tensor.Zeros[float64](tensor.Shape{2, 2}, backend)
	for _, v := range z.Data() {
		assert.Equal(t, 0.0, v)
	}

	o := tensor.Ones[float32](tensor.Shape{3}, backend)
	for _, v := range o.Data() {
		assert.Equal(t, float32(1), v)
	}

	f := tensor.Full[float32](tensor.Shape{2}, 3.5, backend)
	assert.Equal(t, float32(3.5), f.Data()[0])

	a := tensor.Arange[float32](2, 6, backend)
	assert.True(t, a.Shape().Equal(tensor.Shape{4}))
	assert.Equal(t, []float32{2, 3, 4, 5}, a.Data())

	s := tensor.Scalar[float64](7.25, backend)
	assert.True(t, s.Shape().Equal(tensor.Shape{1}))
	assert.Equal(t, 7.25, s.Item())
}

func TestOneHot(t *testing.T) {
	backend := cpu.New()

	oh := tensor.OneHot[float32](2, 4, backend)
	assert.Equal(t, []float32{0, 0, 1, 0}, oh.Data())

	assert.Panics(t, func() { tensor.OneHot[float32](4, 4, backend) })
	assert.Panics(t, func() { tensor.OneHot[float32](-1, 4, backend) })
}

func TestTensor_SetAt(t *testing.T) {
	backend := cpu.New()

	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
	x.Set(5, 1, 2)
	assert.Equal(t, float32(5), x.At(1, 2))
	assert.Equal(t, float32(0), x.At(0, 0))
}

func TestTensor_Clone(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	y := x.Clone()
	y.Data()[0] = 9
	assert.Equal(t, float32(1), x.Data()[0], "Clone must not share memory")
}

func TestTensor_Item_Panics(t *testing.T) {
	backend := cpu.New()
	x := tensor.Zeros[float32](tensor.Shape{2}, backend)
	assert.Panics(t, func() { x.Item() })
}
