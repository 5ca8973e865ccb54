package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softstack-ml/softstack/internal/tensor"
)

func fromSlice(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	x, err := tensor.FromSlice(data, shape, New())
	require.NoError(t, err)
	return x.Raw()
}

func TestCPUBackend_Basics(t *testing.T) {
	backend := New()
	assert.Equal(t, "CPU", backend.Name())
	assert.Equal(t, tensor.CPU, backend.Device())
}

func TestElementwise(t *testing.T) {
	backend := New()
	a := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{4})
	b := fromSlice(t, []float32{5, 6, 7, 8}, tensor.Shape{4})

	assert.Equal(t, []float32{6, 8, 10, 12}, backend.Add(a, b).AsFloat32())
	assert.Equal(t, []float32{-4, -4, -4, -4}, backend.Sub(a, b).AsFloat32())
	assert.Equal(t, []float32{5, 12, 21, 32}, backend.Mul(a, b).AsFloat32())
	assert.Equal(t, []float32{2, 3, 3.5}, backend.Div(
		fromSlice(t, []float32{4, 6, 7}, tensor.Shape{3}),
		fromSlice(t, []float32{2, 2, 2}, tensor.Shape{3}),
	).AsFloat32())

	// Inputs must not be mutated.
	assert.Equal(t, []float32{1, 2, 3, 4}, a.AsFloat32())
}

func TestElementwise_Broadcast(t *testing.T) {
	backend := New()

	// [2,3] * [3]: row vector broadcast along axis 0.
	a := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := fromSlice(t, []float32{10, 100, 1000}, tensor.Shape{3})
	got := backend.Mul(a, b)
	assert.True(t, got.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, []float32{10, 200, 3000, 40, 500, 6000}, got.AsFloat32())

	// [2,1] + [2,3]: column vector broadcast along axis 1.
	c := fromSlice(t, []float32{10, 20}, tensor.Shape{2, 1})
	got = backend.Add(c, a)
	assert.Equal(t, []float32{11, 12, 13, 24, 25, 26}, got.AsFloat32())

	// [3,2,1] * [1]: trailing singleton mask axis expands to the element.
	arr := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2, 1})
	mask := fromSlice(t, []float32{2}, tensor.Shape{1})
	got = backend.Mul(arr, mask)
	assert.True(t, got.Shape().Equal(tensor.Shape{3, 2, 1}))
	assert.Equal(t, []float32{2, 4, 6, 8, 10, 12}, got.AsFloat32())

	// Incompatible shapes panic.
	bad := fromSlice(t, []float32{1, 2}, tensor.Shape{2})
	assert.Panics(t, func() { backend.Add(a, bad) })
}

func TestScalarOps(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, -2, 3}, tensor.Shape{3})

	assert.Equal(t, []float32{2.5, -0.5, 4.5}, backend.AddScalar(x, 1.5).AsFloat32())
	assert.Equal(t, []float32{2, -4, 6}, backend.MulScalar(x, 2).AsFloat32())
	assert.Equal(t, []float32{1, 0, 2}, backend.Clamp(x, 0, 2).AsFloat32())
}

func TestReshape(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	y := backend.Reshape(x, tensor.Shape{3, 2})
	assert.True(t, y.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, y.AsFloat32())

	assert.Panics(t, func() { backend.Reshape(x, tensor.Shape{4, 2}) })
}

func TestCat(t *testing.T) {
	backend := New()
	a := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := fromSlice(t, []float32{5, 6}, tensor.Shape{1, 2})

	got := backend.Cat([]*tensor.RawTensor{a, b}, 0)
	assert.True(t, got.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, got.AsFloat32())

	c := fromSlice(t, []float32{7, 8}, tensor.Shape{2, 1})
	got = backend.Cat([]*tensor.RawTensor{a, c}, 1)
	assert.True(t, got.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, []float32{1, 2, 7, 3, 4, 8}, got.AsFloat32())
}

func TestTakeRow(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})

	row := backend.TakeRow(x, 1)
	assert.True(t, row.Shape().Equal(tensor.Shape{2}))
	assert.Equal(t, []float32{3, 4}, row.AsFloat32())

	// Rank-1 extraction yields a single-element tensor.
	v := fromSlice(t, []float32{9, 8, 7}, tensor.Shape{3})
	elem := backend.TakeRow(v, 2)
	assert.True(t, elem.Shape().Equal(tensor.Shape{1}))
	assert.Equal(t, []float32{7}, elem.AsFloat32())

	assert.Panics(t, func() { backend.TakeRow(x, 3) })
}

func TestRoll(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, 0, 0}, tensor.Shape{3})

	assert.Equal(t, []float32{0, 1, 0}, backend.Roll(x, 1).AsFloat32())
	assert.Equal(t, []float32{0, 0, 1}, backend.Roll(x, 2).AsFloat32())
	assert.Equal(t, []float32{0, 0, 1}, backend.Roll(x, -1).AsFloat32())
	assert.Equal(t, []float32{1, 0, 0}, backend.Roll(x, 3).AsFloat32())
	assert.Equal(t, []float32{1, 0, 0}, backend.Roll(x, -3).AsFloat32())

	// Rows move as units for higher ranks.
	m := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	assert.Equal(t, []float32{3, 4, 1, 2}, backend.Roll(m, 1).AsFloat32())
}

func TestOuter(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, 2}, tensor.Shape{2})
	y := fromSlice(t, []float32{3, 4, 5}, tensor.Shape{3})

	got := backend.Outer(x, y)
	assert.True(t, got.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, []float32{3, 4, 5, 6, 8, 10}, got.AsFloat32())
}

func TestMaxDim(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, 5, 2, 7, 3, 4}, tensor.Shape{2, 3})

	got := backend.MaxDim(x, 1, false)
	assert.True(t, got.Shape().Equal(tensor.Shape{2}))
	assert.Equal(t, []float32{5, 7}, got.AsFloat32())

	got = backend.MaxDim(x, 0, false)
	assert.True(t, got.Shape().Equal(tensor.Shape{3}))
	assert.Equal(t, []float32{7, 5, 4}, got.AsFloat32())

	got = backend.MaxDim(x, 1, true)
	assert.True(t, got.Shape().Equal(tensor.Shape{2, 1}))

	// Reducing a vector yields shape [1], not a rank-0 tensor.
	v := fromSlice(t, []float32{3, 9, 1}, tensor.Shape{3})
	got = backend.MaxDim(v, 0, false)
	assert.True(t, got.Shape().Equal(tensor.Shape{1}))
	assert.Equal(t, []float32{9}, got.AsFloat32())
}

func TestArgmaxDim(t *testing.T) {
	x := fromSlice(t, []float32{1, 5, 2, 7, 3, 4}, tensor.Shape{2, 3})
	assert.Equal(t, []int{1, 0}, ArgmaxDim(x, 1))

	// Ties resolve to the first maximum.
	tie := fromSlice(t, []float32{0.5, 0.5, 0.2, 0.9}, tensor.Shape{2, 2})
	assert.Equal(t, []int{0, 1}, ArgmaxDim(tie, 1))
}

func TestSumMean(t *testing.T) {
	backend := New()
	x := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	sum := backend.Sum(x)
	assert.True(t, sum.Shape().Equal(tensor.Shape{1}))
	assert.Equal(t, float32(10), sum.AsFloat32()[0])

	mean := backend.Mean(x)
	assert.Equal(t, float32(2.5), mean.AsFloat32()[0])
}

func TestSuperpose(t *testing.T) {
	backend := New()
	arr := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})

	// One-hot weights recover a row exactly.
	w := fromSlice(t, []float32{0, 1, 0}, tensor.Shape{3})
	got := backend.Superpose(arr, w)
	assert.True(t, got.Shape().Equal(tensor.Shape{2}))
	assert.Equal(t, []float32{3, 4}, got.AsFloat32())

	// Blended weights mix rows proportionally.
	w = fromSlice(t, []float32{0.5, 0, 0.5}, tensor.Shape{3})
	assert.Equal(t, []float32{3, 4}, backend.Superpose(arr, w).AsFloat32())

	// Weight length must match the leading axis.
	bad := fromSlice(t, []float32{1, 0}, tensor.Shape{2})
	assert.Panics(t, func() { backend.Superpose(arr, bad) })
}

func TestMaskedAssign(t *testing.T) {
	backend := New()
	arr := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	elem := fromSlice(t, []float32{10, 20}, tensor.Shape{2})

	// One-hot replaces exactly one row.
	w := fromSlice(t, []float32{0, 1}, tensor.Shape{2})
	got := backend.MaskedAssign(arr, w, elem)
	assert.Equal(t, []float32{1, 2, 10, 20}, got.AsFloat32())
	assert.Equal(t, []float32{1, 2, 3, 4}, arr.AsFloat32(), "input must not be mutated")

	// Fractional weight blends old and new contents.
	w = fromSlice(t, []float32{0.25, 0}, tensor.Shape{2})
	got = backend.MaskedAssign(arr, w, elem)
	assert.InDelta(t, 0.75*1+0.25*10, got.AsFloat32()[0], 1e-6)
	assert.InDelta(t, 0.75*2+0.25*20, got.AsFloat32()[1], 1e-6)
	assert.Equal(t, float32(3), got.AsFloat32()[2])
}

func TestArgmaxLookup(t *testing.T) {
	backend := New()
	values := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	weights := fromSlice(t, []float32{0.1, 0.8, 0.1, 0.7, 0.2, 0.1}, tensor.Shape{2, 3})

	got := backend.ArgmaxLookup(values, weights)
	assert.True(t, got.Shape().Equal(tensor.Shape{2}))
	assert.Equal(t, []float32{2, 4}, got.AsFloat32())

	bad := fromSlice(t, []float32{1, 2}, tensor.Shape{2})
	assert.Panics(t, func() { backend.ArgmaxLookup(values, bad) })
}
