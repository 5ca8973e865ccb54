package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softstack-ml/softstack/internal/backend/cpu"
	"github.com/softstack-ml/softstack/internal/tensor"
)

func element(t *testing.T, b *cpu.CPUBackend, data ...float64) *tensor.Tensor[float64, *cpu.CPUBackend] {
	t.Helper()
	e, err := tensor.FromSlice(data, tensor.Shape{len(data)}, b)
	require.NoError(t, err)
	return e
}

func TestNew(t *testing.T) {
	b := cpu.New()
	s := New[float64](3, tensor.Shape{2}, b)

	assert.True(t, s.Buffer.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, []float64{1, 0, 0}, s.Position.Data())
	assert.Equal(t, 3, s.Bandwidth())

	assert.Panics(t, func() { New[float64](0, tensor.Shape{2}, b) })
}

func TestPushPop_RoundTrip(t *testing.T) {
	b := cpu.New()
	s := New[float64](3, tensor.Shape{2}, b)

	e1 := element(t, b, 1, 2)
	e2 := element(t, b, 3, 4)

	s = Push(s, e1)
	s = Push(s, e2)

	// LIFO order.
	s, got := Pop(s)
	assert.Equal(t, []float64{3, 4}, got.Data())
	s, got = Pop(s)
	assert.Equal(t, []float64{1, 2}, got.Data())
	_ = s
}

func TestPush_StatesAreValues(t *testing.T) {
	b := cpu.New()
	s0 := New[float64](2, tensor.Shape{1}, b)

	s1 := Push(s0, element(t, b, 5))

	// The old state is untouched; both can be used independently.
	assert.Equal(t, []float64{0, 0}, s0.Buffer.Data())
	assert.Equal(t, []float64{1, 0}, s0.Position.Data())
	assert.Equal(t, []float64{5, 0}, s1.Buffer.Data())
	assert.Equal(t, []float64{0, 1}, s1.Position.Data())
}

func TestPop_DoesNotClearSlot(t *testing.T) {
	b := cpu.New()
	s := New[float64](2, tensor.Shape{1}, b)
	s = Push(s, element(t, b, 7))

	popped, got := Pop(s)
	assert.Equal(t, []float64{7}, got.Data())

	// The buffer still holds the element after the pop.
	assert.Equal(t, []float64{7, 0}, popped.Buffer.Data())
}

func TestPeek(t *testing.T) {
	b := cpu.New()
	s := New[float64](3, tensor.Shape{1}, b)
	s = Push(s, element(t, b, 1))
	s = Push(s, element(t, b, 2))

	assert.Equal(t, []float64{2}, Peek(s).Data())
	// Peek leaves the state unchanged.
	assert.Equal(t, []float64{0, 0, 1}, s.Position.Data())
}

func TestPush_WrapsAround(t *testing.T) {
	b := cpu.New()
	s := New[float64](2, tensor.Shape{1}, b)

	s = Push(s, element(t, b, 1))
	s = Push(s, element(t, b, 2))
	// The third push wraps and overwrites slot 0.
	s = Push(s, element(t, b, 3))

	assert.Equal(t, []float64{3, 2}, s.Buffer.Data())

	s, got := Pop(s)
	assert.Equal(t, []float64{3}, got.Data())
	_ = s
}

func TestReverse(t *testing.T) {
	b := cpu.New()
	seq, err := tensor.FromSlice([]float64{
		1, 2,
		3, 4,
		5, 6,
	}, tensor.Shape{3, 2}, b)
	require.NoError(t, err)

	got := Reverse(seq)
	assert.True(t, got.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, []float64{5, 6, 3, 4, 1, 2}, got.Data())
}

func TestReverse_Twice(t *testing.T) {
	b := cpu.New()
	seq, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{4, 1}, b)
	require.NoError(t, err)

	assert.Equal(t, seq.Data(), Reverse(Reverse(seq)).Data())
}
