package softindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softstack-ml/softstack/internal/autodiff"
	"github.com/softstack-ml/softstack/internal/backend/cpu"
	"github.com/softstack-ml/softstack/internal/tensor"
)

type adBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func TestBandwidthify_Integer(t *testing.T) {
	backend := cpu.New()

	// Integral positions encode as exact one-hot vectors.
	for i := 0; i < 4; i++ {
		w := Bandwidthify(tensor.Scalar(float64(i), backend), 4)
		want := make([]float64, 4)
		want[i] = 1
		assert.Equal(t, want, w.Data(), "position %d", i)
	}
}

func TestBandwidthify_Fractional(t *testing.T) {
	backend := cpu.New()

	// p = 1.3: t = 0.3 goes on the floor slot, 1-t on the ceil slot.
	w := Bandwidthify(tensor.Scalar(1.3, backend), 4)
	data := w.Data()
	assert.InDelta(t, 0.0, data[0], 1e-9)
	assert.InDelta(t, 0.3, data[1], 1e-9)
	assert.InDelta(t, 0.7, data[2], 1e-9)
	assert.InDelta(t, 0.0, data[3], 1e-9)
}

func TestBandwidthify_SumsToOne(t *testing.T) {
	backend := cpu.New()

	for _, p := range []float64{0, 0.25, 1.5, 2.999, 3, -0.5, -2.5, 3.5, 10.25} {
		w := Bandwidthify(tensor.Scalar(p, backend), 4)
		var sum float64
		for _, v := range w.Data() {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "position %v", p)
	}
}

func TestBandwidthify_OutOfRangeClamps(t *testing.T) {
	backend := cpu.New()

	// Below range saturates at slot 0.
	w := Bandwidthify(tensor.Scalar(-2.5, backend), 4)
	assert.Equal(t, []float64{1, 0, 0, 0}, w.Data())

	// Above range saturates at the last slot.
	w = Bandwidthify(tensor.Scalar(9.75, backend), 4)
	assert.Equal(t, []float64{0, 0, 0, 1}, w.Data())
}

func TestBandwidthify_NonScalarPanics(t *testing.T) {
	backend := cpu.New()
	pos, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	assert.Panics(t, func() { Bandwidthify(pos, 4) })
}

func TestBandwidthify_PositionGradient(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	// Within a cell, dw[floor]/dp = 1 and dw[ceil]/dp = -1; weighting
	// the slots by [10, 20, 40, 80] gives dloss/dp = 20 - 40 = -20.
	pos := tensor.Scalar[float64, adBackend](1.3, backend)
	coeff, err := tensor.FromSlice[float64, adBackend]([]float64{10, 20, 40, 80}, tensor.Shape{4}, backend)
	require.NoError(t, err)

	loss := Bandwidthify(pos, 4).Mul(coeff).Sum()
	grads := autodiff.Backward(loss, backend)

	grad := grads[pos.Raw()]
	require.NotNil(t, grad, "position must receive a gradient")
	assert.InDelta(t, -20.0, grad.AsFloat64()[0], 1e-6)
}

func TestBandwidthifyAll(t *testing.T) {
	backend := cpu.New()

	positions, err := tensor.FromSlice([]float64{0, 1.5, 3}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	w := BandwidthifyAll(positions, 4)
	assert.True(t, w.Shape().Equal(tensor.Shape{3, 4}))

	data := w.Data()
	assert.Equal(t, []float64{1, 0, 0, 0}, data[0:4])
	assert.InDelta(t, 0.5, data[5], 1e-9)
	assert.InDelta(t, 0.5, data[6], 1e-9)
	assert.Equal(t, []float64{0, 0, 0, 1}, data[8:12])
}

func TestBandwidthifyAll_NonVectorPanics(t *testing.T) {
	backend := cpu.New()
	m := tensor.Zeros[float64](tensor.Shape{2, 2}, backend)
	assert.Panics(t, func() { BandwidthifyAll(m, 4) })
}
