package softindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softstack-ml/softstack/internal/autodiff"
	"github.com/softstack-ml/softstack/internal/backend/cpu"
	"github.com/softstack-ml/softstack/internal/tensor"
)

func newArray(t *testing.T, data []float64, shape tensor.Shape) *tensor.Tensor[float64, *cpu.CPUBackend] {
	t.Helper()
	arr, err := tensor.FromSlice(data, shape, cpu.New())
	require.NoError(t, err)
	return arr
}

func TestNaiveLookup(t *testing.T) {
	arr := newArray(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})

	assert.Equal(t, []float64{3, 4}, NaiveLookup(arr, 1.0).Data())
	// Rounds to the nearest row.
	assert.Equal(t, []float64{3, 4}, NaiveLookup(arr, 1.4).Data())
	assert.Equal(t, []float64{5, 6}, NaiveLookup(arr, 1.6).Data())
}

func TestLinearLookup_Exact(t *testing.T) {
	arr := newArray(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})
	pos := tensor.Scalar(2.0, arr.Backend())

	// An integral position recovers the row exactly.
	assert.Equal(t, []float64{5, 6}, LinearLookup(arr, pos).Data())
}

func TestLinearLookup_Interpolated(t *testing.T) {
	arr := newArray(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})

	// p = 0.25: weight t = 0.25 on the floor row, 0.75 on the ceil row.
	got := LinearLookup(arr, tensor.Scalar(0.25, arr.Backend())).Data()
	assert.InDelta(t, 0.25*1+0.75*3, got[0], 1e-9)
	assert.InDelta(t, 0.25*2+0.75*4, got[1], 1e-9)
}

func TestLinearLookup_OutOfRangeClamps(t *testing.T) {
	arr := newArray(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})

	assert.Equal(t, []float64{1, 2}, LinearLookup(arr, tensor.Scalar(-3.5, arr.Backend())).Data())
	assert.Equal(t, []float64{5, 6}, LinearLookup(arr, tensor.Scalar(7.0, arr.Backend())).Data())
}

func TestLinearLookup_PositionGradient(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	arr, err := tensor.FromSlice[float64, adBackend]([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2}, backend)
	require.NoError(t, err)
	pos := tensor.Scalar[float64, adBackend](1.5, backend)

	loss := LinearLookup(arr, pos).Sum()
	grads := autodiff.Backward(loss, backend)

	// d(sum(t*row1 + (1-t)*row2))/dp = sum(row1) - sum(row2) = 7 - 11.
	grad := grads[pos.Raw()]
	require.NotNil(t, grad)
	assert.InDelta(t, -4.0, grad.AsFloat64()[0], 1e-6)

	// The array rows receive their interpolation weights.
	gradArr := grads[arr.Raw()].AsFloat64()
	assert.InDelta(t, 0.0, gradArr[0], 1e-9)
	assert.InDelta(t, 0.5, gradArr[2], 1e-9)
	assert.InDelta(t, 0.5, gradArr[4], 1e-9)
}

func TestSuperpositionLookup(t *testing.T) {
	arr := newArray(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})

	// A one-hot weight vector is an exact read.
	w := tensor.OneHot[float64](2, 3, arr.Backend())
	assert.Equal(t, []float64{5, 6}, SuperpositionLookup(arr, w).Data())

	// A Bandwidthify weight vector composes into a soft read equal to
	// the linear interpolation of the adjacent rows.
	soft := Bandwidthify(tensor.Scalar(0.5, arr.Backend()), 3)
	got := SuperpositionLookup(arr, soft).Data()
	assert.InDelta(t, 2.0, got[0], 1e-9)
	assert.InDelta(t, 3.0, got[1], 1e-9)
}

func TestResidualLookup(t *testing.T) {
	arr := newArray(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})

	hard, residue := ResidualLookup(arr, tensor.Scalar(1.25, arr.Backend()))
	assert.Equal(t, []float64{3, 4}, hard.Data())
	assert.InDelta(t, 0.25, residue.Item(), 1e-9)

	// Rounding up leaves a negative residue.
	hard, residue = ResidualLookup(arr, tensor.Scalar(1.75, arr.Backend()))
	assert.Equal(t, []float64{5, 6}, hard.Data())
	assert.InDelta(t, -0.25, residue.Item(), 1e-9)
}

func TestLookup2D_Exact(t *testing.T) {
	// 2x2 grid of 2-element cells.
	arr := newArray(t, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
	}, tensor.Shape{2, 2, 2})

	x := tensor.OneHot[float64](1, 2, arr.Backend())
	y := tensor.OneHot[float64](0, 2, arr.Backend())

	got, err := Lookup2D(arr, x, y)
	require.NoError(t, err)
	assert.True(t, got.Shape().Equal(tensor.Shape{2}))
	assert.Equal(t, []float64{5, 6}, got.Data())
}

func TestLookup2D_MaxReductionDivergesFromSum(t *testing.T) {
	// With a blended mask the max reduction keeps only the strongest
	// masked cell instead of mixing cells, so it diverges from the
	// superposition-sum convention of the 1-D lookups.
	arr := newArray(t, []float64{
		10, 0,
		0, 20,
	}, tensor.Shape{2, 2, 1})

	half, err := tensor.FromSlice([]float64{0.5, 0.5}, tensor.Shape{2}, arr.Backend())
	require.NoError(t, err)

	got, err := Lookup2D(arr, half, half)
	require.NoError(t, err)

	// Every mask entry is 0.25; a sum would give 0.25*(10+20) = 7.5,
	// the max keeps 0.25*20 = 5.
	assert.Equal(t, []float64{5}, got.Data())
}

func TestLookup2D_ShapeMismatch(t *testing.T) {
	arr := newArray(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})

	x := tensor.OneHot[float64](0, 3, arr.Backend())
	y := tensor.OneHot[float64](0, 2, arr.Backend())

	_, err := Lookup2D(arr, x, y)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a prefix")
}
