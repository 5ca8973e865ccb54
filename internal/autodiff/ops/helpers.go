package ops

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// zerosLike allocates a zero tensor with the given shape and the dtype
// and device of ref.
func zerosLike(shape tensor.Shape, ref *tensor.RawTensor) *tensor.RawTensor {
	out, err := tensor.NewRaw(shape, ref.DType(), ref.Device())
	if err != nil {
		panic(fmt.Sprintf("ops: failed to allocate gradient: %v", err))
	}
	return out
}

// reduceBroadcast sums grad along dimensions that were broadcast during
// the forward pass, so the result matches targetShape. When no
// broadcasting happened this returns grad unchanged.
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape) *tensor.RawTensor {
	if grad.Shape().Equal(targetShape) {
		return grad
	}

	out := zerosLike(targetShape, grad)
	switch grad.DType() {
	case tensor.Float32:
		reduceBroadcastKernel(out.AsFloat32(), grad.AsFloat32(), targetShape, grad.Shape())
	case tensor.Float64:
		reduceBroadcastKernel(out.AsFloat64(), grad.AsFloat64(), targetShape, grad.Shape())
	default:
		panic(fmt.Sprintf("reduceBroadcast: unsupported dtype %s", grad.DType()))
	}
	return out
}

// reduceBroadcastKernel accumulates each grad element into the target
// position it was broadcast from.
func reduceBroadcastKernel[T tensor.DType](out, grad []T, targetShape, gradShape tensor.Shape) {
	gradStrides := gradShape.ComputeStrides()
	targetStrides := alignedStrides(targetShape, gradShape)

	for i := range grad {
		off := 0
		rem := i
		for d := 0; d < len(gradShape); d++ {
			coord := rem / gradStrides[d]
			rem %= gradStrides[d]
			off += coord * targetStrides[d]
		}
		out[off] += grad[i]
	}
}

// alignedStrides maps targetShape's strides onto gradShape (right
// aligned), with stride 0 on dimensions broadcast during forward.
func alignedStrides(targetShape, gradShape tensor.Shape) []int {
	strides := targetShape.ComputeStrides()
	mapped := make([]int, len(gradShape))
	offset := len(gradShape) - len(targetShape)
	for d := range gradShape {
		srcDim := d - offset
		if srcDim < 0 || (targetShape[srcDim] == 1 && gradShape[d] != 1) {
			mapped[d] = 0
			continue
		}
		mapped[d] = strides[srcDim]
	}
	return mapped
}
