package cpu

import (
	"fmt"

	"github.com/softstack-ml/softstack/internal/tensor"
)

// MaxDim reduces along dim by taking the maximum.
// With keepDim the reduced dimension stays as size 1; otherwise it is
// removed (a result that would become rank-0 is returned as shape [1]).
func (cpu *CPUBackend) MaxDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("maxdim: dim %d out of range for rank %d", dim, ndim))
	}

	outShape := reducedShape(shape, dim, keepDim)
	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("maxdim: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		maxDimKernel(result.AsFloat32(), x.AsFloat32(), shape, dim)
	case tensor.Float64:
		maxDimKernel(result.AsFloat64(), x.AsFloat64(), shape, dim)
	default:
		panic(fmt.Sprintf("maxdim: unsupported dtype %s", x.DType()))
	}
	return result
}

// reducedShape computes the output shape of a dim-reduction.
func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	if keepDim {
		out := shape.Clone()
		out[dim] = 1
		return out
	}
	out := make(tensor.Shape, 0, len(shape)-1)
	for d, size := range shape {
		if d == dim {
			continue
		}
		out = append(out, size)
	}
	if len(out) == 0 {
		return tensor.Shape{1}
	}
	return out
}

func maxDimKernel[T tensor.DType](out, in []T, shape tensor.Shape, dim int) {
	outer, size, inner := splitAt(shape, dim)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			best := in[o*size*inner+i]
			for k := 1; k < size; k++ {
				v := in[(o*size+k)*inner+i]
				if v > best {
					best = v
				}
			}
			out[o*inner+i] = best
		}
	}
}

// ArgmaxDim returns, for each slice along dim, the index of the maximum
// element. The first maximum wins on ties. Used by the autodiff layer to
// route max-reduction gradients.
func ArgmaxDim(x *tensor.RawTensor, dim int) []int {
	shape := x.Shape()
	if dim < 0 {
		dim = len(shape) + dim
	}
	outer, size, inner := splitAt(shape, dim)
	idx := make([]int, outer*inner)

	switch x.DType() {
	case tensor.Float32:
		argmaxKernel(idx, x.AsFloat32(), outer, size, inner)
	case tensor.Float64:
		argmaxKernel(idx, x.AsFloat64(), outer, size, inner)
	default:
		panic(fmt.Sprintf("argmaxdim: unsupported dtype %s", x.DType()))
	}
	return idx
}

func argmaxKernel[T tensor.DType](idx []int, in []T, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			best, bestK := in[o*size*inner+i], 0
			for k := 1; k < size; k++ {
				v := in[(o*size+k)*inner+i]
				if v > best {
					best, bestK = v, k
				}
			}
			idx[o*inner+i] = bestK
		}
	}
}

// splitAt factors a shape into (outer, size, inner) around dim.
func splitAt(shape tensor.Shape, dim int) (outer, size, inner int) {
	outer, inner = 1, 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	size = shape[dim]
	for d := dim + 1; d < len(shape); d++ {
		inner *= shape[d]
	}
	return outer, size, inner
}

// Sum reduces the whole tensor to a single-element sum.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.fullReduce("sum", x, false)
}

// Mean reduces the whole tensor to a single-element mean.
func (cpu *CPUBackend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.fullReduce("mean", x, true)
}

func (cpu *CPUBackend) fullReduce(name string, x *tensor.RawTensor, mean bool) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{1}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		var sum float64
		for _, v := range x.AsFloat32() {
			sum += float64(v)
		}
		if mean {
			sum /= float64(x.NumElements())
		}
		result.AsFloat32()[0] = float32(sum)
	case tensor.Float64:
		var sum float64
		for _, v := range x.AsFloat64() {
			sum += v
		}
		if mean {
			sum /= float64(x.NumElements())
		}
		result.AsFloat64()[0] = sum
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}
	return result
}
