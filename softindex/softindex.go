// Copyright 2026 SoftStack ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package softindex provides differentiable indexing operators.
//
// Discrete array indexing has no useful gradient: the index is an
// integer and the read touches a single slot. This package replaces
// hard indices with weight vectors over slots, so both the indexed
// array and the index position receive gradients:
//
//   - Bandwidthify encodes a scalar position as a weight vector that
//     interpolates the two nearest one-hot encodings.
//   - LinearLookup, SuperpositionLookup and Lookup2D read arrays under
//     such soft indices.
//   - AssignVector and Assign2D write under soft indices, blending the
//     new element with the old contents.
//   - AsymmetricLookup reads with a hard argmax forward pass and a
//     hand-specified backward pass that pushes the index weights toward
//     values near the gradient target.
//
// All operators are pure: inputs are never mutated, writes return a
// fresh array. Combined with an autodiff backend this makes soft data
// structures (see the stack package) trainable end to end.
package softindex

import (
	"github.com/softstack-ml/softstack/internal/softindex"
	"github.com/softstack-ml/softstack/internal/tensor"
)

// Broadcastable reorders x and y so the higher-rank tensor comes first
// and reshapes the lower-rank one with trailing singleton dimensions,
// after checking that the low shape is a prefix of the high shape.
func Broadcastable[T tensor.DType, B tensor.Backend](x, y *tensor.Tensor[T, B]) (high, low *tensor.Tensor[T, B], err error) {
	return softindex.Broadcastable(x, y)
}

// Bandwidthify encodes a scalar position as a weight vector of length
// bandwidth. Integer positions map to exact one-hot vectors; fractional
// positions interpolate the floor and ceil one-hots. Out-of-range
// positions are clamped to the nearest valid slot.
func Bandwidthify[T tensor.DType, B tensor.Backend](pos *tensor.Tensor[T, B], bandwidth int) *tensor.Tensor[T, B] {
	return softindex.Bandwidthify(pos, bandwidth)
}

// BandwidthifyAll encodes a vector of n positions into an [n, bandwidth]
// matrix of weight vectors, one row per position.
func BandwidthifyAll[T tensor.DType, B tensor.Backend](positions *tensor.Tensor[T, B], bandwidth int) *tensor.Tensor[T, B] {
	return softindex.BandwidthifyAll(positions, bandwidth)
}

// NaiveLookup reads the row of arr nearest to index. No gradient flows
// into the index.
func NaiveLookup[T tensor.DType, B tensor.Backend](arr *tensor.Tensor[T, B], index float64) *tensor.Tensor[T, B] {
	return softindex.NaiveLookup(arr, index)
}

// LinearLookup reads arr at a fractional position by interpolating the
// two nearest rows. Gradient flows into both arr and pos.
func LinearLookup[T tensor.DType, B tensor.Backend](arr, pos *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return softindex.LinearLookup(arr, pos)
}

// SuperpositionLookup reads arr under a full weight vector: the result
// is the weighted sum of all rows.
func SuperpositionLookup[T tensor.DType, B tensor.Backend](arr, weights *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return softindex.SuperpositionLookup(arr, weights)
}

// ResidualLookup splits a fractional position into a hard row read and
// the fractional residue, so callers can handle the residue themselves.
func ResidualLookup[T tensor.DType, B tensor.Backend](arr, pos *tensor.Tensor[T, B]) (hard, residue *tensor.Tensor[T, B]) {
	return softindex.ResidualLookup(arr, pos)
}

// Lookup2D reads a 2D-indexed element of arr under two soft indices,
// reducing the masked array with max over the two leading dimensions.
func Lookup2D[T tensor.DType, B tensor.Backend](arr, xIndex, yIndex *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	return softindex.Lookup2D(arr, xIndex, yIndex)
}

// Assign writes element into row of arr, returning a fresh array.
func Assign[T tensor.DType, B tensor.Backend](arr *tensor.Tensor[T, B], row int, element *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return softindex.Assign(arr, row, element)
}

// AssignVector writes element into arr under a soft index: each row
// becomes (1-w)*old + w*element for its weight w.
func AssignVector[T tensor.DType, B tensor.Backend](arr, weights, element *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return softindex.AssignVector(arr, weights, element)
}

// Assign2D writes element into arr under two soft indices forming a 2D
// soft mask.
func Assign2D[T tensor.DType, B tensor.Backend](arr, xIndex, yIndex, element *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	return softindex.Assign2D(arr, xIndex, yIndex, element)
}

// AsymmetricLookup reads values at the argmax of each weight row. The
// forward pass is hard; the backward pass is custom: values receive the
// weight-scaled gradient, and each weight receives the gradient
// magnitude, negated only for the value column closest to the implied
// target.
func AsymmetricLookup[T tensor.DType, B tensor.Backend](values, weights *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	return softindex.AsymmetricLookup(values, weights)
}
