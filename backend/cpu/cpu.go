// Copyright 2026 SoftStack ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend for tensor operations.
//
// Example:
//
//	import (
//	    "github.com/softstack-ml/softstack/backend/cpu"
//	    "github.com/softstack-ml/softstack/tensor"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
package cpu

import (
	internalcpu "github.com/softstack-ml/softstack/internal/backend/cpu"
	"github.com/softstack-ml/softstack/tensor"
)

// Backend is the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
func New() *Backend {
	return internalcpu.New()
}

// ArgmaxDim returns the argmax indices of x along dim, first match wins.
// It is exposed for callers that need hard indices next to the soft
// lookup results.
func ArgmaxDim(x *tensor.RawTensor, dim int) []int {
	return internalcpu.ArgmaxDim(x, dim)
}
