// Package cpu implements the pure Go CPU backend for the SoftStack algebra.
//
// Every operation allocates a fresh result tensor; inputs are never
// modified. This keeps all operators pure, which the autodiff layer
// relies on when it keys gradients by tensor identity.
package cpu

import (
	"github.com/softstack-ml/softstack/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Compile-time check that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)
