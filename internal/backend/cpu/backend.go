// Package cpu implements the CPU backend with chunked parallel element-wise kernels.
package cpu

import (
	"fmt"

	"github.com/tangent-ml/tangent/internal/parallel"
	"github.com/tangent-ml/tangent/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
//
// Element-wise binary operations reuse the first operand's buffer when it
// holds the only reference (inplace fast path). Callers that keep operand
// values alive across the call, such as a recording differentiation runtime,
// must pin operands with ForceNonUnique for the duration of the call.
type CPUBackend struct {
	device tensor.Device
	pcfg   parallel.Config
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		pcfg:   parallel.DefaultConfig(),
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

// Add performs element-wise addition.
// Shapes must match, or one operand must be a scalar.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division. Division by zero follows IEEE 754
// semantics (Inf or NaN), it does not panic.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b,
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y })
}

// binary validates operands, resolves the output shape and dispatches the
// element-wise kernel for a binary operation.
func (cpu *CPUBackend) binary(name string, a, b *tensor.RawTensor,
	f32 func(x, y float32) float32, f64 func(x, y float64) float64,
) *tensor.RawTensor {
	outShape, err := tensor.BinaryShape(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", name, a.DType(), b.DType()))
	}

	// Inplace fast path: same shape and a holds the only buffer reference.
	if a.Shape().Equal(b.Shape()) && a.IsUnique() {
		cpu.binaryInto(a, a, b, f32, f64)
		return a
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}
	cpu.binaryInto(result, a, b, f32, f64)
	return result
}

// binaryInto applies the kernel for dst's dtype. dst may alias a.
func (cpu *CPUBackend) binaryInto(dst, a, b *tensor.RawTensor,
	f32 func(x, y float32) float32, f64 func(x, y float64) float64,
) {
	switch dst.DType() {
	case tensor.Float32:
		binaryKernel(dst.AsFloat32(), a.AsFloat32(), b.AsFloat32(), f32, cpu.pcfg)
	case tensor.Float64:
		binaryKernel(dst.AsFloat64(), a.AsFloat64(), b.AsFloat64(), f64, cpu.pcfg)
	default:
		panic(fmt.Sprintf("unsupported dtype %s", dst.DType()))
	}
}
