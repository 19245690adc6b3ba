package cpu

import (
	"fmt"
	"math"

	"github.com/tangent-ml/tangent/internal/tensor"
)

// Neg computes element-wise negation: -x.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("neg", x,
		func(v float32) float32 { return -v },
		func(v float64) float64 { return -v })
}

// Scale computes element-wise multiplication by a scalar constant: c * x.
func (cpu *CPUBackend) Scale(x *tensor.RawTensor, c float64) *tensor.RawTensor {
	c32 := float32(c)
	return cpu.unary("scale", x,
		func(v float32) float32 { return c32 * v },
		func(v float64) float64 { return c * v })
}

// Exp computes element-wise exponential: exp(x).
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("exp", x,
		func(v float32) float32 { return float32(math.Exp(float64(v))) },
		math.Exp)
}

// Log computes element-wise natural logarithm: ln(x).
// Non-positive inputs follow IEEE 754 semantics (-Inf or NaN).
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("log", x,
		func(v float32) float32 { return float32(math.Log(float64(v))) },
		math.Log)
}

// Sqrt computes element-wise square root. Negative inputs yield NaN.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("sqrt", x,
		func(v float32) float32 { return float32(math.Sqrt(float64(v))) },
		math.Sqrt)
}

// Cos computes element-wise cosine.
func (cpu *CPUBackend) Cos(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("cos", x,
		func(v float32) float32 { return float32(math.Cos(float64(v))) },
		math.Cos)
}

// Sin computes element-wise sine.
func (cpu *CPUBackend) Sin(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("sin", x,
		func(v float32) float32 { return float32(math.Sin(float64(v))) },
		math.Sin)
}

// Tanh computes element-wise hyperbolic tangent.
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("tanh", x,
		func(v float32) float32 { return float32(math.Tanh(float64(v))) },
		math.Tanh)
}

// unary allocates the result and dispatches the element-wise kernel for a
// unary operation. Unary operations never run inplace.
func (cpu *CPUBackend) unary(name string, x *tensor.RawTensor,
	f32 func(v float32) float32, f64 func(v float64) float64,
) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		unaryKernel(result.AsFloat32(), x.AsFloat32(), f32, cpu.pcfg)
	case tensor.Float64:
		unaryKernel(result.AsFloat64(), x.AsFloat64(), f64, cpu.pcfg)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", name, x.DType()))
	}

	return result
}
