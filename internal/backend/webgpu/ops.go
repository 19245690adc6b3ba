package webgpu

import (
	"github.com/tangent-ml/tangent/internal/tensor"
)

// Add performs element-wise addition on GPU.
func (b *Backend) Add(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runBinaryOp(a, other, "add", addShader)
	if err != nil {
		panic("webgpu: Add: " + err.Error())
	}
	return result
}

// Sub performs element-wise subtraction on GPU.
func (b *Backend) Sub(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runBinaryOp(a, other, "sub", subShader)
	if err != nil {
		panic("webgpu: Sub: " + err.Error())
	}
	return result
}

// Mul performs element-wise multiplication on GPU.
func (b *Backend) Mul(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runBinaryOp(a, other, "mul", mulShader)
	if err != nil {
		panic("webgpu: Mul: " + err.Error())
	}
	return result
}

// Div performs element-wise division on GPU.
func (b *Backend) Div(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runBinaryOp(a, other, "div", divShader)
	if err != nil {
		panic("webgpu: Div: " + err.Error())
	}
	return result
}

// Neg performs element-wise negation on GPU.
func (b *Backend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "neg", negShader, unaryParams(x.NumElements()))
	if err != nil {
		panic("webgpu: Neg: " + err.Error())
	}
	return result
}

// Scale multiplies every element by a constant on GPU.
func (b *Backend) Scale(x *tensor.RawTensor, c float64) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "scale", scaleShader, scaleParams(x.NumElements(), c))
	if err != nil {
		panic("webgpu: Scale: " + err.Error())
	}
	return result
}

// Exp performs element-wise exponential on GPU.
func (b *Backend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "exp", expShader, unaryParams(x.NumElements()))
	if err != nil {
		panic("webgpu: Exp: " + err.Error())
	}
	return result
}

// Log performs element-wise natural logarithm on GPU.
func (b *Backend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "log", logShader, unaryParams(x.NumElements()))
	if err != nil {
		panic("webgpu: Log: " + err.Error())
	}
	return result
}

// Sqrt performs element-wise square root on GPU.
func (b *Backend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "sqrt", sqrtShader, unaryParams(x.NumElements()))
	if err != nil {
		panic("webgpu: Sqrt: " + err.Error())
	}
	return result
}

// Cos performs element-wise cosine on GPU.
func (b *Backend) Cos(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "cos", cosShader, unaryParams(x.NumElements()))
	if err != nil {
		panic("webgpu: Cos: " + err.Error())
	}
	return result
}

// Sin performs element-wise sine on GPU.
func (b *Backend) Sin(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "sin", sinShader, unaryParams(x.NumElements()))
	if err != nil {
		panic("webgpu: Sin: " + err.Error())
	}
	return result
}

// Tanh performs element-wise hyperbolic tangent on GPU.
func (b *Backend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "tanh", tanhShader, unaryParams(x.NumElements()))
	if err != nil {
		panic("webgpu: Tanh: " + err.Error())
	}
	return result
}

// Sum reduces the tensor to a scalar holding the sum of all elements.
// The reduction runs on the host: tensors live in host memory between
// dispatches, and a single pass over the data is cheaper than another
// round trip through the GPU.
func (b *Backend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		panic("webgpu: Sum: only float32 is supported, got " + x.DType().String())
	}

	total := 0.0
	for _, v := range x.AsFloat32() {
		total += float64(v)
	}

	result, err := tensor.NewRaw(tensor.Shape{}, tensor.Float32, tensor.WebGPU)
	if err != nil {
		panic("webgpu: Sum: " + err.Error())
	}
	result.AsFloat32()[0] = float32(total)
	return result
}
