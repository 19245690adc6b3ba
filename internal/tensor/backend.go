package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// The operation set is the closure of the runtime's differentiable
// primitives under their own gradients: every backward pass is again
// expressible with these operations, which is what lets gradients of
// gradients dispatch through the same backend.
//
// Binary operations take operands of equal shapes, or one scalar operand
// broadcast against the other. Backends panic on shape or dtype misuse;
// the semantic contract is validated above them.
//
// Implementations:
//   - CPU: Pure Go with chunked parallel loops
//   - WebGPU: Native GPU via WGSL compute kernels (float32 only)
type Backend interface {
	// Element-wise binary operations
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Element-wise unary operations
	Neg(x *RawTensor) *RawTensor              // negation
	Scale(x *RawTensor, c float64) *RawTensor // multiply by scalar constant
	Exp(x *RawTensor) *RawTensor              // exponential
	Log(x *RawTensor) *RawTensor              // natural logarithm
	Sqrt(x *RawTensor) *RawTensor             // square root
	Cos(x *RawTensor) *RawTensor              // cosine
	Sin(x *RawTensor) *RawTensor              // sine
	Tanh(x *RawTensor) *RawTensor             // hyperbolic tangent

	// Reduction operations
	Sum(x *RawTensor) *RawTensor // total sum (scalar result)

	// Metadata
	Name() string
	Device() Device
}
