package ops

import "github.com/tangent-ml/tangent/internal/autodiff"

// CosOp represents the cosine operation: y = cos(x).
//
// Backward pass:
//   - d(cos(x))/dx = -sin(x)
//   - grad_input = -grad_output * sin(input)
type CosOp struct {
	input  autodiff.Value // x
	output autodiff.Value // cos(x)
}

// NewCosOp creates a new CosOp.
func NewCosOp(input, output autodiff.Value) *CosOp {
	return &CosOp{
		input:  input,
		output: output,
	}
}

// Backward computes the input gradient for cos.
func (op *CosOp) Backward(outputGrad autodiff.Value, ar autodiff.Arithmetic) []autodiff.Value {
	gradInput := ar.Neg(ar.Mul(outputGrad, ar.Sin(op.input)))
	return []autodiff.Value{gradInput}
}

// Inputs returns the input value [x].
func (op *CosOp) Inputs() []autodiff.Value {
	return []autodiff.Value{op.input}
}

// Output returns the output value cos(x).
func (op *CosOp) Output() autodiff.Value {
	return op.output
}
