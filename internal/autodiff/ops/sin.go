package ops

import "github.com/tangent-ml/tangent/internal/autodiff"

// SinOp represents the sine operation: y = sin(x).
//
// Backward pass:
//   - d(sin(x))/dx = cos(x)
//   - grad_input = grad_output * cos(input)
type SinOp struct {
	input  autodiff.Value // x
	output autodiff.Value // sin(x)
}

// NewSinOp creates a new SinOp.
func NewSinOp(input, output autodiff.Value) *SinOp {
	return &SinOp{
		input:  input,
		output: output,
	}
}

// Backward computes the input gradient for sin.
func (op *SinOp) Backward(outputGrad autodiff.Value, ar autodiff.Arithmetic) []autodiff.Value {
	gradInput := ar.Mul(outputGrad, ar.Cos(op.input))
	return []autodiff.Value{gradInput}
}

// Inputs returns the input value [x].
func (op *SinOp) Inputs() []autodiff.Value {
	return []autodiff.Value{op.input}
}

// Output returns the output value sin(x).
func (op *SinOp) Output() autodiff.Value {
	return op.output
}
