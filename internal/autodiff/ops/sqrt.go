package ops

import "github.com/tangent-ml/tangent/internal/autodiff"

// SqrtOp represents the square root operation: y = sqrt(x).
//
// Backward pass:
//   - d(sqrt(x))/dx = 1 / (2 * sqrt(x)), reusing the saved output
//   - grad_input = 0.5 * grad_output / output
type SqrtOp struct {
	input  autodiff.Value // x
	output autodiff.Value // sqrt(x)
}

// NewSqrtOp creates a new SqrtOp.
func NewSqrtOp(input, output autodiff.Value) *SqrtOp {
	return &SqrtOp{
		input:  input,
		output: output,
	}
}

// Backward computes the input gradient for sqrt, reusing the forward output.
func (op *SqrtOp) Backward(outputGrad autodiff.Value, ar autodiff.Arithmetic) []autodiff.Value {
	gradInput := ar.Scale(ar.Div(outputGrad, op.output), 0.5)
	return []autodiff.Value{gradInput}
}

// Inputs returns the input value [x].
func (op *SqrtOp) Inputs() []autodiff.Value {
	return []autodiff.Value{op.input}
}

// Output returns the output value sqrt(x).
func (op *SqrtOp) Output() autodiff.Value {
	return op.output
}
