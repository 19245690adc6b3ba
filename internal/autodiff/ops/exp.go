package ops

import "github.com/tangent-ml/tangent/internal/autodiff"

// ExpOp represents the exponential operation: y = exp(x).
//
// Backward pass:
//   - d(exp(x))/dx = exp(x), which is the saved output
//   - grad_input = grad_output * output
type ExpOp struct {
	input  autodiff.Value // x
	output autodiff.Value // exp(x)
}

// NewExpOp creates a new ExpOp.
func NewExpOp(input, output autodiff.Value) *ExpOp {
	return &ExpOp{
		input:  input,
		output: output,
	}
}

// Backward computes the input gradient for exp, reusing the forward output.
func (op *ExpOp) Backward(outputGrad autodiff.Value, ar autodiff.Arithmetic) []autodiff.Value {
	gradInput := ar.Mul(outputGrad, op.output)
	return []autodiff.Value{gradInput}
}

// Inputs returns the input value [x].
func (op *ExpOp) Inputs() []autodiff.Value {
	return []autodiff.Value{op.input}
}

// Output returns the output value exp(x).
func (op *ExpOp) Output() autodiff.Value {
	return op.output
}
