package ops

import "github.com/tangent-ml/tangent/internal/autodiff"

// TanhOp represents the hyperbolic tangent operation: y = tanh(x).
//
// Backward pass:
//   - d(tanh(x))/dx = 1 - tanh(x)^2, reusing the saved output
//   - grad_input = grad_output * (1 - output^2)
type TanhOp struct {
	input  autodiff.Value // x
	output autodiff.Value // tanh(x)
}

// NewTanhOp creates a new TanhOp.
func NewTanhOp(input, output autodiff.Value) *TanhOp {
	return &TanhOp{
		input:  input,
		output: output,
	}
}

// Backward computes the input gradient for tanh, reusing the forward output.
func (op *TanhOp) Backward(outputGrad autodiff.Value, ar autodiff.Arithmetic) []autodiff.Value {
	ones := ar.OnesLike(op.output)
	gradInput := ar.Mul(outputGrad, ar.Sub(ones, ar.Mul(op.output, op.output)))
	return []autodiff.Value{gradInput}
}

// Inputs returns the input value [x].
func (op *TanhOp) Inputs() []autodiff.Value {
	return []autodiff.Value{op.input}
}

// Output returns the output value tanh(x).
func (op *TanhOp) Output() autodiff.Value {
	return op.output
}
