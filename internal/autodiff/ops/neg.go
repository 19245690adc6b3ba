package ops

import "github.com/tangent-ml/tangent/internal/autodiff"

// NegOp represents an element-wise negation operation: output = -x.
//
// Backward pass: d(-x)/dx = -1, so grad_input = -outputGrad.
type NegOp struct {
	input  autodiff.Value // x
	output autodiff.Value // -x
}

// NewNegOp creates a new NegOp.
func NewNegOp(input, output autodiff.Value) *NegOp {
	return &NegOp{
		input:  input,
		output: output,
	}
}

// Backward computes the input gradient for negation.
func (op *NegOp) Backward(outputGrad autodiff.Value, ar autodiff.Arithmetic) []autodiff.Value {
	return []autodiff.Value{ar.Neg(outputGrad)}
}

// Inputs returns the input value [x].
func (op *NegOp) Inputs() []autodiff.Value {
	return []autodiff.Value{op.input}
}

// Output returns the output value -x.
func (op *NegOp) Output() autodiff.Value {
	return op.output
}
