package ops

import "github.com/tangent-ml/tangent/internal/autodiff"

// SumOp represents the full reduction: y = sum(x), a scalar.
//
// Backward pass:
//   - d(sum(x))/dx_i = 1 for every element
//   - grad_input = grad_output broadcast to the input shape
type SumOp struct {
	input  autodiff.Value // x
	output autodiff.Value // sum(x)
}

// NewSumOp creates a new SumOp.
func NewSumOp(input, output autodiff.Value) *SumOp {
	return &SumOp{
		input:  input,
		output: output,
	}
}

// Backward broadcasts the scalar output gradient over the input shape.
func (op *SumOp) Backward(outputGrad autodiff.Value, ar autodiff.Arithmetic) []autodiff.Value {
	gradInput := ar.Mul(ar.OnesLike(op.input), outputGrad)
	return []autodiff.Value{gradInput}
}

// Inputs returns the input value [x].
func (op *SumOp) Inputs() []autodiff.Value {
	return []autodiff.Value{op.input}
}

// Output returns the output value sum(x).
func (op *SumOp) Output() autodiff.Value {
	return op.output
}
