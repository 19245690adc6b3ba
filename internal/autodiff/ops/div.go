package ops

import "github.com/tangent-ml/tangent/internal/autodiff"

// DivOp represents an element-wise division operation: output = a / b.
//
// Backward pass:
//   - d(a/b)/da = 1/b, so grad_a = outputGrad / b
//   - d(a/b)/db = -a/b^2, so grad_b = -outputGrad * a / b^2
type DivOp struct {
	inputs []autodiff.Value // [a, b]
	output autodiff.Value   // a / b
}

// NewDivOp creates a new DivOp.
func NewDivOp(a, b, output autodiff.Value) *DivOp {
	return &DivOp{
		inputs: []autodiff.Value{a, b},
		output: output,
	}
}

// Backward computes input gradients for division.
func (op *DivOp) Backward(outputGrad autodiff.Value, ar autodiff.Arithmetic) []autodiff.Value {
	a, b := op.inputs[0], op.inputs[1]

	// grad_a = outputGrad / b
	gradA := reduceLike(ar, ar.Div(outputGrad, b), a)

	// grad_b = -(outputGrad * a) / b^2
	gradB := reduceLike(ar, ar.Neg(ar.Div(ar.Mul(outputGrad, a), ar.Mul(b, b))), b)

	return []autodiff.Value{gradA, gradB}
}

// Inputs returns the input values [a, b].
func (op *DivOp) Inputs() []autodiff.Value {
	return op.inputs
}

// Output returns the output value a / b.
func (op *DivOp) Output() autodiff.Value {
	return op.output
}
