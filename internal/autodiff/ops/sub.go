package ops

import "github.com/tangent-ml/tangent/internal/autodiff"

// SubOp represents an element-wise subtraction operation: output = a - b.
//
// Backward pass:
//   - d(a-b)/da = 1, so grad_a = outputGrad
//   - d(a-b)/db = -1, so grad_b = -outputGrad
type SubOp struct {
	inputs []autodiff.Value // [a, b]
	output autodiff.Value   // a - b
}

// NewSubOp creates a new SubOp.
func NewSubOp(a, b, output autodiff.Value) *SubOp {
	return &SubOp{
		inputs: []autodiff.Value{a, b},
		output: output,
	}
}

// Backward computes input gradients for subtraction.
func (op *SubOp) Backward(outputGrad autodiff.Value, ar autodiff.Arithmetic) []autodiff.Value {
	a, b := op.inputs[0], op.inputs[1]

	gradA := reduceLike(ar, outputGrad, a)
	gradB := reduceLike(ar, ar.Neg(outputGrad), b)

	return []autodiff.Value{gradA, gradB}
}

// Inputs returns the input values [a, b].
func (op *SubOp) Inputs() []autodiff.Value {
	return op.inputs
}

// Output returns the output value a - b.
func (op *SubOp) Output() autodiff.Value {
	return op.output
}
