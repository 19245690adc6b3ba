package ops

import "github.com/tangent-ml/tangent/internal/autodiff"

// MulOp represents an element-wise multiplication operation: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct {
	inputs []autodiff.Value // [a, b]
	output autodiff.Value   // a * b
}

// NewMulOp creates a new MulOp.
func NewMulOp(a, b, output autodiff.Value) *MulOp {
	return &MulOp{
		inputs: []autodiff.Value{a, b},
		output: output,
	}
}

// Backward computes input gradients for multiplication.
func (op *MulOp) Backward(outputGrad autodiff.Value, ar autodiff.Arithmetic) []autodiff.Value {
	a, b := op.inputs[0], op.inputs[1]

	gradA := reduceLike(ar, ar.Mul(outputGrad, b), a)
	gradB := reduceLike(ar, ar.Mul(outputGrad, a), b)

	return []autodiff.Value{gradA, gradB}
}

// Inputs returns the input values [a, b].
func (op *MulOp) Inputs() []autodiff.Value {
	return op.inputs
}

// Output returns the output value a * b.
func (op *MulOp) Output() autodiff.Value {
	return op.output
}
