// Package ops implements the differentiable primitive operations recorded on
// gradient tapes.
//
// Each operation stores the operand values exactly as the forward pass saw
// them, wrappers included, and computes its backward pass through the
// Arithmetic interface. Gradient arithmetic therefore re-enters the dispatch
// runtime: dead wrappers resolve to their inner values and live wrappers are
// traced by the transform levels still on the stack, which is what makes
// nested gradients work.
//
// Supported operations:
//   - AddOp, SubOp, MulOp, DivOp: element-wise arithmetic
//   - NegOp, ScaleOp: negation and multiplication by a constant
//   - SinOp, CosOp, ExpOp, LogOp, SqrtOp, TanhOp: element-wise functions
//   - SumOp: reduction to a scalar
package ops

import "github.com/tangent-ml/tangent/internal/autodiff"

// AddOp represents an element-wise addition operation: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
//
// Note: if a scalar operand was broadcast in the forward pass, its gradient
// is reduced (summed) back to a scalar to match the input shape.
type AddOp struct {
	inputs []autodiff.Value // [a, b]
	output autodiff.Value   // a + b
}

// NewAddOp creates a new AddOp.
func NewAddOp(a, b, output autodiff.Value) *AddOp {
	return &AddOp{
		inputs: []autodiff.Value{a, b},
		output: output,
	}
}

// Backward computes input gradients for addition.
// Since d(a+b)/da = d(a+b)/db = 1, the gradient flows equally to both inputs.
func (op *AddOp) Backward(outputGrad autodiff.Value, ar autodiff.Arithmetic) []autodiff.Value {
	a, b := op.inputs[0], op.inputs[1]

	gradA := reduceLike(ar, outputGrad, a)
	gradB := reduceLike(ar, outputGrad, b)

	return []autodiff.Value{gradA, gradB}
}

// Inputs returns the input values [a, b].
func (op *AddOp) Inputs() []autodiff.Value {
	return op.inputs
}

// Output returns the output value a + b.
func (op *AddOp) Output() autodiff.Value {
	return op.output
}
