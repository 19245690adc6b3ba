package ops

import "github.com/tangent-ml/tangent/internal/autodiff"

// ScaleOp represents multiplication by a scalar constant: output = c * x.
// The constant is not a tensor and receives no gradient.
//
// Backward pass: d(c*x)/dx = c, so grad_input = c * outputGrad.
type ScaleOp struct {
	input  autodiff.Value // x
	c      float64
	output autodiff.Value // c * x
}

// NewScaleOp creates a new ScaleOp.
func NewScaleOp(input autodiff.Value, c float64, output autodiff.Value) *ScaleOp {
	return &ScaleOp{
		input:  input,
		c:      c,
		output: output,
	}
}

// Backward computes the input gradient for scaling.
func (op *ScaleOp) Backward(outputGrad autodiff.Value, ar autodiff.Arithmetic) []autodiff.Value {
	return []autodiff.Value{ar.Scale(outputGrad, op.c)}
}

// Inputs returns the input value [x].
func (op *ScaleOp) Inputs() []autodiff.Value {
	return []autodiff.Value{op.input}
}

// Output returns the output value c * x.
func (op *ScaleOp) Output() autodiff.Value {
	return op.output
}
