package ops

import "github.com/tangent-ml/tangent/internal/autodiff"

// LogOp represents the natural logarithm operation: y = ln(x).
//
// Backward pass:
//   - d(ln(x))/dx = 1/x
//   - grad_input = grad_output / input
type LogOp struct {
	input  autodiff.Value // x
	output autodiff.Value // ln(x)
}

// NewLogOp creates a new LogOp.
func NewLogOp(input, output autodiff.Value) *LogOp {
	return &LogOp{
		input:  input,
		output: output,
	}
}

// Backward computes the input gradient for log.
func (op *LogOp) Backward(outputGrad autodiff.Value, ar autodiff.Arithmetic) []autodiff.Value {
	gradInput := ar.Div(outputGrad, op.input)
	return []autodiff.Value{gradInput}
}

// Inputs returns the input value [x].
func (op *LogOp) Inputs() []autodiff.Value {
	return []autodiff.Value{op.input}
}

// Output returns the output value ln(x).
func (op *LogOp) Output() autodiff.Value {
	return op.output
}
