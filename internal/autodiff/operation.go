package autodiff

// Arithmetic is the operation surface backward passes compute with.
//
// It is implemented by the dispatch runtime itself rather than a raw
// backend: gradient arithmetic re-enters the dispatcher, so operations
// executed during a backward pass are visible to whatever transform levels
// are still on the stack. That is what makes gradients of gradients work
// without any special casing.
//
// Binary operations take operands of equal shapes, or one scalar operand.
type Arithmetic interface {
	Add(a, b Value) Value
	Sub(a, b Value) Value
	Mul(a, b Value) Value
	Div(a, b Value) Value
	Neg(x Value) Value
	Scale(x Value, c float64) Value
	Sin(x Value) Value
	Cos(x Value) Value
	Sum(x Value) Value
	OnesLike(x Value) Value
	ZerosLike(x Value) Value
}

// Operation represents one differentiable step recorded during a forward
// pass. Operations store the operand values exactly as the forward pass saw
// them, wrappers included. By the time Backward runs, the operation's level
// has been popped, so stored wrappers are dead and arithmetic through them
// lands at whatever levels remain active.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// The returned slice aligns with Inputs(); a nil entry means no
	// gradient flows to that input.
	Backward(outputGrad Value, ar Arithmetic) []Value

	// Inputs returns the input values of this operation. Entries may be
	// nil for operands that are constant at the operation's level.
	Inputs() []Value

	// Output returns the output value produced by this operation.
	Output() Value
}

// MultiOutputOperation represents an operation that produces multiple
// outputs, such as a custom function call. The tape collects gradients for
// ALL outputs before calling BackwardMulti.
type MultiOutputOperation interface {
	Operation

	// Outputs returns all output values produced by this operation.
	Outputs() []Value

	// BackwardMulti computes input gradients given gradients for ALL
	// outputs. outputGrads aligns with Outputs(); a nil entry means that
	// output received no gradient.
	BackwardMulti(outputGrads []Value, ar Arithmetic) []Value
}
