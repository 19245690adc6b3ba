package functional

import (
	"fmt"

	"github.com/tangent-ml/tangent/internal/autodiff"
)

// callOperation is the tape record of one interpreted custom function call.
// It is the runtime's only multi-output operation: a custom function may
// return several tensors, each wrapped separately.
type callOperation struct {
	rt  *Runtime
	fn  Function
	ctx *Context

	// inputs holds the tensor leaves of the call's arguments, exactly as
	// the caller passed them. Gradients returned by the function's
	// Backward accumulate onto these objects.
	inputs []autodiff.Value
	// outputs holds the freshly wrapped output leaves. Identity-preserved
	// slots are excluded: their gradient reaches the shared input object
	// through downstream consumers without passing through this record.
	outputs []autodiff.Value
	// gradSlots maps each tensor leaf of the flattened output to its
	// index in outputs, or -1 for identity-preserved slots.
	gradSlots []int
}

func newCallOperation(rt *Runtime, fn Function, ctx *Context, inputs, outputs []autodiff.Value, gradSlots []int) *callOperation {
	return &callOperation{
		rt:        rt,
		fn:        fn,
		ctx:       ctx,
		inputs:    inputs,
		outputs:   outputs,
		gradSlots: gradSlots,
	}
}

func (op *callOperation) Inputs() []autodiff.Value {
	return op.inputs
}

func (op *callOperation) Output() autodiff.Value {
	if len(op.outputs) == 0 {
		return nil
	}
	return op.outputs[0]
}

func (op *callOperation) Outputs() []autodiff.Value {
	return op.outputs
}

// BackwardMulti assembles the per-leaf output gradient vector (nil for
// identity-preserved slots and for outputs no gradient reached) and
// delegates to the function's Backward.
func (op *callOperation) BackwardMulti(outputGrads []autodiff.Value, _ autodiff.Arithmetic) []autodiff.Value {
	gradOutputs := make([]autodiff.Value, len(op.gradSlots))
	for i, slot := range op.gradSlots {
		if slot >= 0 {
			gradOutputs[i] = outputGrads[slot]
		}
	}

	inputGrads := op.fn.Backward(op.rt, op.ctx, gradOutputs)
	if len(inputGrads) != len(op.inputs) {
		panic(fmt.Sprintf("functional: custom function %T returned %d input gradients, want %d",
			op.fn, len(inputGrads), len(op.inputs)))
	}
	return inputGrads
}

// Backward satisfies autodiff.Operation. The tape prefers BackwardMulti for
// multi-output operations, so this path only runs for single-output calls.
func (op *callOperation) Backward(outputGrad autodiff.Value, ar autodiff.Arithmetic) []autodiff.Value {
	return op.BackwardMulti([]autodiff.Value{outputGrad}, ar)
}
