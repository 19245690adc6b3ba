package autodiff

import "fmt"

// Tape records the operations executed under one gradient transform level
// and replays them in reverse to propagate gradients.
//
// Whether an operation is recorded is decided by the dispatch runtime (the
// operation must consume a live wrapper that requires grad, with gradient
// mode enabled), so the tape itself has no recording switch. A tape is
// walked exactly once, after its level has been popped from the transform
// stack; operations executed while walking it therefore record onto the
// tapes of the levels that remain active.
type Tape struct {
	operations []Operation // Recorded operations (in execution order)
}

// NewTape creates an empty tape.
func NewTape() *Tape {
	return &Tape{
		operations: make([]Operation, 0, 64), // Pre-allocate for common case
	}
}

// Record appends an operation to the tape.
func (t *Tape) Record(op Operation) {
	t.operations = append(t.operations, op)
}

// Len returns the number of recorded operations.
func (t *Tape) Len() int {
	return len(t.operations)
}

// Backward propagates gradients from the seed values back through the
// recorded operations.
//
// Algorithm:
//  1. Start from seeds: a map from output values to their incoming
//     gradients (typically ones for a scalar result)
//  2. Walk operations in reverse order
//  3. For each operation with a gradient on its output, compute input
//     gradients using the chain rule
//  4. Accumulate gradients when the same value is used multiple times
//
// Returns a map from each reached value to its accumulated gradient.
func (t *Tape) Backward(ar Arithmetic, seeds map[Value]Value) map[Value]Value {
	grads := make(map[Value]Value, len(seeds))
	for k, v := range seeds {
		grads[k] = v
	}

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		inputGrads := computeInputGrads(op, grads, ar)
		if inputGrads == nil {
			continue
		}
		accumulateGrads(op, inputGrads, grads, ar)
	}

	return grads
}

// computeInputGrads computes gradients for an operation's inputs.
// Returns nil if no gradient flows to this operation.
func computeInputGrads(op Operation, grads map[Value]Value, ar Arithmetic) []Value {
	if multiOp, isMulti := op.(MultiOutputOperation); isMulti {
		outputs := multiOp.Outputs()
		outputGrads, hasAnyGrad := collectOutputGrads(outputs, grads)
		if !hasAnyGrad {
			return nil
		}
		// Outputs without gradients keep nil entries; the operation
		// decides whether to materialize zeros.
		return multiOp.BackwardMulti(outputGrads, ar)
	}

	outputGrad, hasGrad := grads[op.Output()]
	if !hasGrad || outputGrad == nil {
		return nil
	}
	return op.Backward(outputGrad, ar)
}

// collectOutputGrads collects gradients for all outputs of a multi-output operation.
func collectOutputGrads(outputs []Value, grads map[Value]Value) ([]Value, bool) {
	outputGrads := make([]Value, len(outputs))
	hasAnyGrad := false
	for j, out := range outputs {
		if out == nil {
			continue
		}
		if grad, exists := grads[out]; exists && grad != nil {
			outputGrads[j] = grad
			hasAnyGrad = true
		}
	}
	return outputGrads, hasAnyGrad
}

// accumulateGrads accumulates gradients into the grads map for each input.
func accumulateGrads(op Operation, inputGrads []Value, grads map[Value]Value, ar Arithmetic) {
	inputs := op.Inputs()
	if len(inputGrads) != len(inputs) {
		panic(fmt.Sprintf("autodiff: operation %T returned %d gradients for %d inputs",
			op, len(inputGrads), len(inputs)))
	}
	for j, input := range inputs {
		inputGrad := inputGrads[j]
		if input == nil || inputGrad == nil {
			continue
		}
		if existing, ok := grads[input]; ok && existing != nil {
			grads[input] = ar.Add(existing, inputGrad)
		} else {
			grads[input] = inputGrad
		}
	}
}
