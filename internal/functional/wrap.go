package functional

import (
	"github.com/tangent-ml/tangent/internal/autodiff"
	"github.com/tangent-ml/tangent/internal/pytree"
)

// wrapResult is what the gradient handler gets back after wrapping the
// outputs of a synthesized single-level call.
type wrapResult struct {
	// output is the call's output tree with level wrappers applied.
	output any
	// fresh lists the newly created wrappers, in flattened output order.
	fresh []autodiff.Value
	// gradSlots maps each tensor leaf of the flattened output to its
	// index in fresh, or -1 for identity-preserved slots.
	gradSlots []int
}

// wrapOutputs puts level wrappers on the tensor leaves of a call's output.
//
// Identity preservation: an output leaf that IS one of the unwrapped input
// leaves (pointer identity) is replaced by the caller's original input
// object instead of a fresh wrapper. The original already carries this
// level's wrapper, so downstream consumers accumulate gradient directly on
// the shared object; the slot stays off the recorded operation's outputs
// and its entry in the backward gradient vector stays nil.
//
// The identity map is positional: unwrapped input leaves are indexed by
// their flattened position, and for a leaf passed in more than once the
// first position wins. unwrappedArgs and originalArgs have identical
// structure, so positions address both.
//
// Non-tensor output leaves pass through untouched.
func wrapOutputs(output any, unwrappedArgs, originalArgs []any, level int, requiresGrad bool) wrapResult {
	flatUnwrapped, _ := pytree.Flatten(unwrappedArgs)
	flatOriginal, _ := pytree.Flatten(originalArgs)

	identity := make(map[autodiff.Value]int, len(flatUnwrapped))
	for i, leaf := range flatUnwrapped {
		v, ok := leaf.(autodiff.Value)
		if !ok {
			continue
		}
		if _, exists := identity[v]; !exists {
			identity[v] = i
		}
	}

	res := wrapResult{}
	res.output = pytree.Map(func(leaf any) any {
		v, ok := leaf.(autodiff.Value)
		if !ok {
			return leaf
		}
		if idx, hit := identity[v]; hit {
			res.gradSlots = append(res.gradSlots, -1)
			return flatOriginal[idx]
		}
		w := autodiff.Wrap(v, level, requiresGrad)
		res.gradSlots = append(res.gradSlots, len(res.fresh))
		res.fresh = append(res.fresh, w)
		return w
	}, output)

	return res
}

// tensorLeaves returns the tensor values among a tree's flattened leaves,
// in flattening order.
func tensorLeaves(tree any) []autodiff.Value {
	flat, _ := pytree.Flatten(tree)
	leaves := make([]autodiff.Value, 0, len(flat))
	for _, leaf := range flat {
		if v, ok := leaf.(autodiff.Value); ok {
			leaves = append(leaves, v)
		}
	}
	return leaves
}
