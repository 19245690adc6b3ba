package functional

import (
	"fmt"

	"github.com/tangent-ml/tangent/internal/autodiff"
	"github.com/tangent-ml/tangent/internal/interp"
	"github.com/tangent-ml/tangent/internal/pytree"
	"github.com/tangent-ml/tangent/internal/tensor"
)

// gradHandler interprets a custom function call under a gradient layer by
// synthesizing a single-level call: unwrap the arguments at this layer's
// level, re-dispatch the function against the remaining stack with gradients
// enabled, wrap the outputs back up, then let the function stash its
// backward state and record the call on the layer's tape.
//
// The re-dispatch sees one fewer transform, so with nested gradient layers
// each handler invocation strips exactly one level and the function's
// Forward ultimately runs on values it can compute with.
func gradHandler(rt *Runtime, layer *interp.Layer, fn Function, args []any) (any, error) {
	defer rt.beginSingleLevel()()

	level := layer.Level()

	// Peel dead wrappers once up front so the identity map built from the
	// unwrapped leaves compares live objects only.
	resolved := pytree.Map(rt.resolveLeaf, args).([]any)

	recording := rt.gradOn && anyRequiresGrad(resolved, level)

	unwrapped := pytree.Map(func(leaf any) any {
		if gt, ok := leaf.(*autodiff.GradTensor); ok && gt.Level() == level {
			return gt.Inner()
		}
		return leaf
	}, resolved).([]any)

	var out any
	var err error
	func() {
		defer rt.stack.Lower(layer)()
		defer rt.EnableGrad()()
		out, err = rt.Apply(fn, unwrapped...)
	}()
	if err != nil {
		return nil, err
	}

	res := wrapOutputs(out, unwrapped, resolved, level, recording)

	ctx := newContext()
	fn.SetupContext(ctx, resolved, res.output)

	// Nothing to record when every output kept its input's identity: any
	// gradient flows through the shared objects directly.
	if recording && len(res.fresh) > 0 {
		layer.Tape().Record(newCallOperation(rt, fn, ctx, tensorLeaves(resolved), res.fresh, res.gradSlots))
	}

	return res.output, nil
}

func anyRequiresGrad(tree any, level int) bool {
	flat, _ := pytree.Flatten(tree)
	for _, leaf := range flat {
		if gt, ok := leaf.(*autodiff.GradTensor); ok && gt.Level() == level && gt.RequiresGrad() {
			return true
		}
	}
	return false
}

// Grad transforms a scalar-valued function of one tensor into a function
// computing its gradient. Transforms nest: Grad(Grad(f)) computes the
// second derivative, and a Grad-transformed function can run under further
// Grad layers pushed by its caller.
//
// The returned function panics if f's output is not a single-element tensor.
func (rt *Runtime) Grad(f func(autodiff.Value) autodiff.Value) func(autodiff.Value) autodiff.Value {
	gv := rt.GradAndValue(f)
	return func(x autodiff.Value) autodiff.Value {
		g, _ := gv(x)
		return g
	}
}

// GradAndValue is Grad, but the returned function also reports f's value so
// a caller needing both does not pay for two forward passes.
func (rt *Runtime) GradAndValue(f func(autodiff.Value) autodiff.Value) func(autodiff.Value) (grad, value autodiff.Value) {
	return func(x autodiff.Value) (autodiff.Value, autodiff.Value) {
		layer, pop := rt.stack.Push(interp.Grad)
		popped := false
		defer func() {
			if !popped {
				pop()
			}
		}()

		// The transform computes gradients no matter what grad mode the
		// caller is in; NoGrad scopes inside f still suppress recording.
		defer rt.EnableGrad()()

		wx := autodiff.Wrap(rt.resolve(x), layer.Level(), true)

		out := f(wx)
		if out == nil {
			panic("functional: gradient of a function that returned no tensor")
		}
		if n := out.NumElements(); n != 1 {
			panic(fmt.Sprintf("functional: gradient requires a scalar-valued function, got output shape %v", out.Shape()))
		}

		// The layer comes off the stack before its tape runs, so the
		// backward arithmetic executes at the remaining levels and outer
		// gradient layers trace it. That is what makes nesting yield true
		// higher-order derivatives.
		popped = true
		pop()

		seed := rt.OnesLike(out)
		grads := layer.Tape().Backward(rt, map[autodiff.Value]autodiff.Value{out: seed})

		g, ok := grads[wx]
		if !ok || g == nil {
			g = rt.ZerosLike(x)
		}
		return g, rt.resolve(out)
	}
}

// ZerosLike returns a raw tensor of zeros matching a value's underlying
// shape, dtype and device.
func (rt *Runtime) ZerosLike(v autodiff.Value) autodiff.Value {
	return tensor.ZerosLike(autodiff.Leaf(v))
}

// OnesLike returns a raw tensor of ones matching a value's underlying
// shape, dtype and device.
func (rt *Runtime) OnesLike(v autodiff.Value) autodiff.Value {
	return tensor.OnesLike(autodiff.Leaf(v))
}
