package functional

import (
	"github.com/pkg/errors"

	"github.com/tangent-ml/tangent/internal/autodiff"
	"github.com/tangent-ml/tangent/internal/interp"
)

// Function is a custom differentiable function: a forward computation paired
// with a hand-written backward rule. Implementations are stateless; per-call
// state travels in the Context.
//
// Arguments and results are operand trees: tensor values (autodiff.Value),
// non-tensor leaves, and arbitrary nestings of []any and map[string]any.
type Function interface {
	// Forward computes the function's output from its arguments. Under a
	// gradient transform it runs on the unwrapped view of the arguments,
	// re-dispatching against the transforms that remain below.
	Forward(rt *Runtime, args ...any) any

	// SetupContext runs once per interpreted call, after Forward, with
	// the original arguments and the function's output. It stashes
	// whatever Backward will need; Forward itself must not touch the
	// context.
	SetupContext(ctx *Context, args []any, output any)

	// Backward maps output gradients to input gradients. gradOutputs
	// aligns with the tensor leaves of the flattened output; a nil entry
	// means no gradient flowed to that output (identity outputs receive
	// their gradient directly, so their slots are always nil). The
	// result aligns with the tensor leaves of the flattened arguments,
	// nil where no gradient flows.
	Backward(rt *Runtime, ctx *Context, gradOutputs []autodiff.Value) []autodiff.Value
}

// Context carries values from a function's forward pass to its backward
// pass. One Context serves exactly one interpreted call at one transform
// level; nested levels each get their own.
type Context struct {
	saved []autodiff.Value
	stash map[string]any
}

func newContext() *Context {
	return &Context{}
}

// SaveForBackward stores tensor values for the backward pass.
// Values are saved as Forward saw them; by backward time their wrappers for
// the finished level are dead and arithmetic sees through them.
func (c *Context) SaveForBackward(values ...autodiff.Value) {
	c.saved = append(c.saved, values...)
}

// Saved returns the values stored by SaveForBackward, in order.
func (c *Context) Saved() []autodiff.Value {
	return c.saved
}

// Set stashes an arbitrary non-tensor value under a key.
func (c *Context) Set(key string, value any) {
	if c.stash == nil {
		c.stash = make(map[string]any)
	}
	c.stash[key] = value
}

// Get returns the stashed value for a key.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.stash[key]
	return v, ok
}

// Handler interprets a custom function call under one transform kind.
// The layer is the stack entry the handler serves; args are the call's
// arguments exactly as passed to Apply.
type Handler func(rt *Runtime, layer *interp.Layer, fn Function, args []any) (any, error)

// Apply invokes a custom function through the transform dispatcher.
//
// With no transforms active, the function's Forward runs directly: no
// unwrapping, no context, no overhead beyond the stack check, and outputs
// keep whatever object identity Forward gave them. Otherwise the handler
// registered for the topmost layer's kind interprets the call.
//
// Apply reports transform-level failures as errors; panics inside the
// function itself propagate to the caller with the transform stack
// restored.
func (rt *Runtime) Apply(fn Function, args ...any) (any, error) {
	top := rt.stack.Top()
	if top == nil {
		return fn.Forward(rt, args...), nil
	}

	handler, ok := rt.handlers[top.Kind()]
	if !ok {
		return nil, errors.Wrapf(ErrUnregisteredTransform, "%s at level %d", top.Kind(), top.Level())
	}
	return handler(rt, top, fn, args)
}

// unsupportedHandler stands in for the transform kinds whose custom function
// rules are not implemented yet. It fails before touching any operand, so
// the stack and the arguments are exactly as they were.
func unsupportedHandler(_ *Runtime, layer *interp.Layer, _ Function, _ []any) (any, error) {
	return nil, errors.Wrapf(ErrUnsupportedTransform,
		"applying a custom function under %s at level %d", layer.Kind(), layer.Level())
}
