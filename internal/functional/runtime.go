package functional

import (
	"github.com/tangent-ml/tangent/internal/autodiff"
	"github.com/tangent-ml/tangent/internal/interp"
	"github.com/tangent-ml/tangent/internal/tensor"
)

// Runtime owns a transform stack, a handler table and a compute backend,
// and dispatches every operation through them.
//
// A Runtime and the values it produces belong to a single goroutine. The
// scoped push/lower discipline of the transform stack has no meaning across
// concurrent callers; create one Runtime per goroutine instead of sharing.
type Runtime struct {
	backend  tensor.Backend
	stack    *interp.Stack
	handlers map[interp.Kind]Handler

	gradOn      bool
	singleLevel bool
}

// NewRuntime creates a runtime computing on the given backend, with the
// gradient rule and the loud placeholder rules for the remaining transform
// kinds already registered.
func NewRuntime(b tensor.Backend) *Runtime {
	rt := &Runtime{
		backend:  b,
		stack:    interp.NewStack(),
		handlers: make(map[interp.Kind]Handler),
		gradOn:   true,
	}
	rt.RegisterHandler(interp.Grad, gradHandler)
	rt.RegisterHandler(interp.Vmap, unsupportedHandler)
	rt.RegisterHandler(interp.Jvp, unsupportedHandler)
	rt.RegisterHandler(interp.Functionalize, unsupportedHandler)
	return rt
}

// Backend returns the compute backend the runtime bottoms out on.
func (rt *Runtime) Backend() tensor.Backend {
	return rt.backend
}

// RegisterHandler installs the rule that interprets custom function calls
// under the given transform kind, replacing any previous handler.
func (rt *Runtime) RegisterHandler(kind interp.Kind, h Handler) {
	rt.handlers[kind] = h
}

// PushTransform activates a transform layer of the given kind and returns
// the function that deactivates it (use defer). Grad layers are normally
// managed by Grad and GradAndValue; this hook exists for rules under
// development and for tests.
func (rt *Runtime) PushTransform(kind interp.Kind) func() {
	_, pop := rt.stack.Push(kind)
	return pop
}

// TransformDepth returns the number of transform layers currently active.
func (rt *Runtime) TransformDepth() int {
	return rt.stack.Depth()
}

// GradEnabled reports whether operations currently record gradients.
func (rt *Runtime) GradEnabled() bool {
	return rt.gradOn
}

// EnableGrad turns gradient recording on and returns the restore function
// (use defer).
func (rt *Runtime) EnableGrad() func() {
	return rt.setGrad(true)
}

// NoGrad turns gradient recording off and returns the restore function
// (use defer). Operations inside the scope execute normally but leave no
// trace on any gradient tape.
func (rt *Runtime) NoGrad() func() {
	return rt.setGrad(false)
}

func (rt *Runtime) setGrad(on bool) func() {
	prev := rt.gradOn
	rt.gradOn = on
	return func() { rt.gradOn = prev }
}

// InSingleLevel reports whether the runtime is inside the synthesized
// single-level call of a custom function, i.e. between a gradient handler
// unwrapping the arguments and rewrapping the outputs. Rules under
// development can consult it to tell a user-level call from a re-dispatch.
func (rt *Runtime) InSingleLevel() bool {
	return rt.singleLevel
}

func (rt *Runtime) beginSingleLevel() func() {
	prev := rt.singleLevel
	rt.singleLevel = true
	return func() { rt.singleLevel = prev }
}

// resolve peels dead wrappers off a value. A wrapper whose level is no
// longer in view on the stack belongs to a finished (or lowered) transform
// and is transparent from here on.
func (rt *Runtime) resolve(v autodiff.Value) autodiff.Value {
	for {
		g, ok := v.(*autodiff.GradTensor)
		if !ok || rt.stack.Live(g.Level()) {
			return v
		}
		v = g.Inner()
	}
}

// resolveLeaf applies resolve to tensor leaves inside operand trees,
// passing every other leaf through.
func (rt *Runtime) resolveLeaf(leaf any) any {
	if v, ok := leaf.(autodiff.Value); ok {
		return rt.resolve(v)
	}
	return leaf
}
