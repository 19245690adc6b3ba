package functional

import (
	"github.com/tangent-ml/tangent/internal/autodiff"
	"github.com/tangent-ml/tangent/internal/autodiff/ops"
	"github.com/tangent-ml/tangent/internal/interp"
	"github.com/tangent-ml/tangent/internal/tensor"
)

// The runtime doubles as the arithmetic gradient tapes compute with, so
// backward passes re-enter the dispatcher and outer layers trace them.
var _ autodiff.Arithmetic = (*Runtime)(nil)

// liftBinary dispatches a binary primitive through the gradient layers.
//
// Only the topmost gradient layer interprets a call: its operands are
// unwrapped at that level, the computation recurses against the remaining
// stack, and the result is wrapped back up. Layers of other kinds are
// transparent to primitives. With no gradient layer live the backend
// computes directly.
func (rt *Runtime) liftBinary(
	raw func(a, b *tensor.RawTensor) *tensor.RawTensor,
	makeOp func(a, b, out autodiff.Value) autodiff.Operation,
	a, b autodiff.Value,
) autodiff.Value {
	a = rt.resolve(a)
	b = rt.resolve(b)

	layer := rt.stack.TopOfKind(interp.Grad)
	if layer == nil {
		return rt.rawBinary(raw, a, b)
	}
	level := layer.Level()

	var out autodiff.Value
	func() {
		defer rt.stack.Lower(layer)()
		out = rt.liftBinary(raw, makeOp, unwrapAt(a, level), unwrapAt(b, level))
	}()

	// Neither operand lives at this level: the layers below already did
	// everything there is to do.
	if !wrappedAt(a, level) && !wrappedAt(b, level) {
		return out
	}

	rg := rt.gradOn && (requiresGradAt(a, level) || requiresGradAt(b, level))
	w := autodiff.Wrap(out, level, rg)
	if rg {
		layer.Tape().Record(makeOp(a, b, w))
	}
	return w
}

// liftUnary is liftBinary for single-operand primitives.
func (rt *Runtime) liftUnary(
	raw func(x *tensor.RawTensor) *tensor.RawTensor,
	makeOp func(in, out autodiff.Value) autodiff.Operation,
	x autodiff.Value,
) autodiff.Value {
	x = rt.resolve(x)

	layer := rt.stack.TopOfKind(interp.Grad)
	if layer == nil {
		return raw(autodiff.Leaf(x))
	}
	level := layer.Level()

	var out autodiff.Value
	func() {
		defer rt.stack.Lower(layer)()
		out = rt.liftUnary(raw, makeOp, unwrapAt(x, level))
	}()

	if !wrappedAt(x, level) {
		return out
	}

	rg := rt.gradOn && requiresGradAt(x, level)
	w := autodiff.Wrap(out, level, rg)
	if rg {
		layer.Tape().Record(makeOp(x, w))
	}
	return w
}

// rawBinary runs a backend kernel on fully unwrapped operands. The first
// operand is pinned for the duration: backends may reuse a uniquely owned
// first operand's buffer in place, and a value some tape still holds must
// never be overwritten.
func (rt *Runtime) rawBinary(raw func(a, b *tensor.RawTensor) *tensor.RawTensor, a, b autodiff.Value) autodiff.Value {
	ra := autodiff.Leaf(a)
	rb := autodiff.Leaf(b)
	defer ra.ForceNonUnique()()
	return raw(ra, rb)
}

func wrappedAt(v autodiff.Value, level int) bool {
	gt, ok := v.(*autodiff.GradTensor)
	return ok && gt.Level() == level
}

func requiresGradAt(v autodiff.Value, level int) bool {
	gt, ok := v.(*autodiff.GradTensor)
	return ok && gt.Level() == level && gt.RequiresGrad()
}

func unwrapAt(v autodiff.Value, level int) autodiff.Value {
	if gt, ok := v.(*autodiff.GradTensor); ok && gt.Level() == level {
		return gt.Inner()
	}
	return v
}

// Add returns the element-wise sum a + b.
func (rt *Runtime) Add(a, b autodiff.Value) autodiff.Value {
	return rt.liftBinary(rt.backend.Add, func(x, y, out autodiff.Value) autodiff.Operation {
		return ops.NewAddOp(x, y, out)
	}, a, b)
}

// Sub returns the element-wise difference a - b.
func (rt *Runtime) Sub(a, b autodiff.Value) autodiff.Value {
	return rt.liftBinary(rt.backend.Sub, func(x, y, out autodiff.Value) autodiff.Operation {
		return ops.NewSubOp(x, y, out)
	}, a, b)
}

// Mul returns the element-wise product a * b.
func (rt *Runtime) Mul(a, b autodiff.Value) autodiff.Value {
	return rt.liftBinary(rt.backend.Mul, func(x, y, out autodiff.Value) autodiff.Operation {
		return ops.NewMulOp(x, y, out)
	}, a, b)
}

// Div returns the element-wise quotient a / b.
func (rt *Runtime) Div(a, b autodiff.Value) autodiff.Value {
	return rt.liftBinary(rt.backend.Div, func(x, y, out autodiff.Value) autodiff.Operation {
		return ops.NewDivOp(x, y, out)
	}, a, b)
}

// Neg returns the element-wise negation -x.
func (rt *Runtime) Neg(x autodiff.Value) autodiff.Value {
	return rt.liftUnary(rt.backend.Neg, func(in, out autodiff.Value) autodiff.Operation {
		return ops.NewNegOp(in, out)
	}, x)
}

// Scale returns x multiplied by a constant. The constant receives no
// gradient.
func (rt *Runtime) Scale(x autodiff.Value, c float64) autodiff.Value {
	return rt.liftUnary(
		func(r *tensor.RawTensor) *tensor.RawTensor { return rt.backend.Scale(r, c) },
		func(in, out autodiff.Value) autodiff.Operation { return ops.NewScaleOp(in, c, out) },
		x,
	)
}

// Exp returns the element-wise exponential e^x.
func (rt *Runtime) Exp(x autodiff.Value) autodiff.Value {
	return rt.liftUnary(rt.backend.Exp, func(in, out autodiff.Value) autodiff.Operation {
		return ops.NewExpOp(in, out)
	}, x)
}

// Log returns the element-wise natural logarithm ln(x).
func (rt *Runtime) Log(x autodiff.Value) autodiff.Value {
	return rt.liftUnary(rt.backend.Log, func(in, out autodiff.Value) autodiff.Operation {
		return ops.NewLogOp(in, out)
	}, x)
}

// Sqrt returns the element-wise square root of x.
func (rt *Runtime) Sqrt(x autodiff.Value) autodiff.Value {
	return rt.liftUnary(rt.backend.Sqrt, func(in, out autodiff.Value) autodiff.Operation {
		return ops.NewSqrtOp(in, out)
	}, x)
}

// Cos returns the element-wise cosine of x.
func (rt *Runtime) Cos(x autodiff.Value) autodiff.Value {
	return rt.liftUnary(rt.backend.Cos, func(in, out autodiff.Value) autodiff.Operation {
		return ops.NewCosOp(in, out)
	}, x)
}

// Sin returns the element-wise sine of x.
func (rt *Runtime) Sin(x autodiff.Value) autodiff.Value {
	return rt.liftUnary(rt.backend.Sin, func(in, out autodiff.Value) autodiff.Operation {
		return ops.NewSinOp(in, out)
	}, x)
}

// Tanh returns the element-wise hyperbolic tangent of x.
func (rt *Runtime) Tanh(x autodiff.Value) autodiff.Value {
	return rt.liftUnary(rt.backend.Tanh, func(in, out autodiff.Value) autodiff.Operation {
		return ops.NewTanhOp(in, out)
	}, x)
}

// Sum reduces x to a scalar holding the sum of all its elements.
func (rt *Runtime) Sum(x autodiff.Value) autodiff.Value {
	return rt.liftUnary(rt.backend.Sum, func(in, out autodiff.Value) autodiff.Operation {
		return ops.NewSumOp(in, out)
	}, x)
}

// Mean reduces x to a scalar holding the arithmetic mean of its elements.
func (rt *Runtime) Mean(x autodiff.Value) autodiff.Value {
	return rt.Scale(rt.Sum(x), 1/float64(x.NumElements()))
}
