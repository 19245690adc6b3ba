// Package functional implements the dispatch runtime that lets custom
// differentiable functions compose with functional transforms.
//
// A custom function bundles a forward computation with a hand-written
// backward rule (see Function). Calling it through Runtime.Apply makes it a
// first-class citizen of the transform system: with no transforms active the
// forward runs directly, and under an active transform the handler
// registered for the transform's kind interprets the call.
//
// The gradient handler is the only complete rule. It synthesizes a
// single-level view of the function: arguments lose their wrappers for the
// handler's level, the call re-dispatches against the remaining transform
// stack, and fresh wrappers go back on the outputs, with output slots that
// pass an input through untouched keeping the caller's original wrapper
// object. Handlers for the batching, forward-mode and functionalization
// transforms are registered but fail loudly until their rules exist.
//
// The same mechanism drives the runtime's primitive operations (Add, Mul,
// Sin, ...), so custom functions and primitives mix freely under nested
// transforms:
//
//	rt := functional.NewRuntime(cpu.New())
//	ddf := rt.Grad(rt.Grad(func(x autodiff.Value) autodiff.Value {
//		return rt.Sin(x)
//	}))
//	// ddf(x) = -sin(x)
package functional
