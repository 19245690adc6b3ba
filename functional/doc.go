// Copyright 2026 Tangent ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package functional provides composable function transforms over tensors.
//
// # Overview
//
// A Runtime interprets tensor programs under a stack of transforms. Each
// transform wraps tensors at a numbered level; primitives peel one level,
// compute underneath, and wrap the result back. This package provides:
//   - Runtime: the interpreter owning the transform stack
//   - Grad / GradAndValue: reverse-mode differentiation as a transform
//   - Function: user-defined operations with custom backward rules
//   - Apply: dispatching a Function through the active transforms
//
// # Basic Usage
//
//	import (
//	    "github.com/tangent-ml/tangent/backend/cpu"
//	    "github.com/tangent-ml/tangent/functional"
//	    "github.com/tangent-ml/tangent/tensor"
//	)
//
//	func main() {
//	    rt := functional.New(cpu.New())
//
//	    f := func(x functional.Value) functional.Value {
//	        return rt.Mul(x, x)
//	    }
//
//	    x := tensor.Scalar(3.0, tensor.CPU)
//	    g := rt.Grad(f)(x)                  // 6
//	    gg := rt.Grad(rt.Grad(f))(x)        // 2
//	}
//
// Transforms compose: rt.Grad(rt.Grad(f)) computes a second derivative by
// running one Grad transform inside another.
//
// # Custom Functions
//
// A Function bundles a forward computation with its own backward rule.
// Apply dispatches it through whatever transforms are active, so a custom
// function differentiates and composes exactly like a built-in primitive:
//
//	type square struct{}
//
//	func (square) Forward(rt *functional.Runtime, args ...any) any {
//	    x := args[0].(functional.Value)
//	    return rt.Mul(x, x)
//	}
//
//	func (square) SetupContext(ctx *functional.Context, args []any, output any) {
//	    ctx.SaveForBackward(args[0].(functional.Value))
//	}
//
//	func (square) Backward(rt *functional.Runtime, ctx *functional.Context,
//	    gradOutputs []functional.Value) []functional.Value {
//	    x := ctx.Saved()[0]
//	    return []functional.Value{rt.Scale(rt.Mul(gradOutputs[0], x), 2)}
//	}
//
//	out, err := rt.Apply(square{}, x)
//
// # Transform Support
//
// Grad is fully implemented. Vmap, Jvp and Functionalize layers can be
// pushed, but applying a custom function under them returns
// ErrUnsupportedTransform until their rules exist.
package functional
