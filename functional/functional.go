// Copyright 2026 Tangent ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package functional

import (
	"github.com/tangent-ml/tangent/internal/autodiff"
	"github.com/tangent-ml/tangent/internal/functional"
	"github.com/tangent-ml/tangent/internal/interp"
	"github.com/tangent-ml/tangent/tensor"
)

// Type aliases for public API

// Value is a tensor as seen by the interpreter: either a raw tensor or a
// tensor wrapped by an active transform.
type Value = autodiff.Value

// Runtime interprets tensor programs under a stack of transforms.
type Runtime = functional.Runtime

// Function is a user-defined operation with a custom backward rule.
// Dispatch it with Runtime.Apply.
type Function = functional.Function

// Context carries values from a Function's forward pass to its backward
// pass.
type Context = functional.Context

// Handler implements a transform's rule for custom function calls.
// Register one with Runtime.RegisterHandler.
type Handler = functional.Handler

// Kind identifies a transform.
type Kind = interp.Kind

// Layer is one pushed transform on the stack.
type Layer = interp.Layer

// Transform kinds.
const (
	Grad          Kind = interp.Grad
	Vmap          Kind = interp.Vmap
	Jvp           Kind = interp.Jvp
	Functionalize Kind = interp.Functionalize
)

// Sentinel errors returned by Runtime.Apply.
var (
	// ErrUnsupportedTransform reports a transform whose custom function
	// rule is not implemented yet.
	ErrUnsupportedTransform = functional.ErrUnsupportedTransform

	// ErrUnregisteredTransform reports a transform kind with no handler.
	ErrUnregisteredTransform = functional.ErrUnregisteredTransform
)

// New creates a runtime computing on the given backend.
//
// Example:
//
//	rt := functional.New(cpu.New())
func New(b tensor.Backend) *Runtime {
	return functional.NewRuntime(b)
}

// Leaf returns the raw tensor underneath v, peeling any transform
// wrappers. Use it to read data out of a result.
func Leaf(v Value) *tensor.RawTensor {
	return autodiff.Leaf(v)
}

// Item returns the single element of a scalar value as float64.
// Panics if v holds more than one element.
func Item(v Value) float64 {
	return tensor.Item(autodiff.Leaf(v))
}
