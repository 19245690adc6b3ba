// Copyright 2026 Tangent ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the raw tensor type underlying the Tangent framework.
//
// # Overview
//
// RawTensor is a flat, reference-counted buffer with a shape, a data type
// and a device. It carries no gradient information of its own; the
// functional package layers differentiation on top of it. This package
// provides:
//   - RawTensor: shape + dtype + device over a shared byte buffer
//   - Creation functions (Zeros, Ones, Full, FromSlice, Scalar, Randn)
//   - Backend: the interface compute devices implement
//   - Shape, DataType, Device: core type definitions
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
//	    x := tensor.Scalar(3.0, tensor.CPU)
//	    y := rt.Mul(x, x)
//	    fmt.Println(functional.Item(y)) // 9
//	}
//
// # Supported Data Types
//
// Tensors hold floating-point data:
//   - Float32 (the default for GPU work)
//   - Float64 (the default for gradient checking)
//
// # Device Support
//
// Tensor data can reside on:
//   - CPU: pure Go implementation
//   - WebGPU: zero-CGO GPU acceleration
//
// # Broadcasting
//
// Binary operations accept operands of equal shape, or one operand may be
// a scalar (a single element), which broadcasts against the other:
//
//	a := tensor.Full(tensor.Shape{3}, 2, tensor.Float64, tensor.CPU) // (3)
//	s := tensor.Scalar(10.0, tensor.CPU)                             // ()
//	// a + s has shape (3)
//
// # Memory Management
//
// Buffers are shared between tensors where possible. Backends may reuse a
// uniquely-held operand buffer for the result of an elementwise operation;
// ForceNonUnique pins a buffer against that reuse.
package tensor
