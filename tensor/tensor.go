// Copyright 2026 Tangent ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/tangent-ml/tangent/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor element types.
// Supported types: float32, float64.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
// The empty shape Shape{} is a scalar holding one element.
type Shape = tensor.Shape

// RawTensor is a flat buffer with a shape, dtype and device.
type RawTensor = tensor.RawTensor

// Backend is the interface compute devices implement. See backend/cpu
// and backend/webgpu for the built-in implementations.
type Backend = tensor.Backend

// Creation functions

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float64, tensor.CPU)
func Zeros(shape Shape, dtype DataType, device Device) *RawTensor {
	return tensor.Zeros(shape, dtype, device)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType, device Device) *RawTensor {
	return tensor.Ones(shape, dtype, device)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	x := tensor.Full(tensor.Shape{2, 3}, 3.14, tensor.Float64, tensor.CPU)
func Full(shape Shape, value float64, dtype DataType, device Device) *RawTensor {
	return tensor.Full(shape, value, dtype, device)
}

// ZerosLike creates a zero-filled tensor with the shape, dtype and device
// of r.
func ZerosLike(r *RawTensor) *RawTensor {
	return tensor.ZerosLike(r)
}

// OnesLike creates a one-filled tensor with the shape, dtype and device
// of r.
func OnesLike(r *RawTensor) *RawTensor {
	return tensor.OnesLike(r)
}

// FullLike creates a tensor holding value with the shape, dtype and device
// of r.
func FullLike(r *RawTensor, value float64) *RawTensor {
	return tensor.FullLike(r, value)
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
//
// Example:
//
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, tensor.CPU)
func FromSlice[T DType](data []T, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromSlice(data, shape, device)
}

// Scalar creates a zero-dimensional tensor holding a single value.
//
// Example:
//
//	x := tensor.Scalar(3.0, tensor.CPU) // dtype Float64, shape ()
func Scalar[T DType](value T, device Device) *RawTensor {
	return tensor.Scalar(value, device)
}

// Randn creates a tensor filled with random values from the standard
// normal distribution N(0, 1).
func Randn(shape Shape, dtype DataType, device Device) *RawTensor {
	return tensor.Randn(shape, dtype, device)
}

// NewRaw creates an uninitialized tensor with the given shape, dtype and
// device.
//
// This is a low-level function. Most users should use creation functions
// like Zeros, Ones, or FromSlice instead.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Utility functions

// Item returns the single element of a scalar tensor as float64.
// Panics if r holds more than one element.
func Item(r *RawTensor) float64 {
	return tensor.Item(r)
}

// BinaryShape computes the result shape of a binary operation. The operand
// shapes must be equal, or one operand must be a scalar, which broadcasts
// against the other.
//
// Example:
//
//	shape, err := tensor.BinaryShape(tensor.Shape{3}, tensor.Shape{})
//	// shape = [3]
func BinaryShape(a, b Shape) (Shape, error) {
	return tensor.BinaryShape(a, b)
}
