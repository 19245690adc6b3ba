package tensor

import (
	"fmt"
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	t := tensor.Zeros(Shape{3, 4}, Float32, CPU)
func Zeros(shape Shape, dtype DataType, device Device) *RawTensor {
	raw, err := NewRaw(shape, dtype, device)
	if err != nil {
		panic(err) // Shape validation should prevent this
	}
	// Data is already zero-initialized by make()
	return raw
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType, device Device) *RawTensor {
	return Full(shape, 1, dtype, device)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full(Shape{3, 3}, 3.14, Float32, CPU)
func Full(shape Shape, value float64, dtype DataType, device Device) *RawTensor {
	raw := Zeros(shape, dtype, device)
	fill(raw, value)
	return raw
}

// ZerosLike creates a zero-filled tensor with the shape, dtype and device of r.
func ZerosLike(r *RawTensor) *RawTensor {
	return Zeros(r.Shape(), r.DType(), r.Device())
}

// OnesLike creates a one-filled tensor with the shape, dtype and device of r.
func OnesLike(r *RawTensor) *RawTensor {
	return Full(r.Shape(), 1, r.DType(), r.Device())
}

// FullLike creates a value-filled tensor with the shape, dtype and device of r.
func FullLike(r *RawTensor, value float64) *RawTensor {
	return Full(r.Shape(), value, r.DType(), r.Device())
}

// FromSlice creates a tensor from a Go slice. The slice length must equal
// the number of elements of the shape. The data is copied.
//
// Example:
//
//	t, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, CPU)
func FromSlice[T DType](data []T, shape Shape, device Device) (*RawTensor, error) {
	var dummy T
	dtype := inferDataType(dummy)

	raw, err := NewRaw(shape, dtype, device)
	if err != nil {
		return nil, err
	}
	if len(data) != raw.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, raw.NumElements())
	}

	switch dtype {
	case Float32:
		copy(raw.AsFloat32(), any(data).([]float32))
	case Float64:
		copy(raw.AsFloat64(), any(data).([]float64))
	}
	return raw, nil
}

// Scalar creates a zero-dimensional tensor holding a single value.
//
// Example:
//
//	x := tensor.Scalar(float32(2.5), CPU)
func Scalar[T DType](value T, device Device) *RawTensor {
	var dummy T
	raw := Zeros(Shape{}, inferDataType(dummy), device)
	fill(raw, toFloat64(value))
	return raw
}

// Randn creates a tensor with random values from a normal distribution (mean=0, std=1).
// Uses Box-Muller transform for generating normal distribution.
// Note: Uses math/rand (not crypto/rand) - appropriate for ML/statistical purposes.
//
// Example:
//
//	t := tensor.Randn(Shape{100, 100}, Float32, CPU)
func Randn(shape Shape, dtype DataType, device Device) *RawTensor {
	raw := Zeros(shape, dtype, device)
	n := raw.NumElements()

	for i := 0; i < n; i += 2 {
		u1 := rand.Float64() //nolint:gosec // G404: ML uses math/rand intentionally for reproducibility
		u2 := rand.Float64() //nolint:gosec // G404: ML uses math/rand intentionally for reproducibility
		z0 := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
		z1 := math.Sqrt(-2.0*math.Log(u1)) * math.Sin(2.0*math.Pi*u2)
		setFloat(raw, i, z0)
		if i+1 < n {
			setFloat(raw, i+1, z1)
		}
	}
	return raw
}

// Item returns the single element of a scalar tensor as float64.
// Panics if the tensor holds more than one element.
func Item(r *RawTensor) float64 {
	if !r.Shape().IsScalar() {
		panic(fmt.Sprintf("Item requires a scalar tensor, got shape %v", r.Shape()))
	}
	switch r.DType() {
	case Float32:
		return float64(r.AsFloat32()[0])
	case Float64:
		return r.AsFloat64()[0]
	default:
		panic("unsupported dtype")
	}
}

// fill writes value into every element of r.
func fill(r *RawTensor, value float64) {
	switch r.DType() {
	case Float32:
		data := r.AsFloat32()
		v := float32(value)
		for i := range data {
			data[i] = v
		}
	case Float64:
		data := r.AsFloat64()
		for i := range data {
			data[i] = value
		}
	}
}

// setFloat writes value into element i of r.
func setFloat(r *RawTensor, i int, value float64) {
	switch r.DType() {
	case Float32:
		r.AsFloat32()[i] = float32(value)
	case Float64:
		r.AsFloat64()[i] = value
	}
}

// toFloat64 widens a DType value to float64.
func toFloat64[T DType](v T) float64 {
	switch x := any(v).(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		panic("unsupported type")
	}
}
