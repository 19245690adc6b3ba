package cpu

import (
	"math"
	"testing"

	"github.com/tangent-ml/tangent/internal/tensor"
)

func TestCPUBackend_UnaryOps(t *testing.T) {
	backend := New()
	input := []float32{0, 0.5, 1, 2}

	tests := []struct {
		name string
		op   func(*tensor.RawTensor) *tensor.RawTensor
		ref  func(float64) float64
	}{
		{"Neg", backend.Neg, func(v float64) float64 { return -v }},
		{"Exp", backend.Exp, math.Exp},
		{"Sqrt", backend.Sqrt, math.Sqrt},
		{"Cos", backend.Cos, math.Cos},
		{"Sin", backend.Sin, math.Sin},
		{"Tanh", backend.Tanh, math.Tanh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := fromSlice(t, input, tensor.Shape{4})
			result := tt.op(x)

			if result == x {
				t.Fatal("Unary ops must not run inplace")
			}
			out := result.AsFloat32()
			for i, v := range input {
				want := float32(tt.ref(float64(v)))
				diff := out[i] - want
				if diff < 0 {
					diff = -diff
				}
				if diff > 1e-6 {
					t.Errorf("%s(%v): got %v, want %v", tt.name, v, out[i], want)
				}
			}
		})
	}
}

func TestCPUBackend_Log(t *testing.T) {
	backend := New()

	x := fromSlice(t, []float32{1, math.E, 0}, tensor.Shape{3})
	result := backend.Log(x)
	out := result.AsFloat32()

	if out[0] != 0 {
		t.Errorf("log(1): got %v, want 0", out[0])
	}
	if diff := out[1] - 1; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("log(e): got %v, want 1", out[1])
	}
	// IEEE semantics at the domain edge: log(0) = -Inf, no panic.
	if !math.IsInf(float64(out[2]), -1) {
		t.Errorf("log(0): got %v, want -Inf", out[2])
	}
}

func TestCPUBackend_Scale(t *testing.T) {
	backend := New()

	x := fromSlice(t, []float32{1, -2, 3}, tensor.Shape{3})
	result := backend.Scale(x, 2.5)

	expected := []float32{2.5, -5, 7.5}
	if !float32SliceEqual(result.AsFloat32(), expected) {
		t.Errorf("Scale: got %v, want %v", result.AsFloat32(), expected)
	}
}

func TestCPUBackend_Sum(t *testing.T) {
	backend := New()

	x := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	result := backend.Sum(x)

	if !result.Shape().Equal(tensor.Shape{}) {
		t.Errorf("Sum shape: got %v, want scalar", result.Shape())
	}
	if got := tensor.Item(result); got != 10 {
		t.Errorf("Sum: got %v, want 10", got)
	}

	scalar := tensor.Scalar(7.5, tensor.CPU)
	if got := tensor.Item(backend.Sum(scalar)); got != 7.5 {
		t.Errorf("Sum of scalar: got %v, want 7.5", got)
	}
}
