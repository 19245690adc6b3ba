// Copyright 2026 Tangent ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/tangent-ml/tangent/internal/backend/cpu"
	"github.com/tangent-ml/tangent/tensor"
)

// TestBackendInterface verifies that cpu.CPUBackend implements tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.CPUBackend)(nil)
}

// TestRawTensorAPI verifies the RawTensor type alias exposes the expected API.
func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if !raw.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", raw.Shape())
	}
	if raw.DType() != tensor.Float32 {
		t.Errorf("DType() = %v, want Float32", raw.DType())
	}
	if raw.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", raw.Device())
	}
	if raw.NumElements() != 6 {
		t.Errorf("NumElements() = %d, want 6", raw.NumElements())
	}
	if raw.ByteSize() != 6*4 {
		t.Errorf("ByteSize() = %d, want 24", raw.ByteSize())
	}
}

// TestCreationFunctions verifies the creation passthroughs.
func TestCreationFunctions(t *testing.T) {
	x, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if x.AsFloat64()[1] != 2 {
		t.Errorf("FromSlice data = %v, want [1 2 3]", x.AsFloat64())
	}

	s := tensor.Scalar(4.5, tensor.CPU)
	if got := tensor.Item(s); got != 4.5 {
		t.Errorf("Item(Scalar(4.5)) = %v, want 4.5", got)
	}

	ones := tensor.OnesLike(x)
	if ones.AsFloat64()[2] != 1 {
		t.Errorf("OnesLike data = %v, want [1 1 1]", ones.AsFloat64())
	}
}

// TestBinaryShape verifies scalar broadcasting through the public API.
func TestBinaryShape(t *testing.T) {
	shape, err := tensor.BinaryShape(tensor.Shape{3}, tensor.Shape{})
	if err != nil {
		t.Fatalf("BinaryShape failed: %v", err)
	}
	if !shape.Equal(tensor.Shape{3}) {
		t.Errorf("BinaryShape([3], []) = %v, want [3]", shape)
	}

	if _, err := tensor.BinaryShape(tensor.Shape{3}, tensor.Shape{4}); err == nil {
		t.Error("BinaryShape([3], [4]) should fail")
	}
}
