package autodiff

import (
	"testing"

	"github.com/tangent-ml/tangent/internal/tensor"
)

// TestWrapMetadataDelegation checks wrappers report the inner tensor's
// metadata.
func TestWrapMetadataDelegation(t *testing.T) {
	raw := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	w := Wrap(raw, 1, true)

	if !w.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", w.Shape())
	}
	if w.DType() != tensor.Float32 {
		t.Errorf("DType() = %v, want Float32", w.DType())
	}
	if w.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", w.Device())
	}
	if w.NumElements() != 6 {
		t.Errorf("NumElements() = %d, want 6", w.NumElements())
	}
	if w.Level() != 1 || !w.RequiresGrad() {
		t.Errorf("Level/RequiresGrad = %d/%t, want 1/true", w.Level(), w.RequiresGrad())
	}
	if w.Inner() != raw {
		t.Error("Inner() should return the wrapped value")
	}
}

// TestWrapNesting requires strictly increasing levels outward.
func TestWrapNesting(t *testing.T) {
	raw := tensor.Scalar(1.0, tensor.CPU)
	inner := Wrap(raw, 1, true)
	outer := Wrap(inner, 2, false)

	if LevelOf(raw) != 0 {
		t.Errorf("LevelOf(raw) = %d, want 0", LevelOf(raw))
	}
	if LevelOf(inner) != 1 || LevelOf(outer) != 2 {
		t.Errorf("LevelOf = %d/%d, want 1/2", LevelOf(inner), LevelOf(outer))
	}
}

// TestWrapRejectsNonIncreasingLevel panics when the new wrapper would not
// sit above the inner one.
func TestWrapRejectsNonIncreasingLevel(t *testing.T) {
	raw := tensor.Scalar(1.0, tensor.CPU)
	inner := Wrap(raw, 3, true)

	defer func() {
		if recover() == nil {
			t.Error("wrapping at a level below the inner wrapper did not panic")
		}
	}()
	Wrap(inner, 3, true)
}

// TestWrapRejectsNil panics on a nil inner value.
func TestWrapRejectsNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Wrap(nil) did not panic")
		}
	}()
	Wrap(nil, 1, true)
}

// TestLeafPeelsChains returns the raw tensor under any wrapper depth.
func TestLeafPeelsChains(t *testing.T) {
	raw := tensor.Scalar(2.5, tensor.CPU)

	if Leaf(raw) != raw {
		t.Error("Leaf of a raw tensor should be itself")
	}

	var v Value = raw
	for level := 1; level <= 4; level++ {
		v = Wrap(v, level, level%2 == 0)
		if Leaf(v) != raw {
			t.Fatalf("Leaf at depth %d lost the raw tensor", level)
		}
	}
}
