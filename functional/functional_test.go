// Copyright 2026 Tangent ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package functional_test

import (
	"errors"
	"math"
	"testing"

	"github.com/tangent-ml/tangent/backend/cpu"
	"github.com/tangent-ml/tangent/functional"
	"github.com/tangent-ml/tangent/tensor"
)

// cube is a custom function defined entirely against the public API.
type cube struct{}

func (cube) Forward(rt *functional.Runtime, args ...any) any {
	x := args[0].(functional.Value)
	return rt.Mul(rt.Mul(x, x), x)
}

func (cube) SetupContext(ctx *functional.Context, args []any, _ any) {
	ctx.SaveForBackward(args[0].(functional.Value))
}

func (cube) Backward(rt *functional.Runtime, ctx *functional.Context, gradOutputs []functional.Value) []functional.Value {
	x := ctx.Saved()[0]
	return []functional.Value{rt.Scale(rt.Mul(gradOutputs[0], rt.Mul(x, x)), 3)}
}

// TestGradThroughFacade differentiates x² using only public packages.
func TestGradThroughFacade(t *testing.T) {
	rt := functional.New(cpu.New())

	f := func(x functional.Value) functional.Value {
		return rt.Mul(x, x)
	}

	x := tensor.Scalar(3.0, tensor.CPU)
	g := rt.Grad(f)(x)
	if got := functional.Item(g); math.Abs(got-6) > 1e-9 {
		t.Errorf("grad(x²)(3) = %v, want 6", got)
	}

	gg := rt.Grad(rt.Grad(f))(x)
	if got := functional.Item(gg); math.Abs(got-2) > 1e-9 {
		t.Errorf("grad(grad(x²))(3) = %v, want 2", got)
	}
}

// TestApplyThroughFacade dispatches a custom function and differentiates it.
func TestApplyThroughFacade(t *testing.T) {
	rt := functional.New(cpu.New())

	x := tensor.Scalar(2.0, tensor.CPU)
	out, err := rt.Apply(cube{}, x)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := functional.Item(out.(functional.Value)); got != 8 {
		t.Errorf("cube(2) = %v, want 8", got)
	}

	g := rt.Grad(func(x functional.Value) functional.Value {
		out, err := rt.Apply(cube{}, x)
		if err != nil {
			t.Fatalf("Apply under Grad failed: %v", err)
		}
		return out.(functional.Value)
	})(x)
	if got := functional.Item(g); math.Abs(got-12) > 1e-9 {
		t.Errorf("grad(x³)(2) = %v, want 12", got)
	}
}

// TestUnsupportedTransformSentinel verifies the re-exported sentinel matches.
func TestUnsupportedTransformSentinel(t *testing.T) {
	rt := functional.New(cpu.New())

	pop := rt.PushTransform(functional.Vmap)
	defer pop()

	_, err := rt.Apply(cube{}, tensor.Scalar(1.0, tensor.CPU))
	if !errors.Is(err, functional.ErrUnsupportedTransform) {
		t.Errorf("Apply under Vmap = %v, want ErrUnsupportedTransform", err)
	}
}

// TestLeafPeelsWrappers verifies Leaf reaches the raw tensor of a result.
func TestLeafPeelsWrappers(t *testing.T) {
	rt := functional.New(cpu.New())

	x := tensor.Scalar(7.0, tensor.CPU)
	y := rt.Add(x, x)
	raw := functional.Leaf(y)
	if got := tensor.Item(raw); got != 14 {
		t.Errorf("Leaf(x+x) = %v, want 14", got)
	}
}
