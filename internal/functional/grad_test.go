package functional_test

import (
	"math"
	"strings"
	"testing"

	"github.com/tangent-ml/tangent/internal/autodiff"
	"github.com/tangent-ml/tangent/internal/tensor"
)

// TestGrad_Square tests d(x²)/dx = 2x.
func TestGrad_Square(t *testing.T) {
	rt := newTestRuntime()
	x := tensor.Scalar(3.0, tensor.CPU)

	grad := rt.Grad(func(v autodiff.Value) autodiff.Value {
		return rt.Mul(v, v)
	})(x)

	if got := itemOf(t, grad); got != 6 {
		t.Errorf("grad(x²)(3) = %v, want 6", got)
	}
}

// TestGradAndValue tests that value and gradient come from one forward pass.
func TestGradAndValue(t *testing.T) {
	rt := newTestRuntime()
	x := tensor.Scalar(3.0, tensor.CPU)

	grad, value := rt.GradAndValue(func(v autodiff.Value) autodiff.Value {
		return rt.Mul(v, v)
	})(x)

	if got := itemOf(t, grad); got != 6 {
		t.Errorf("gradient = %v, want 6", got)
	}
	if got := itemOf(t, value); got != 9 {
		t.Errorf("value = %v, want 9", got)
	}
}

// TestGrad_IdentityFunction tests d(x)/dx = 1.
func TestGrad_IdentityFunction(t *testing.T) {
	rt := newTestRuntime()
	x := tensor.Scalar(3.0, tensor.CPU)

	grad := rt.Grad(func(v autodiff.Value) autodiff.Value {
		return v
	})(x)

	if got := itemOf(t, grad); got != 1 {
		t.Errorf("grad(x)(3) = %v, want 1", got)
	}
}

// TestGrad_Constant tests that a function ignoring its input has zero
// gradient.
func TestGrad_Constant(t *testing.T) {
	rt := newTestRuntime()
	x := tensor.Scalar(3.0, tensor.CPU)

	grad := rt.Grad(func(_ autodiff.Value) autodiff.Value {
		return tensor.Scalar(7.0, tensor.CPU)
	})(x)

	if got := itemOf(t, grad); got != 0 {
		t.Errorf("grad(const)(3) = %v, want 0", got)
	}
}

// TestGrad_SecondDerivative tests d²(x³)/dx² = 6x.
func TestGrad_SecondDerivative(t *testing.T) {
	rt := newTestRuntime()
	x := tensor.Scalar(2.0, tensor.CPU)

	cube := func(v autodiff.Value) autodiff.Value {
		return rt.Mul(rt.Mul(v, v), v)
	}
	grad2 := rt.Grad(rt.Grad(cube))(x)

	if got := itemOf(t, grad2); got != 12 {
		t.Errorf("grad(grad(x³))(2) = %v, want 12", got)
	}
}

// TestGrad_SinDerivatives tests d(sin)/dx = cos and d²(sin)/dx² = -sin.
func TestGrad_SinDerivatives(t *testing.T) {
	rt := newTestRuntime()
	x := tensor.Scalar(1.0, tensor.CPU)

	sin := func(v autodiff.Value) autodiff.Value { return rt.Sin(v) }

	grad := rt.Grad(sin)(x)
	if got, want := itemOf(t, grad), math.Cos(1); !closeTo(got, want, 1e-12) {
		t.Errorf("grad(sin)(1) = %v, want %v", got, want)
	}

	grad2 := rt.Grad(rt.Grad(sin))(x)
	if got, want := itemOf(t, grad2), -math.Sin(1); !closeTo(got, want, 1e-12) {
		t.Errorf("grad(grad(sin))(1) = %v, want %v", got, want)
	}
}

// TestGrad_ExpSecondDerivative tests d²(eˣ)/dx² = eˣ.
func TestGrad_ExpSecondDerivative(t *testing.T) {
	rt := newTestRuntime()
	x := tensor.Scalar(0.5, tensor.CPU)

	grad2 := rt.Grad(rt.Grad(func(v autodiff.Value) autodiff.Value {
		return rt.Exp(v)
	}))(x)

	if got, want := itemOf(t, grad2), math.Exp(0.5); !closeTo(got, want, 1e-12) {
		t.Errorf("grad(grad(exp))(0.5) = %v, want %v", got, want)
	}
}

// TestGrad_Tanh tests d(tanh)/dx = 1 - tanh².
func TestGrad_Tanh(t *testing.T) {
	rt := newTestRuntime()
	x := tensor.Scalar(0.5, tensor.CPU)

	grad := rt.Grad(func(v autodiff.Value) autodiff.Value {
		return rt.Tanh(v)
	})(x)

	th := math.Tanh(0.5)
	if got, want := itemOf(t, grad), 1-th*th; !closeTo(got, want, 1e-12) {
		t.Errorf("grad(tanh)(0.5) = %v, want %v", got, want)
	}
}

// TestGrad_CustomFunctionSecondDerivative tests that a custom backward rule
// is itself differentiated by the outer transform.
func TestGrad_CustomFunctionSecondDerivative(t *testing.T) {
	rt := newTestRuntime()
	x := tensor.Scalar(3.0, tensor.CPU)

	square := func(v autodiff.Value) autodiff.Value {
		out, err := rt.Apply(squareFn{}, v)
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		return out.(autodiff.Value)
	}
	grad2 := rt.Grad(rt.Grad(square))(x)

	if got := itemOf(t, grad2); got != 2 {
		t.Errorf("grad(grad(square))(3) = %v, want 2", got)
	}
}

// TestGrad_VectorInput tests an element-wise gradient through a scalar
// reduction.
func TestGrad_VectorInput(t *testing.T) {
	rt := newTestRuntime()
	x, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromSlice() error = %v", err)
	}

	grad := rt.Grad(func(v autodiff.Value) autodiff.Value {
		return rt.Sum(rt.Mul(v, v))
	})(x)

	if !grad.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("gradient shape = %v, want [3]", grad.Shape())
	}
	got := autodiff.Leaf(grad).AsFloat64()
	want := []float64{2, 4, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("gradient[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestGrad_Mean tests the gradient of the mean reduction.
func TestGrad_Mean(t *testing.T) {
	rt := newTestRuntime()
	x, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromSlice() error = %v", err)
	}

	grad := rt.Grad(func(v autodiff.Value) autodiff.Value {
		return rt.Mean(rt.Mul(v, v))
	})(x)

	got := autodiff.Leaf(grad).AsFloat64()
	want := []float64{2.0 / 3, 4.0 / 3, 2}
	for i := range want {
		if !closeTo(got[i], want[i], 1e-12) {
			t.Errorf("gradient[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestGrad_BroadcastScalar tests the gradient of a scalar broadcast against
// a vector: the elementwise gradient must reduce back to scalar shape.
func TestGrad_BroadcastScalar(t *testing.T) {
	rt := newTestRuntime()
	v, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromSlice() error = %v", err)
	}
	s := tensor.Scalar(2.0, tensor.CPU)

	// f(s) = sum(v * s), df/ds = sum(v) = 6.
	grad := rt.Grad(func(x autodiff.Value) autodiff.Value {
		return rt.Sum(rt.Mul(v, x))
	})(s)

	if !grad.Shape().IsScalar() {
		t.Fatalf("gradient shape = %v, want scalar", grad.Shape())
	}
	if got := itemOf(t, grad); got != 6 {
		t.Errorf("d/ds sum(v*s) = %v, want 6", got)
	}
}

// TestGrad_NoGradInsideFunction tests that a NoGrad scope inside the
// differentiated function suppresses recording.
func TestGrad_NoGradInsideFunction(t *testing.T) {
	rt := newTestRuntime()
	x := tensor.Scalar(3.0, tensor.CPU)

	grad := rt.Grad(func(v autodiff.Value) autodiff.Value {
		defer rt.NoGrad()()
		return rt.Mul(v, v)
	})(x)

	if got := itemOf(t, grad); got != 0 {
		t.Errorf("grad under NoGrad = %v, want 0", got)
	}
}

// TestGrad_OuterNoGradDoesNotDisable tests that the transform computes
// gradients regardless of the caller's grad mode.
func TestGrad_OuterNoGradDoesNotDisable(t *testing.T) {
	rt := newTestRuntime()
	x := tensor.Scalar(3.0, tensor.CPU)

	restore := rt.NoGrad()
	defer restore()

	grad := rt.Grad(func(v autodiff.Value) autodiff.Value {
		return rt.Mul(v, v)
	})(x)

	if got := itemOf(t, grad); got != 6 {
		t.Errorf("grad inside NoGrad scope = %v, want 6", got)
	}
	if rt.GradEnabled() {
		t.Error("GradEnabled() = true, want the caller's NoGrad still in force")
	}
}

// TestGrad_NonScalarOutputPanics tests the scalar-output requirement.
func TestGrad_NonScalarOutputPanics(t *testing.T) {
	rt := newTestRuntime()
	x, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromSlice() error = %v", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("grad of a vector-valued function did not panic")
		}
		if !strings.Contains(r.(string), "scalar") {
			t.Errorf("panic = %q, want it to mention the scalar requirement", r)
		}
		if rt.TransformDepth() != 0 {
			t.Errorf("TransformDepth() after panic = %d, want 0", rt.TransformDepth())
		}
	}()

	rt.Grad(func(v autodiff.Value) autodiff.Value {
		return rt.Mul(v, v)
	})(x)
}

// TestGrad_NilOutputPanics tests the missing-output failure.
func TestGrad_NilOutputPanics(t *testing.T) {
	rt := newTestRuntime()
	x := tensor.Scalar(3.0, tensor.CPU)

	defer func() {
		if recover() == nil {
			t.Fatal("grad of a function returning nil did not panic")
		}
		if rt.TransformDepth() != 0 {
			t.Errorf("TransformDepth() after panic = %d, want 0", rt.TransformDepth())
		}
	}()

	rt.Grad(func(_ autodiff.Value) autodiff.Value {
		return nil
	})(x)
}

// TestGrad_StackBalancedAfterUserPanic tests that a panic inside the
// differentiated function pops the transform layer.
func TestGrad_StackBalancedAfterUserPanic(t *testing.T) {
	rt := newTestRuntime()
	x := tensor.Scalar(3.0, tensor.CPU)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected the user panic to propagate")
			}
		}()
		rt.Grad(func(_ autodiff.Value) autodiff.Value {
			panic("user failure")
		})(x)
	}()

	if rt.TransformDepth() != 0 {
		t.Errorf("TransformDepth() = %d, want 0", rt.TransformDepth())
	}
}

// TestGrad_EscapedWrapperIsTransparent tests that a wrapper captured inside
// a finished transform behaves as its underlying value afterwards.
func TestGrad_EscapedWrapperIsTransparent(t *testing.T) {
	rt := newTestRuntime()
	x := tensor.Scalar(3.0, tensor.CPU)

	var escaped autodiff.Value
	rt.Grad(func(v autodiff.Value) autodiff.Value {
		escaped = v
		return rt.Mul(v, v)
	})(x)

	one := tensor.Scalar(1.0, tensor.CPU)
	sum := rt.Add(escaped, one)
	if got := itemOf(t, sum); got != 4 {
		t.Errorf("escaped wrapper + 1 = %v, want 4", got)
	}
	if _, ok := sum.(*tensor.RawTensor); !ok {
		t.Errorf("result through a dead wrapper = %T, want a raw tensor", sum)
	}
}
