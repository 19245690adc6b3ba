package functional_test

import (
	"math"
	"testing"

	"github.com/tangent-ml/tangent/internal/autodiff"
	"github.com/tangent-ml/tangent/internal/functional"
	"github.com/tangent-ml/tangent/internal/tensor"
)

// numericalGradient computes the gradient using central finite differences.
func numericalGradient(f func(float64) float64, x, epsilon float64) float64 {
	return (f(x+epsilon) - f(x-epsilon)) / (2 * epsilon)
}

// TestGradMatchesNumerical checks every differentiable primitive against a
// central-difference reference.
func TestGradMatchesNumerical(t *testing.T) {
	cases := []struct {
		name string
		fn   func(rt *functional.Runtime, x autodiff.Value) autodiff.Value
		ref  func(x float64) float64
		at   float64
	}{
		{
			name: "add",
			fn: func(rt *functional.Runtime, x autodiff.Value) autodiff.Value {
				return rt.Add(x, tensor.Scalar(2.0, tensor.CPU))
			},
			ref: func(x float64) float64 { return x + 2 },
			at:  3,
		},
		{
			name: "add_second_operand",
			fn: func(rt *functional.Runtime, x autodiff.Value) autodiff.Value {
				return rt.Add(tensor.Scalar(2.0, tensor.CPU), x)
			},
			ref: func(x float64) float64 { return 2 + x },
			at:  3,
		},
		{
			name: "sub",
			fn: func(rt *functional.Runtime, x autodiff.Value) autodiff.Value {
				return rt.Sub(x, tensor.Scalar(2.0, tensor.CPU))
			},
			ref: func(x float64) float64 { return x - 2 },
			at:  3,
		},
		{
			name: "sub_second_operand",
			fn: func(rt *functional.Runtime, x autodiff.Value) autodiff.Value {
				return rt.Sub(tensor.Scalar(2.0, tensor.CPU), x)
			},
			ref: func(x float64) float64 { return 2 - x },
			at:  3,
		},
		{
			name: "mul",
			fn: func(rt *functional.Runtime, x autodiff.Value) autodiff.Value {
				return rt.Mul(x, x)
			},
			ref: func(x float64) float64 { return x * x },
			at:  3,
		},
		{
			name: "div",
			fn: func(rt *functional.Runtime, x autodiff.Value) autodiff.Value {
				return rt.Div(x, tensor.Scalar(4.0, tensor.CPU))
			},
			ref: func(x float64) float64 { return x / 4 },
			at:  3,
		},
		{
			name: "div_second_operand",
			fn: func(rt *functional.Runtime, x autodiff.Value) autodiff.Value {
				return rt.Div(tensor.Scalar(4.0, tensor.CPU), x)
			},
			ref: func(x float64) float64 { return 4 / x },
			at:  3,
		},
		{
			name: "neg",
			fn: func(rt *functional.Runtime, x autodiff.Value) autodiff.Value {
				return rt.Neg(x)
			},
			ref: func(x float64) float64 { return -x },
			at:  3,
		},
		{
			name: "scale",
			fn: func(rt *functional.Runtime, x autodiff.Value) autodiff.Value {
				return rt.Scale(x, 2.5)
			},
			ref: func(x float64) float64 { return 2.5 * x },
			at:  3,
		},
		{
			name: "exp",
			fn: func(rt *functional.Runtime, x autodiff.Value) autodiff.Value {
				return rt.Exp(x)
			},
			ref: math.Exp,
			at:  0.5,
		},
		{
			name: "log",
			fn: func(rt *functional.Runtime, x autodiff.Value) autodiff.Value {
				return rt.Log(x)
			},
			ref: math.Log,
			at:  0.7,
		},
		{
			name: "sqrt",
			fn: func(rt *functional.Runtime, x autodiff.Value) autodiff.Value {
				return rt.Sqrt(x)
			},
			ref: math.Sqrt,
			at:  2.25,
		},
		{
			name: "sin",
			fn: func(rt *functional.Runtime, x autodiff.Value) autodiff.Value {
				return rt.Sin(x)
			},
			ref: math.Sin,
			at:  1,
		},
		{
			name: "cos",
			fn: func(rt *functional.Runtime, x autodiff.Value) autodiff.Value {
				return rt.Cos(x)
			},
			ref: math.Cos,
			at:  1,
		},
		{
			name: "tanh",
			fn: func(rt *functional.Runtime, x autodiff.Value) autodiff.Value {
				return rt.Tanh(x)
			},
			ref: math.Tanh,
			at:  0.5,
		},
		{
			name: "composite",
			fn: func(rt *functional.Runtime, x autodiff.Value) autodiff.Value {
				// (x + 2) * sin(x) / sqrt(x)
				return rt.Div(rt.Mul(rt.Add(x, tensor.Scalar(2.0, tensor.CPU)), rt.Sin(x)), rt.Sqrt(x))
			},
			ref: func(x float64) float64 { return (x + 2) * math.Sin(x) / math.Sqrt(x) },
			at:  1.3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rt := newTestRuntime()
			x := tensor.Scalar(tc.at, tensor.CPU)

			grad := rt.Grad(func(v autodiff.Value) autodiff.Value {
				return tc.fn(rt, v)
			})(x)

			got := itemOf(t, grad)
			want := numericalGradient(tc.ref, tc.at, 1e-6)
			if math.Abs(got-want) > 1e-5 {
				t.Errorf("gradient = %g, numerical = %g, diff = %g", got, want, got-want)
			}
		})
	}
}

// TestGradMatchesNumerical_SumOverVector checks the reduction gradient on a
// multi-element input, one coordinate at a time.
func TestGradMatchesNumerical_SumOverVector(t *testing.T) {
	rt := newTestRuntime()
	base := []float64{0.5, 1.5, 2.5}

	f := func(v autodiff.Value) autodiff.Value {
		return rt.Sum(rt.Mul(rt.Sin(v), v))
	}
	ref := func(data []float64) float64 {
		total := 0.0
		for _, x := range data {
			total += math.Sin(x) * x
		}
		return total
	}

	x, err := tensor.FromSlice(base, tensor.Shape{3}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromSlice() error = %v", err)
	}
	grad := autodiff.Leaf(rt.Grad(f)(x)).AsFloat64()

	epsilon := 1e-6
	for i := range base {
		want := (ref(bumpAt(base, i, epsilon)) - ref(bumpAt(base, i, -epsilon))) / (2 * epsilon)
		if math.Abs(grad[i]-want) > 1e-5 {
			t.Errorf("gradient[%d] = %g, numerical = %g", i, grad[i], want)
		}
	}
}

func bumpAt(data []float64, i int, delta float64) []float64 {
	out := make([]float64, len(data))
	copy(out, data)
	out[i] += delta
	return out
}

// TestGradMatchesNumerical_Float32 checks a float32 gradient against the
// looser tolerance single precision allows.
func TestGradMatchesNumerical_Float32(t *testing.T) {
	rt := newTestRuntime()
	x := tensor.Scalar(float32(3), tensor.CPU)

	grad := rt.Grad(func(v autodiff.Value) autodiff.Value {
		return rt.Mul(v, v)
	})(x)

	got := float32(itemOf(t, grad))
	want := numericalGradient(func(x float64) float64 { return x * x }, 3, 1e-4)
	if math.Abs(float64(got)-want) > 0.01 {
		t.Errorf("gradient = %f, numerical = %f", got, want)
	}
}

// TestGradMatchesNumerical_SecondOrder checks nested transforms against a
// central second difference.
func TestGradMatchesNumerical_SecondOrder(t *testing.T) {
	rt := newTestRuntime()
	at := 0.8
	x := tensor.Scalar(at, tensor.CPU)

	f := func(v autodiff.Value) autodiff.Value {
		return rt.Mul(rt.Tanh(v), v)
	}
	ref := func(x float64) float64 { return math.Tanh(x) * x }

	grad2 := rt.Grad(rt.Grad(f))(x)
	got := itemOf(t, grad2)

	epsilon := 1e-4
	want := (ref(at+epsilon) - 2*ref(at) + ref(at-epsilon)) / (epsilon * epsilon)
	if math.Abs(got-want) > 1e-4 {
		t.Errorf("second derivative = %g, numerical = %g", got, want)
	}
}
