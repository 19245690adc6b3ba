// Package main provides the Tangent ML Framework CLI.
//
// The demo evaluates f(x) = sin(square(x)) at a point, where square is a
// custom differentiable function dispatched through the runtime, and
// differentiates it twice by nesting the Grad transform.
//
// Usage:
//
//	tangent [-x 0.5] [-backend cpu|webgpu]
//	tangent version
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tangent-ml/tangent/backend/cpu"
	"github.com/tangent-ml/tangent/backend/webgpu"
	"github.com/tangent-ml/tangent/functional"
	"github.com/tangent-ml/tangent/tensor"
)

const version = "v0.1.0-dev"

// square computes x² with a hand-written backward rule.
type square struct{}

func (square) Forward(rt *functional.Runtime, args ...any) any {
	x := args[0].(functional.Value)
	return rt.Mul(x, x)
}

func (square) SetupContext(ctx *functional.Context, args []any, _ any) {
	ctx.SaveForBackward(args[0].(functional.Value))
}

func (square) Backward(rt *functional.Runtime, ctx *functional.Context, gradOutputs []functional.Value) []functional.Value {
	x := ctx.Saved()[0]
	return []functional.Value{rt.Scale(rt.Mul(gradOutputs[0], x), 2)}
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("Tangent ML Framework %s\n", version)
		return
	}

	point := flag.Float64("x", 0.5, "Point to evaluate at")
	backendName := flag.String("backend", "cpu", "Compute backend: cpu or webgpu")
	flag.Parse()

	var (
		backend tensor.Backend
		x       functional.Value
	)
	switch *backendName {
	case "cpu":
		backend = cpu.New()
		x = tensor.Scalar(*point, tensor.CPU)
	case "webgpu":
		if !webgpu.IsAvailable() {
			log.Fatal("WebGPU not available on this system")
		}
		gpu, err := webgpu.New()
		if err != nil {
			log.Fatalf("Failed to create WebGPU backend: %v", err)
		}
		defer gpu.Release()
		backend = gpu
		x = tensor.Scalar(float32(*point), tensor.WebGPU)
	default:
		log.Fatalf("Unknown backend %q (want cpu or webgpu)", *backendName)
	}

	rt := functional.New(backend)

	// f(x) = sin(square(x)), with square dispatched as a custom function.
	f := func(v functional.Value) functional.Value {
		out, err := rt.Apply(square{}, v)
		if err != nil {
			log.Fatalf("Apply failed: %v", err)
		}
		return rt.Sin(out.(functional.Value))
	}

	df := rt.Grad(f)
	ddf := rt.Grad(df)

	fmt.Printf("Backend: %s\n", backend.Name())
	fmt.Printf("f(x) = sin(x²) at x = %g\n\n", *point)
	fmt.Printf("  f(x)   = %12.8f\n", functional.Item(f(x)))
	fmt.Printf("  f'(x)  = %12.8f   (2x·cos(x²))\n", functional.Item(df(x)))
	fmt.Printf("  f''(x) = %12.8f   (2·cos(x²) - 4x²·sin(x²))\n", functional.Item(ddf(x)))
}
