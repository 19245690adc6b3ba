package autodiff

import (
	"fmt"

	"github.com/tangent-ml/tangent/internal/tensor"
)

// Value is a tensor-like value flowing through the differentiation runtime:
// either a raw tensor or a transform wrapper around one. Wrappers delegate
// the metadata of the value at the bottom of the chain.
type Value interface {
	Shape() tensor.Shape
	DType() tensor.DataType
	Device() tensor.Device
	NumElements() int
}

// GradTensor associates a value with one gradient transform level.
//
// Each active gradient transform wraps the tensors it differentiates
// through; nesting transforms nests wrappers. A wrapper is only meaningful
// while its level is on the transform stack. Once the level has been popped
// the wrapper is dead and the runtime sees straight through it to the inner
// value.
type GradTensor struct {
	inner        Value
	level        int
	requiresGrad bool
}

// Wrap marks a value as belonging to the gradient transform at the given
// level. requiresGrad controls whether operations consuming the wrapper are
// recorded for the backward pass.
func Wrap(inner Value, level int, requiresGrad bool) *GradTensor {
	if inner == nil {
		panic("autodiff: cannot wrap nil value")
	}
	if lv := LevelOf(inner); lv >= level {
		panic(fmt.Sprintf("autodiff: wrapper level %d must exceed inner level %d", level, lv))
	}
	return &GradTensor{inner: inner, level: level, requiresGrad: requiresGrad}
}

// Inner returns the wrapped value.
func (g *GradTensor) Inner() Value {
	return g.inner
}

// Level returns the transform level the wrapper belongs to.
func (g *GradTensor) Level() int {
	return g.level
}

// RequiresGrad reports whether the wrapper participates in gradient
// recording at its level.
func (g *GradTensor) RequiresGrad() bool {
	return g.requiresGrad
}

// Shape returns the shape of the underlying tensor.
func (g *GradTensor) Shape() tensor.Shape {
	return g.inner.Shape()
}

// DType returns the data type of the underlying tensor.
func (g *GradTensor) DType() tensor.DataType {
	return g.inner.DType()
}

// Device returns the device of the underlying tensor.
func (g *GradTensor) Device() tensor.Device {
	return g.inner.Device()
}

// NumElements returns the element count of the underlying tensor.
func (g *GradTensor) NumElements() int {
	return g.inner.NumElements()
}

// String renders the wrapper chain for debugging.
func (g *GradTensor) String() string {
	return fmt.Sprintf("GradTensor(level=%d, requiresGrad=%t, shape=%v)", g.level, g.requiresGrad, g.Shape())
}

// LevelOf returns the transform level of v: the wrapper level for wrapped
// values, 0 for raw tensors.
func LevelOf(v Value) int {
	if g, ok := v.(*GradTensor); ok {
		return g.level
	}
	return 0
}

// Leaf returns the raw tensor at the bottom of the wrapper chain.
func Leaf(v Value) *tensor.RawTensor {
	for {
		switch x := v.(type) {
		case *tensor.RawTensor:
			return x
		case *GradTensor:
			v = x.inner
		default:
			panic(fmt.Sprintf("autodiff: unknown value type %T", v))
		}
	}
}
