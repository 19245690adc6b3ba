package ops

import (
	"fmt"

	"github.com/tangent-ml/tangent/internal/autodiff"
)

// reduceLike reduces a gradient to match the shape of the operand it belongs
// to. Equal shapes pass through unchanged; the gradient of a broadcast
// scalar operand is summed over the broadcast elements.
//
// The reduced gradient of a one-element operand comes back as a zero-dim
// scalar; the two shapes are interchangeable everywhere in the runtime.
func reduceLike(ar autodiff.Arithmetic, grad, like autodiff.Value) autodiff.Value {
	if grad.Shape().Equal(like.Shape()) {
		return grad
	}
	if like.Shape().IsScalar() {
		return ar.Sum(grad)
	}
	panic(fmt.Sprintf("ops: cannot reduce gradient of shape %v to operand shape %v",
		grad.Shape(), like.Shape()))
}
