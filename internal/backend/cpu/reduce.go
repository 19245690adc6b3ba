package cpu

import (
	"fmt"

	"github.com/tangent-ml/tangent/internal/tensor"
)

// Sum reduces all elements to a scalar tensor (empty shape).
// Accumulation runs in float64 regardless of the input dtype.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sum: %v", err))
	}

	var acc float64
	switch x.DType() {
	case tensor.Float32:
		for _, v := range x.AsFloat32() {
			acc += float64(v)
		}
		result.AsFloat32()[0] = float32(acc)
	case tensor.Float64:
		for _, v := range x.AsFloat64() {
			acc += v
		}
		result.AsFloat64()[0] = acc
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}
