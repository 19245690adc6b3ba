package cpu

import (
	"github.com/tangent-ml/tangent/internal/parallel"
)

// binaryKernel applies f element-wise over chunked parallel ranges.
// A length-1 operand is broadcast against the other (step 0).
// dst may alias a for inplace operations.
func binaryKernel[T float32 | float64](dst, a, b []T, f func(x, y T) T, cfg parallel.Config) {
	aStep, bStep := 1, 1
	if len(a) == 1 {
		aStep = 0
	}
	if len(b) == 1 {
		bStep = 0
	}

	parallel.For(len(dst), cfg, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = f(a[i*aStep], b[i*bStep])
		}
	})
}

// unaryKernel applies f element-wise over chunked parallel ranges.
func unaryKernel[T float32 | float64](dst, x []T, f func(v T) T, cfg parallel.Config) {
	parallel.For(len(dst), cfg, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = f(x[i])
		}
	})
}
