// Copyright 2026 Tangent ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/tangent-ml/tangent/internal/backend/cpu"
	"github.com/tangent-ml/tangent/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/tangent-ml/tangent/backend/cpu"
//	    "github.com/tangent-ml/tangent/functional"
//	)
//
//	func main() {
//	    rt := functional.New(cpu.New())
//	}
func New() *Backend {
	return internalcpu.New()
}
