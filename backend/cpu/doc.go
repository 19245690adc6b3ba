// Copyright 2026 Tangent ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 support
//   - Scalar broadcasting for binary operations
//   - In-place reuse of uniquely-held operand buffers
//
// # Basic Usage
//
//	import (
//	    "github.com/tangent-ml/tangent/backend/cpu"
//	    "github.com/tangent-ml/tangent/functional"
//	)
//
//	func main() {
//	    rt := functional.New(cpu.New())
//	    ...
//	}
//
// # Thread Safety
//
// The CPU backend is stateless and safe for concurrent use.
package cpu
