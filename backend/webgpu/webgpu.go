// Copyright 2026 Tangent ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated tensor
// operations.
//
// WebGPU is a cross-platform graphics and compute API that works on:
//   - Windows (via Dawn/D3D12)
//   - macOS (via Dawn/Metal)
//   - Linux (via Dawn/Vulkan)
//
// Example:
//
//	import (
//	    "github.com/tangent-ml/tangent/backend/webgpu"
//	    "github.com/tangent-ml/tangent/functional"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    rt := functional.New(gpu)
//	}
package webgpu

import (
	internalwebgpu "github.com/tangent-ml/tangent/internal/backend/webgpu"
	"github.com/tangent-ml/tangent/tensor"
)

// Backend represents the WebGPU backend implementation for GPU-accelerated
// tensor operations.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
//
// This function initializes the WebGPU device and returns a backend ready
// for tensor operations. Call Release() when done to free GPU resources.
//
// Returns an error if WebGPU initialization fails (e.g., no compatible GPU).
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// It attempts to initialize a WebGPU adapter to verify that a compatible
// GPU and drivers are present. Useful for graceful fallback to the CPU
// backend:
//
//	var backend tensor.Backend = cpu.New()
//	if webgpu.IsAvailable() {
//	    backend, _ = webgpu.New()
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
