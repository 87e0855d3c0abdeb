// Package metal provides Metal GPU execution of gridgrep kernels on macOS
// and Apple Silicon.
//
// The match kernel is dispatched as one GPU thread per candidate offset,
// with the haystack, pattern, counter, and offset buffers allocated in
// unified memory (MTLResourceStorageModeShared) so the host reads results
// back without an explicit copy.
//
// Architecture:
//
//	┌─────────────────────────────────────┐
//	│            Go Application           │
//	│        (compute.Device API)         │
//	└─────────────┬───────────────────────┘
//	              │ CGO
//	┌─────────────▼───────────────────────┐
//	│         metal_bridge.go             │
//	│      (Go bindings via CGO)          │
//	└─────────────┬───────────────────────┘
//	              │ C ABI
//	┌─────────────▼───────────────────────┐
//	│         metal_bridge.m              │
//	│   (Objective-C Metal wrapper)       │
//	└─────────────┬───────────────────────┘
//	              │ Metal API
//	┌─────────────▼───────────────────────┐
//	│        Apple Silicon GPU            │
//	└─────────────────────────────────────┘
//
// Memory layout: the kernel reads text and pattern bytes, performs one
// atomic_fetch_add on the counter word per match, and writes the matching
// offset into its granted slot. Buffer bindings follow the argument order
// used by Dispatch.
//
// Build Requirements:
//   - macOS 10.15+
//   - Xcode Command Line Tools
//   - CGO enabled (CGO_ENABLED=1)
//   - the metalgpu build tag
//
// Builds without the metalgpu tag (any platform) get a stub whose
// IsAvailable always reports false, so backend selection in pkg/compute
// falls through to the next candidate.
package metal
