// Package vulkan provides cross-platform GPU execution of gridgrep kernels
// using Vulkan Compute.
//
// The match kernel runs as a compute shader dispatched over one invocation
// per candidate offset, with host-visible (HOST_VISIBLE | HOST_COHERENT)
// storage buffers standing in for unified memory. The host maps the counter
// and offset buffers after vkQueueWaitIdle returns.
//
// # Requirements
//
// For all platforms:
//   - Vulkan SDK: https://vulkan.lunarg.com/
//   - GPU with Vulkan 1.1+ support
//
// For Linux:
//
//	# Ubuntu/Debian
//	sudo apt install vulkan-tools libvulkan-dev
//
//	# Fedora
//	sudo dnf install vulkan-tools vulkan-loader-devel
//
// For macOS (via MoltenVK):
//   - brew install molten-vk
//
// # Build Tags
//
// The Vulkan bridge is opt-in: build with the vulkan tag and CGO enabled.
// Builds without the tag get a stub whose IsAvailable always reports false,
// so backend selection in pkg/compute falls through to the next candidate.
package vulkan
