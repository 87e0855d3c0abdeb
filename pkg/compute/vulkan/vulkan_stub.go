//go:build !vulkan
// +build !vulkan

// This is a stub implementation for systems without Vulkan support.

package vulkan

import (
	"errors"
)

// Errors
var (
	ErrVulkanNotAvailable = errors.New("vulkan: Vulkan is not available (build without vulkan tag)")
	ErrDeviceCreation     = errors.New("vulkan: failed to create Vulkan device")
	ErrBufferCreation     = errors.New("vulkan: failed to create buffer")
	ErrProgramBuild       = errors.New("vulkan: shader module build failed")
	ErrQueueSubmit        = errors.New("vulkan: queue submission failed")
)

// Device represents a Vulkan compute device (stub).
type Device struct{}

// Buffer represents a host-visible Vulkan buffer (stub).
type Buffer struct{}

// Program represents a compiled compute pipeline (stub).
type Program struct{}

// IsAvailable returns false on systems without Vulkan.
func IsAvailable() bool {
	return false
}

// DeviceCount returns 0 on systems without Vulkan.
func DeviceCount() int {
	return 0
}

// NewDevice returns an error on systems without Vulkan.
func NewDevice(deviceID int) (*Device, error) {
	return nil, ErrVulkanNotAvailable
}

// Release is a no-op stub.
func (d *Device) Release() {}

// Name returns empty string.
func (d *Device) Name() string { return "" }

// MemoryMB returns 0.
func (d *Device) MemoryMB() int { return 0 }

// NewBuffer returns an error on systems without Vulkan.
func (d *Device) NewBuffer(n int) (*Buffer, error) {
	return nil, ErrVulkanNotAvailable
}

// NewBufferFrom returns an error on systems without Vulkan.
func (d *Device) NewBufferFrom(p []byte) (*Buffer, error) {
	return nil, ErrVulkanNotAvailable
}

// BuildProgram returns an error on systems without Vulkan.
func (d *Device) BuildProgram(name, source string) (*Program, error) {
	return nil, ErrVulkanNotAvailable
}

// Dispatch returns an error on systems without Vulkan.
func (d *Device) Dispatch(grid int, prog *Program, bufs ...*Buffer) error {
	return ErrVulkanNotAvailable
}

// Wait returns an error on systems without Vulkan.
func (d *Device) Wait() error {
	return ErrVulkanNotAvailable
}

// Bytes returns nil.
func (b *Buffer) Bytes() []byte { return nil }

// Len returns 0.
func (b *Buffer) Len() int { return 0 }

// Release is a no-op stub.
func (b *Buffer) Release() {}

// Release is a no-op stub.
func (p *Program) Release() {}
