//go:build !metalgpu
// +build !metalgpu

// This is a stub implementation for builds without Metal support.

package metal

import (
	"errors"
)

// Errors
var (
	ErrMetalNotAvailable = errors.New("metal: Metal is not available (build without metalgpu tag or non-darwin platform)")
	ErrDeviceCreation    = errors.New("metal: failed to create Metal device")
	ErrBufferCreation    = errors.New("metal: failed to create buffer")
	ErrProgramBuild      = errors.New("metal: kernel program build failed")
	ErrCommandSubmit     = errors.New("metal: command submission failed")
)

// Device represents a Metal GPU device (stub).
type Device struct{}

// Buffer represents a unified-memory Metal buffer (stub).
type Buffer struct{}

// Program represents a compiled Metal compute pipeline (stub).
type Program struct{}

// IsAvailable returns false on builds without Metal.
func IsAvailable() bool {
	return false
}

// NewDevice returns an error on builds without Metal.
func NewDevice() (*Device, error) {
	return nil, ErrMetalNotAvailable
}

// Release is a no-op stub.
func (d *Device) Release() {}

// Name returns empty string.
func (d *Device) Name() string { return "" }

// MemoryMB returns 0.
func (d *Device) MemoryMB() int { return 0 }

// NewBuffer returns an error on builds without Metal.
func (d *Device) NewBuffer(n int) (*Buffer, error) {
	return nil, ErrMetalNotAvailable
}

// NewBufferFrom returns an error on builds without Metal.
func (d *Device) NewBufferFrom(p []byte) (*Buffer, error) {
	return nil, ErrMetalNotAvailable
}

// BuildProgram returns an error on builds without Metal.
func (d *Device) BuildProgram(name, source string) (*Program, error) {
	return nil, ErrMetalNotAvailable
}

// Dispatch returns an error on builds without Metal.
func (d *Device) Dispatch(grid int, prog *Program, bufs ...*Buffer) error {
	return ErrMetalNotAvailable
}

// Wait returns an error on builds without Metal.
func (d *Device) Wait() error {
	return ErrMetalNotAvailable
}

// Bytes returns nil.
func (b *Buffer) Bytes() []byte { return nil }

// Len returns 0.
func (b *Buffer) Len() int { return 0 }

// Release is a no-op stub.
func (b *Buffer) Release() {}

// Release is a no-op stub.
func (p *Program) Release() {}
