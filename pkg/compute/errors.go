package compute

import "errors"

// Namespace prefixes every sentinel error in this package.
const Namespace = "compute"

var (
	// ErrUnavailable indicates no usable backend could be opened, or an
	// explicitly requested backend is not present on this system.
	ErrUnavailable = errors.New(Namespace + ": backend not available")
	// ErrBuildProgram indicates a kernel program failed to build for the
	// selected device.
	ErrBuildProgram = errors.New(Namespace + ": kernel program build failed")
	// ErrDispatch indicates a dispatch could not be submitted or an
	// instance faulted before the completion barrier.
	ErrDispatch = errors.New(Namespace + ": dispatch failed")
	// ErrBufferSize indicates a buffer that could not be allocated or that
	// does not satisfy a primitive's size or alignment requirements.
	ErrBufferSize = errors.New(Namespace + ": invalid buffer")
	// ErrInvalidConfig indicates an unusable Config value.
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
)
