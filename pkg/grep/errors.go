package grep

import "errors"

// Namespace prefixes every sentinel error in this package.
const Namespace = "grep"

var (
	// ErrNoDevice indicates the engine was constructed without a compute
	// device.
	ErrNoDevice = errors.New(Namespace + ": no compute device")
	// ErrInvalidConfig indicates an unusable Config value.
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
)
