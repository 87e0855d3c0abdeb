package compute

import (
	"strings"

	"github.com/ygrebnov/errorc"
)

// Config controls backend selection and CPU-device parallelism.
type Config struct {
	// PreferredBackend is tried first. BackendAuto (the default) walks the
	// platform detection order and always ends at the CPU device.
	PreferredBackend Backend

	// FallbackOnError continues down the detection order when the
	// preferred backend cannot be opened. When false, a failed preference
	// is fatal.
	FallbackOnError bool

	// Workers is the CPU device goroutine count. 0 uses all logical CPUs,
	// 1 runs instances sequentially.
	Workers int
}

// DefaultConfig returns the auto-detecting configuration.
func DefaultConfig() *Config {
	return &Config{
		PreferredBackend: BackendAuto,
		FallbackOnError:  true,
		Workers:          0,
	}
}

func (c *Config) validate() error {
	if c.Workers < 0 {
		return errorc.With(ErrInvalidConfig, errorc.String("reason", "Workers must be >= 0"))
	}
	switch c.PreferredBackend {
	case BackendNone, BackendAuto, BackendCPU, BackendMetal, BackendVulkan:
		return nil
	default:
		return errorc.With(ErrInvalidConfig, errorc.String("backend", string(c.PreferredBackend)))
	}
}

// ParseBackend maps a user-supplied name to a Backend. The empty string and
// "auto" both select auto-detection.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case BackendNone, BackendAuto:
		return BackendAuto, nil
	case BackendCPU:
		return BackendCPU, nil
	case BackendMetal:
		return BackendMetal, nil
	case BackendVulkan:
		return BackendVulkan, nil
	default:
		return BackendNone, errorc.With(ErrInvalidConfig, errorc.String("backend", s))
	}
}
