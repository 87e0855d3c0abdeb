package grep

import (
	"math"

	"github.com/ygrebnov/errorc"
)

// DefaultCapacity bounds how many match offsets one search retains.
const DefaultCapacity = 10000

// Config controls one engine's search behavior.
type Config struct {
	// Capacity is the fixed number of result slots allocated per search.
	// Discovery continues past it; excess matches are counted but their
	// offsets are dropped.
	Capacity int

	// SortOffsets orders retained matches by offset before line
	// resolution. Slot grant order across concurrent kernel instances is
	// nondeterministic, so reports are in discovery order unless set.
	SortOffsets bool
}

// DefaultConfig returns a Config with the default capacity and
// discovery-order reporting.
func DefaultConfig() *Config {
	return &Config{Capacity: DefaultCapacity}
}

func (c *Config) validate() error {
	if c.Capacity <= 0 {
		return errorc.With(ErrInvalidConfig, errorc.String("reason", "Capacity must be > 0"))
	}
	if int64(c.Capacity) > math.MaxUint32 {
		return errorc.With(ErrInvalidConfig, errorc.String("reason", "Capacity does not fit a 32-bit slot counter"))
	}
	return nil
}
