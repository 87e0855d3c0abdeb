// Package grep runs literal substring searches as data-parallel kernel
// dispatches over a compute device.
//
// One search is one dispatch: every candidate offset of the haystack gets a
// kernel instance, matching instances reserve result slots through an atomic
// counter in shared buffer memory, and the host harvests offsets after the
// completion barrier. Capacity overflow degrades the result instead of
// failing it: the logical match count keeps growing while only the first
// granted slots retain offsets.
//
// Usage:
//
//	dev, err := compute.Open(nil)
//	if err != nil { ... }
//	defer dev.Release()
//
//	eng, err := grep.NewEngine(dev, nil)
//	if err != nil { ... }
//	rep, err := eng.Search(haystack, pattern)
package grep

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/orneryd/gridgrep/pkg/compute"
	"github.com/orneryd/gridgrep/pkg/lineindex"
)

// Engine runs searches on one compute device. It is not safe for concurrent
// use: the device allows one dispatch in flight.
type Engine struct {
	dev compute.Device
	cfg Config
}

// NewEngine binds an engine to an open device. A nil cfg uses
// DefaultConfig.
func NewEngine(dev compute.Device, cfg *Config) (*Engine, error) {
	if dev == nil {
		return nil, ErrNoDevice
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Engine{dev: dev, cfg: *cfg}, nil
}

// Search finds every occurrence of pattern in haystack and resolves each
// retained occurrence to its line. An empty pattern, an empty haystack, or a
// pattern longer than the haystack yields an empty report without touching
// the device. Device errors abort the search.
func (e *Engine) Search(haystack, pattern []byte) (*Report, error) {
	n, m := len(haystack), len(pattern)
	if m == 0 || n == 0 || m > n {
		return &Report{}, nil
	}

	capacity := uint32(e.cfg.Capacity)

	text, err := e.dev.NewBufferFrom(haystack)
	if err != nil {
		return nil, fmt.Errorf("allocate text buffer: %w", err)
	}
	defer text.Release()

	pat, err := e.dev.NewBufferFrom(pattern)
	if err != nil {
		return nil, fmt.Errorf("allocate pattern buffer: %w", err)
	}
	defer pat.Release()

	offsets, err := e.dev.NewBuffer(e.cfg.Capacity * 4)
	if err != nil {
		return nil, fmt.Errorf("allocate offsets buffer: %w", err)
	}
	defer offsets.Release()

	counter, err := e.dev.NewBuffer(4)
	if err != nil {
		return nil, fmt.Errorf("allocate counter buffer: %w", err)
	}
	defer counter.Release()

	params, err := e.dev.NewBufferFrom(packParams(uint32(m), capacity))
	if err != nil {
		return nil, fmt.Errorf("allocate params buffer: %w", err)
	}
	defer params.Release()

	slots, err := compute.NewSlotAllocator(counter, capacity)
	if err != nil {
		return nil, fmt.Errorf("place slot counter: %w", err)
	}

	prog, err := e.dev.BuildProgram(matchKernel(text.Bytes(), pat.Bytes(), slots, offsets))
	if err != nil {
		return nil, fmt.Errorf("build kernel program: %w", err)
	}
	defer prog.Release()

	// One instance per candidate offset.
	grid := n - m + 1
	if err := e.dev.Dispatch(grid, prog, text, pat, offsets, counter, params); err != nil {
		return nil, fmt.Errorf("dispatch kernel: %w", err)
	}
	if err := e.dev.Wait(); err != nil {
		return nil, fmt.Errorf("wait for completion: %w", err)
	}

	total := int(slots.Count())
	retained := min(total, e.cfg.Capacity)

	raw := offsets.Bytes()
	found := make([]int, retained)
	for i := range found {
		found[i] = int(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	if e.cfg.SortOffsets {
		slices.Sort(found)
	}

	ix := lineindex.New(haystack)
	matches := make([]Match, retained)
	for i, off := range found {
		pos := ix.Locate(off)
		matches[i] = Match{
			Offset: off,
			Line:   pos.Line,
			Text:   string(haystack[pos.Start:pos.End]),
		}
	}

	return &Report{Total: total, Matches: matches}, nil
}
