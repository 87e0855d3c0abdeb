package compute

import (
	"fmt"
	"runtime"

	"github.com/ygrebnov/errorc"
	"golang.org/x/sync/errgroup"
)

// CPUDevice is the reference backend: kernel instances run on host
// goroutines. It is always available, needs no driver and no build tag, and
// its buffers are ordinary heap slices, so "unified memory" is literal.
//
// Dispatch partitions the instance grid into contiguous ranges across a
// fixed worker count; Wait blocks on the whole group and surfaces the first
// fault, which is how a kernel panic is reported, mirroring a device fault
// appearing at the command-buffer barrier. Dispatch and Wait pair one-to-one
// from a single host goroutine; a second Dispatch before Wait is rejected.
type CPUDevice struct {
	workers int
	pending *errgroup.Group
}

// NewCPUDevice creates a CPU device with the given worker count.
// workers = 0 uses all logical CPUs, workers = 1 runs sequentially.
func NewCPUDevice(workers int) (*CPUDevice, error) {
	if workers < 0 {
		return nil, errorc.With(ErrInvalidConfig, errorc.String("reason", "workers must be >= 0"))
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &CPUDevice{workers: workers}, nil
}

// Backend reports BackendCPU.
func (d *CPUDevice) Backend() Backend {
	return BackendCPU
}

// Name describes the device and its parallelism.
func (d *CPUDevice) Name() string {
	return fmt.Sprintf("host CPU (%d workers)", d.workers)
}

// Workers returns the goroutine count used per dispatch.
func (d *CPUDevice) Workers() int {
	return d.workers
}

// NewBuffer allocates a zero-filled buffer of n bytes.
func (d *CPUDevice) NewBuffer(n int) (Buffer, error) {
	if n < 0 {
		return nil, errorc.With(ErrBufferSize, errorc.String("reason", "negative size"))
	}
	return &cpuBuffer{data: make([]byte, n)}, nil
}

// NewBufferFrom allocates a buffer holding a copy of p, so the caller's
// slice stays untouched for the lifetime of the dispatch.
func (d *CPUDevice) NewBufferFrom(p []byte) (Buffer, error) {
	data := make([]byte, len(p))
	copy(data, p)
	return &cpuBuffer{data: data}, nil
}

// BuildProgram keeps the kernel's host closure. A kernel carrying only
// device source cannot run here.
func (d *CPUDevice) BuildProgram(k Kernel) (Program, error) {
	if k.Host == nil {
		return nil, errorc.With(ErrBuildProgram,
			errorc.String("kernel", k.Name),
			errorc.String("reason", "no host implementation"))
	}
	return &cpuProgram{name: k.Name, host: k.Host}, nil
}

// Dispatch submits grid instances of prog. The grid is split into
// contiguous ranges across min(workers, grid) goroutines; buffer bindings
// are closure state on this backend, so bufs is accepted for interface
// parity and otherwise unused.
func (d *CPUDevice) Dispatch(grid int, prog Program, bufs ...Buffer) error {
	if d.pending != nil {
		return errorc.With(ErrDispatch, errorc.String("reason", "dispatch already in flight"))
	}
	p, ok := prog.(*cpuProgram)
	if !ok || p.host == nil {
		return errorc.With(ErrDispatch, errorc.String("reason", "program not built for this device"))
	}
	if grid <= 0 {
		return nil
	}

	workers := d.workers
	if workers > grid {
		workers = grid
	}
	chunk := (grid + workers - 1) / workers

	g := new(errgroup.Group)
	for lo := 0; lo < grid; lo += chunk {
		hi := min(lo+chunk, grid)
		g.Go(func() error {
			return runRange(p.host, uint32(lo), uint32(hi))
		})
	}
	d.pending = g
	return nil
}

// Wait blocks until the pending dispatch completes and returns the first
// instance fault, if any. Wait without a pending dispatch is a no-op.
func (d *CPUDevice) Wait() error {
	g := d.pending
	if g == nil {
		return nil
	}
	d.pending = nil
	return g.Wait()
}

// Release is a no-op; the device holds no resources beyond its buffers,
// which the caller releases individually.
func (d *CPUDevice) Release() {}

// runRange executes one contiguous instance range, converting a kernel
// panic into a device fault.
func runRange(host HostFunc, lo, hi uint32) (err error) {
	tid := lo
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: instance %d panicked: %v", ErrDispatch, tid, r)
		}
	}()
	for ; tid < hi; tid++ {
		host(tid)
	}
	return nil
}

type cpuBuffer struct {
	data []byte
}

func (b *cpuBuffer) Bytes() []byte { return b.data }

func (b *cpuBuffer) Len() int { return len(b.data) }

func (b *cpuBuffer) Release() { b.data = nil }

type cpuProgram struct {
	name string
	host HostFunc
}

func (p *cpuProgram) Release() { p.host = nil }
