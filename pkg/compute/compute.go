// Package compute abstracts the parallel device that runs gridgrep's
// comparison phase.
//
// A search is expressed as one kernel dispatched across a grid of instance
// IDs, reading and writing unified memory buffers that both the host and the
// device can address. The package ships a CPU reference device (always
// available) and hardware backends behind opt-in build tags
// (pkg/compute/metal, pkg/compute/vulkan). Open selects the best available
// backend for the current platform.
//
// Usage:
//
//	dev, err := compute.Open(nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Release()
//
//	prog, err := dev.BuildProgram(kernel)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer prog.Release()
//
//	if err := dev.Dispatch(grid, prog, text, pattern, counter, offsets); err != nil {
//		log.Fatal(err)
//	}
//	if err := dev.Wait(); err != nil {
//		log.Fatal(err)
//	}
//
// Execution model: SIMT-style. The host issues one batch with Dispatch and
// performs one blocking Wait; there is no cancellation, no timeout, and no
// partial result. Buffer contents written by kernel instances must not be
// read until Wait returns.
package compute

// Backend identifies a compute backend implementation.
type Backend string

const (
	// BackendNone means no backend has been selected.
	BackendNone Backend = ""
	// BackendAuto selects the best available backend for the platform.
	BackendAuto Backend = "auto"
	// BackendCPU runs kernel instances on host goroutines.
	BackendCPU Backend = "cpu"
	// BackendMetal runs kernels on Apple GPUs (darwin, metalgpu build tag).
	BackendMetal Backend = "metal"
	// BackendVulkan runs kernels through Vulkan compute (vulkan build tag).
	BackendVulkan Backend = "vulkan"
)

// HostFunc is the statically compiled form of a kernel: a closure executed
// once per instance ID by CPU-class backends. The closure owns no mutable
// state beyond what it was built over; cross-instance coordination goes
// through a SlotAllocator or equivalent atomic primitive.
type HostFunc func(tid uint32)

// Kernel describes one compute routine in both forms a device may want.
// Hardware backends compile Source; CPU-class backends run Host directly.
// The two forms must be semantically identical.
type Kernel struct {
	// Name is the kernel entry point.
	Name string
	// Source is the device-language program text.
	Source string
	// Host is the host-side implementation.
	Host HostFunc
}

// Buffer is unified memory: a region addressable by the host and by kernel
// instances without an explicit copy step.
type Buffer interface {
	// Bytes returns the host view of the buffer contents. The slice stays
	// valid until Release. Contents written by kernel instances are only
	// coherent after the dispatch barrier (Device.Wait) returns.
	Bytes() []byte
	// Len returns the buffer size in bytes.
	Len() int
	// Release frees the buffer. The host view is invalid afterwards.
	Release()
}

// Program is a kernel compiled for one specific device. Programs are not
// portable across devices.
type Program interface {
	// Release frees the compiled program.
	Release()
}

// Device is the capability surface every backend provides: allocate shared
// buffers, build a kernel program, dispatch a grid, and wait for the single
// completion barrier.
//
// Dispatch is asynchronous; Wait blocks until every instance of the pending
// dispatch has completed and surfaces any instance fault. Dispatch and Wait
// pair one-to-one and are intended for a single host goroutine.
type Device interface {
	// Backend reports which backend this device belongs to.
	Backend() Backend
	// Name returns a human-readable device description.
	Name() string
	// NewBuffer allocates a zero-filled shared buffer of n bytes.
	NewBuffer(n int) (Buffer, error)
	// NewBufferFrom allocates a shared buffer initialized with a copy of p.
	NewBufferFrom(p []byte) (Buffer, error)
	// BuildProgram compiles k for this device.
	BuildProgram(k Kernel) (Program, error)
	// Dispatch submits grid kernel instances, tid in [0, grid), binding
	// bufs in argument order. It returns once the batch is submitted.
	Dispatch(grid int, prog Program, bufs ...Buffer) error
	// Wait blocks until the pending dispatch completes.
	Wait() error
	// Release frees all device resources. Buffers and programs created by
	// the device must be released before the device itself.
	Release()
}
