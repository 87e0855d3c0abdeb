package compute

import (
	"fmt"
	"runtime"

	"github.com/ygrebnov/errorc"

	"github.com/orneryd/gridgrep/pkg/compute/metal"
	"github.com/orneryd/gridgrep/pkg/compute/vulkan"
)

// Open selects and initializes a compute device.
//
// With BackendAuto it walks the platform detection order (Metal first on
// macOS, then Vulkan, then the host CPU) and returns the first backend that
// opens. The CPU device always opens, so auto-detection cannot fail.
//
// An explicit PreferredBackend is tried before the detection order. When it
// cannot be opened and FallbackOnError is false, Open fails with
// ErrUnavailable instead of silently running elsewhere.
func Open(config *Config) (Device, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	if config.PreferredBackend != BackendAuto && config.PreferredBackend != BackendNone {
		dev, err := tryBackend(config.PreferredBackend, config)
		if err == nil {
			return dev, nil
		}
		if !config.FallbackOnError {
			return nil, errorc.With(ErrUnavailable,
				errorc.String("backend", string(config.PreferredBackend)),
				errorc.String("cause", err.Error()))
		}
	}

	for _, backend := range detectOrder() {
		if dev, err := tryBackend(backend, config); err == nil {
			return dev, nil
		}
	}

	return nil, ErrUnavailable
}

// detectOrder returns the backends to probe for auto-detection on this
// platform, most capable first. The CPU device terminates every order.
func detectOrder() []Backend {
	switch runtime.GOOS {
	case "darwin":
		return []Backend{BackendMetal, BackendVulkan, BackendCPU}
	default:
		return []Backend{BackendVulkan, BackendCPU}
	}
}

// tryBackend attempts to open a specific backend.
func tryBackend(backend Backend, config *Config) (Device, error) {
	switch backend {
	case BackendCPU:
		return NewCPUDevice(config.Workers)
	case BackendMetal:
		return openMetal()
	case BackendVulkan:
		return openVulkan()
	default:
		return nil, ErrUnavailable
	}
}

func openMetal() (Device, error) {
	if !metal.IsAvailable() {
		return nil, ErrUnavailable
	}
	dev, err := metal.NewDevice()
	if err != nil {
		return nil, err
	}
	return &metalDevice{dev: dev}, nil
}

func openVulkan() (Device, error) {
	if !vulkan.IsAvailable() || vulkan.DeviceCount() == 0 {
		return nil, ErrUnavailable
	}
	dev, err := vulkan.NewDevice(0)
	if err != nil {
		return nil, err
	}
	return &vulkanDevice{dev: dev}, nil
}

// metalDevice adapts the Metal subpackage to the Device interface. Programs
// and buffers are unwrapped by type assertion at dispatch; objects that were
// not created on this device are refused rather than submitted.
type metalDevice struct {
	dev *metal.Device
}

func (d *metalDevice) Backend() Backend { return BackendMetal }

func (d *metalDevice) Name() string { return d.dev.Name() }

func (d *metalDevice) NewBuffer(n int) (Buffer, error) {
	if n < 0 {
		return nil, errorc.With(ErrBufferSize, errorc.String("reason", "negative size"))
	}
	buf, err := d.dev.NewBuffer(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBufferSize, err)
	}
	return &metalBuffer{buf: buf}, nil
}

func (d *metalDevice) NewBufferFrom(p []byte) (Buffer, error) {
	buf, err := d.dev.NewBufferFrom(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBufferSize, err)
	}
	return &metalBuffer{buf: buf}, nil
}

func (d *metalDevice) BuildProgram(k Kernel) (Program, error) {
	if k.Source == "" {
		return nil, errorc.With(ErrBuildProgram,
			errorc.String("kernel", k.Name),
			errorc.String("reason", "kernel has no device source"))
	}
	prog, err := d.dev.BuildProgram(k.Name, k.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildProgram, err)
	}
	return &metalProgram{prog: prog}, nil
}

func (d *metalDevice) Dispatch(grid int, prog Program, bufs ...Buffer) error {
	p, ok := prog.(*metalProgram)
	if !ok {
		return errorc.With(ErrDispatch, errorc.String("reason", "program not built for this device"))
	}
	raw := make([]*metal.Buffer, len(bufs))
	for i, b := range bufs {
		mb, ok := b.(*metalBuffer)
		if !ok {
			return errorc.With(ErrDispatch, errorc.String("reason", "buffer not allocated on this device"))
		}
		raw[i] = mb.buf
	}
	if err := d.dev.Dispatch(grid, p.prog, raw...); err != nil {
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}
	return nil
}

func (d *metalDevice) Wait() error {
	if err := d.dev.Wait(); err != nil {
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}
	return nil
}

func (d *metalDevice) Release() { d.dev.Release() }

type metalBuffer struct {
	buf *metal.Buffer
}

func (b *metalBuffer) Bytes() []byte { return b.buf.Bytes() }
func (b *metalBuffer) Len() int      { return b.buf.Len() }
func (b *metalBuffer) Release()      { b.buf.Release() }

type metalProgram struct {
	prog *metal.Program
}

func (p *metalProgram) Release() { p.prog.Release() }

// vulkanDevice adapts the Vulkan subpackage to the Device interface, with
// the same unwrap-and-refuse handling as the Metal adapter.
type vulkanDevice struct {
	dev *vulkan.Device
}

func (d *vulkanDevice) Backend() Backend { return BackendVulkan }

func (d *vulkanDevice) Name() string { return d.dev.Name() }

func (d *vulkanDevice) NewBuffer(n int) (Buffer, error) {
	if n < 0 {
		return nil, errorc.With(ErrBufferSize, errorc.String("reason", "negative size"))
	}
	buf, err := d.dev.NewBuffer(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBufferSize, err)
	}
	return &vulkanBuffer{buf: buf}, nil
}

func (d *vulkanDevice) NewBufferFrom(p []byte) (Buffer, error) {
	buf, err := d.dev.NewBufferFrom(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBufferSize, err)
	}
	return &vulkanBuffer{buf: buf}, nil
}

func (d *vulkanDevice) BuildProgram(k Kernel) (Program, error) {
	if k.Source == "" {
		return nil, errorc.With(ErrBuildProgram,
			errorc.String("kernel", k.Name),
			errorc.String("reason", "kernel has no device source"))
	}
	prog, err := d.dev.BuildProgram(k.Name, k.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildProgram, err)
	}
	return &vulkanProgram{prog: prog}, nil
}

func (d *vulkanDevice) Dispatch(grid int, prog Program, bufs ...Buffer) error {
	p, ok := prog.(*vulkanProgram)
	if !ok {
		return errorc.With(ErrDispatch, errorc.String("reason", "program not built for this device"))
	}
	raw := make([]*vulkan.Buffer, len(bufs))
	for i, b := range bufs {
		vb, ok := b.(*vulkanBuffer)
		if !ok {
			return errorc.With(ErrDispatch, errorc.String("reason", "buffer not allocated on this device"))
		}
		raw[i] = vb.buf
	}
	if err := d.dev.Dispatch(grid, p.prog, raw...); err != nil {
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}
	return nil
}

func (d *vulkanDevice) Wait() error {
	if err := d.dev.Wait(); err != nil {
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}
	return nil
}

func (d *vulkanDevice) Release() { d.dev.Release() }

type vulkanBuffer struct {
	buf *vulkan.Buffer
}

func (b *vulkanBuffer) Bytes() []byte { return b.buf.Bytes() }
func (b *vulkanBuffer) Len() int      { return b.buf.Len() }
func (b *vulkanBuffer) Release()      { b.buf.Release() }

type vulkanProgram struct {
	prog *vulkan.Program
}

func (p *vulkanProgram) Release() { p.prog.Release() }
