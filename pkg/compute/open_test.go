package compute

import (
	"errors"
	"runtime"
	"testing"

	"github.com/orneryd/gridgrep/pkg/compute/metal"
)

func TestOpen(t *testing.T) {
	t.Run("auto selects a device", func(t *testing.T) {
		dev, err := Open(nil)
		if err != nil {
			t.Fatalf("Open(nil) error = %v", err)
		}
		defer dev.Release()

		if dev.Backend() == BackendNone {
			t.Error("Backend() = none, want a concrete backend")
		}
		if dev.Name() == "" {
			t.Error("Name() should not be empty")
		}
		t.Logf("selected backend: %s (%s)", dev.Backend(), dev.Name())
	})

	t.Run("explicit cpu", func(t *testing.T) {
		dev, err := Open(&Config{PreferredBackend: BackendCPU, Workers: 2})
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer dev.Release()

		if dev.Backend() != BackendCPU {
			t.Errorf("Backend() = %q, want %q", dev.Backend(), BackendCPU)
		}
	})

	t.Run("preferred backend missing without fallback", func(t *testing.T) {
		if metal.IsAvailable() {
			t.Skip("Metal present on this build")
		}
		_, err := Open(&Config{PreferredBackend: BackendMetal, FallbackOnError: false})
		if !errors.Is(err, ErrUnavailable) {
			t.Errorf("Open() error = %v, want ErrUnavailable", err)
		}
	})

	t.Run("preferred backend missing with fallback", func(t *testing.T) {
		dev, err := Open(&Config{PreferredBackend: BackendMetal, FallbackOnError: true})
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer dev.Release()

		if dev.Backend() == BackendMetal && !metal.IsAvailable() {
			t.Error("Backend() = metal on a build without Metal")
		}
		t.Logf("fell back to: %s", dev.Backend())
	})

	t.Run("negative workers", func(t *testing.T) {
		_, err := Open(&Config{PreferredBackend: BackendCPU, Workers: -4})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Open() error = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := Open(&Config{PreferredBackend: Backend("opencl")})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Open() error = %v, want ErrInvalidConfig", err)
		}
	})
}

func TestDetectOrder(t *testing.T) {
	order := detectOrder()
	if len(order) == 0 {
		t.Fatal("detectOrder() returned no backends")
	}
	if order[len(order)-1] != BackendCPU {
		t.Errorf("detection order must end at the CPU device, got %v", order)
	}
	if runtime.GOOS == "darwin" && order[0] != BackendMetal {
		t.Errorf("darwin detection order should start with metal, got %v", order)
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"", BackendAuto, false},
		{"auto", BackendAuto, false},
		{"cpu", BackendCPU, false},
		{"CPU", BackendCPU, false},
		{" metal ", BackendMetal, false},
		{"vulkan", BackendVulkan, false},
		{"opencl", BackendNone, true},
		{"gpu", BackendNone, true},
	}

	for _, tt := range tests {
		got, err := ParseBackend(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("ParseBackend(%q) error = %v, want ErrInvalidConfig", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBackend(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBackend(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.PreferredBackend != BackendAuto {
		t.Errorf("PreferredBackend = %q, want %q", cfg.PreferredBackend, BackendAuto)
	}
	if !cfg.FallbackOnError {
		t.Error("FallbackOnError should default to true")
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0", cfg.Workers)
	}
}
