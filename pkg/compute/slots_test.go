package compute

import (
	"errors"
	"sync"
	"testing"
)

func newCounterBuffer(t *testing.T) Buffer {
	t.Helper()
	d, err := NewCPUDevice(1)
	if err != nil {
		t.Fatalf("NewCPUDevice() error = %v", err)
	}
	buf, err := d.NewBuffer(4)
	if err != nil {
		t.Fatalf("NewBuffer(4) error = %v", err)
	}
	return buf
}

func TestSlotAllocatorSequential(t *testing.T) {
	buf := newCounterBuffer(t)
	defer buf.Release()

	a, err := NewSlotAllocator(buf, 3)
	if err != nil {
		t.Fatalf("NewSlotAllocator() error = %v", err)
	}

	for want := uint32(0); want < 3; want++ {
		slot, ok := a.Reserve()
		if !ok {
			t.Fatalf("Reserve() #%d not granted, want grant", want)
		}
		if slot != want {
			t.Fatalf("Reserve() slot = %d, want %d", slot, want)
		}
	}
	if a.Count() != 3 {
		t.Errorf("Count() = %d, want 3", a.Count())
	}
}

func TestSlotAllocatorOverflowKeepsCounting(t *testing.T) {
	buf := newCounterBuffer(t)
	defer buf.Release()

	a, _ := NewSlotAllocator(buf, 2)

	a.Reserve()
	a.Reserve()
	for i := 0; i < 5; i++ {
		if _, ok := a.Reserve(); ok {
			t.Fatalf("Reserve() past capacity granted a slot")
		}
	}
	if a.Count() != 7 {
		t.Errorf("Count() = %d, want 7 (2 granted + 5 refused)", a.Count())
	}
}

func TestSlotAllocatorZeroCapacity(t *testing.T) {
	buf := newCounterBuffer(t)
	defer buf.Release()

	a, _ := NewSlotAllocator(buf, 0)
	if _, ok := a.Reserve(); ok {
		t.Error("Reserve() with zero capacity granted a slot")
	}
	if a.Count() != 1 {
		t.Errorf("Count() = %d, want 1", a.Count())
	}
}

func TestSlotAllocatorConcurrentUniqueness(t *testing.T) {
	const (
		goroutines = 16
		perWorker  = 200
		capacity   = 1000
	)

	buf := newCounterBuffer(t)
	defer buf.Release()

	a, err := NewSlotAllocator(buf, capacity)
	if err != nil {
		t.Fatalf("NewSlotAllocator() error = %v", err)
	}

	var mu sync.Mutex
	granted := make(map[uint32]int)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if slot, ok := a.Reserve(); ok {
					mu.Lock()
					granted[slot]++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if a.Count() != goroutines*perWorker {
		t.Errorf("Count() = %d, want %d", a.Count(), goroutines*perWorker)
	}
	if len(granted) != capacity {
		t.Errorf("granted %d distinct slots, want %d", len(granted), capacity)
	}
	for slot, n := range granted {
		if slot >= capacity {
			t.Errorf("slot %d out of range [0,%d)", slot, capacity)
		}
		if n != 1 {
			t.Errorf("slot %d granted %d times, want once", slot, n)
		}
	}
}

func TestSlotAllocatorCounterInBufferMemory(t *testing.T) {
	buf := newCounterBuffer(t)
	defer buf.Release()

	a, _ := NewSlotAllocator(buf, 10)
	a.Reserve()
	a.Reserve()
	a.Reserve()

	// The counter word is the buffer itself; the harvest path reads it back
	// through Bytes after the dispatch barrier.
	raw := buf.Bytes()
	got := uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24
	if got != 3 {
		t.Errorf("counter word in buffer = %d, want 3", got)
	}
}

type rawBuffer struct {
	data []byte
}

func (b rawBuffer) Bytes() []byte { return b.data }
func (b rawBuffer) Len() int      { return len(b.data) }
func (b rawBuffer) Release()      {}

func TestSlotAllocatorRejectsShortBuffer(t *testing.T) {
	_, err := NewSlotAllocator(rawBuffer{data: make([]byte, 3)}, 1)
	if !errors.Is(err, ErrBufferSize) {
		t.Errorf("NewSlotAllocator(short) error = %v, want ErrBufferSize", err)
	}
}

func TestSlotAllocatorRejectsMisalignedBuffer(t *testing.T) {
	backing := make([]byte, 16)
	_, err := NewSlotAllocator(rawBuffer{data: backing[1:6]}, 1)
	if !errors.Is(err, ErrBufferSize) {
		t.Errorf("NewSlotAllocator(misaligned) error = %v, want ErrBufferSize", err)
	}
}
