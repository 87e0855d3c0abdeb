package compute

import (
	"sync/atomic"
	"unsafe"

	"github.com/ygrebnov/errorc"
)

// SlotAllocator hands out write-once result slots to concurrent kernel
// instances by atomically incrementing a counter word that lives in a shared
// buffer. Because the counter is buffer memory, host-run kernels and
// device-run kernels observe identical semantics: a device kernel performs
// its own atomic fetch-and-increment on the same word, and the host reads
// the final value back after the dispatch barrier.
//
// Every reservation is counted, granted or not, so overflow is detected
// rather than prevented: Count may exceed Capacity, and only the first
// Capacity reservations receive a slot. Pre-increment values are unique,
// which makes each granted slot write-once with no further locking.
type SlotAllocator struct {
	count    *atomic.Uint32
	capacity uint32
}

// NewSlotAllocator places the counter on the first word of counter, which
// must hold at least 4 bytes, be 4-byte aligned, and be zero-initialized by
// the caller. This is the only place gridgrep reinterprets buffer memory.
func NewSlotAllocator(counter Buffer, capacity uint32) (*SlotAllocator, error) {
	b := counter.Bytes()
	if len(b) < 4 {
		return nil, errorc.With(ErrBufferSize, errorc.String("reason", "counter buffer needs at least 4 bytes"))
	}
	p := unsafe.Pointer(&b[0])
	if uintptr(p)%4 != 0 {
		return nil, errorc.With(ErrBufferSize, errorc.String("reason", "counter buffer must be 4-byte aligned"))
	}
	return &SlotAllocator{
		count:    (*atomic.Uint32)(p),
		capacity: capacity,
	}, nil
}

// Reserve atomically claims the next counter value. It returns the claimed
// slot index and true while the pre-increment value is below capacity;
// afterwards it keeps counting but returns false.
func (a *SlotAllocator) Reserve() (uint32, bool) {
	n := a.count.Add(1) - 1
	if n < a.capacity {
		return n, true
	}
	return 0, false
}

// Count returns the logical number of reservations so far. It may exceed
// Capacity. Reading a meaningful final value requires the dispatch barrier
// to have returned.
func (a *SlotAllocator) Count() uint32 {
	return a.count.Load()
}

// Capacity returns the number of slots that can actually be granted.
func (a *SlotAllocator) Capacity() uint32 {
	return a.capacity
}
