package grep

import (
	"encoding/binary"

	"github.com/orneryd/gridgrep/pkg/compute"
)

const matchKernelName = "match_literal"

// matchKernelSource is the device form of the search kernel. One instance
// runs per candidate offset: instance tid compares the pattern right to left
// against text[tid:], reserves a result slot on a full match, and writes tid
// into the slot. The engine sizes the grid to the candidate count, so the
// kernel does not re-check text bounds. Slots past capacity are counted but
// not written.
const matchKernelSource = `
#include <metal_stdlib>
using namespace metal;

struct match_params {
    uint pattern_len;
    uint capacity;
};

kernel void match_literal(
    device const uchar* text      [[buffer(0)]],
    device const uchar* pattern   [[buffer(1)]],
    device uint* match_offsets    [[buffer(2)]],
    device atomic_uint* slots     [[buffer(3)]],
    constant match_params& params [[buffer(4)]],
    uint tid [[thread_position_in_grid]])
{
    int j = int(params.pattern_len) - 1;
    while (j >= 0 && pattern[j] == text[tid + j]) {
        j--;
    }
    if (j < 0) {
        uint slot = atomic_fetch_add_explicit(slots, 1u, memory_order_relaxed);
        if (slot < params.capacity) {
            match_offsets[slot] = tid;
        }
    }
}
`

// matchKernel builds the two-form search kernel over already-allocated
// device buffers. The host form closes over the buffer contents and the slot
// allocator so it observes exactly the memory the device form would; both
// forms compare right to left and record match offsets as little-endian
// 32-bit words.
func matchKernel(text, pattern []byte, slots *compute.SlotAllocator, offsets compute.Buffer) compute.Kernel {
	out := offsets.Bytes()
	return compute.Kernel{
		Name:   matchKernelName,
		Source: matchKernelSource,
		Host: func(tid uint32) {
			j := len(pattern) - 1
			for j >= 0 && pattern[j] == text[int(tid)+j] {
				j--
			}
			if j < 0 {
				if slot, ok := slots.Reserve(); ok {
					binary.LittleEndian.PutUint32(out[int(slot)*4:], tid)
				}
			}
		},
	}
}

// packParams lays out the constant parameter block the way the device kernel
// declares it: two 32-bit little-endian words.
func packParams(patternLen, capacity uint32) []byte {
	p := make([]byte, 8)
	binary.LittleEndian.PutUint32(p[0:4], patternLen)
	binary.LittleEndian.PutUint32(p[4:8], capacity)
	return p
}
