package grep

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/gridgrep/pkg/compute"
)

type hostHarness struct {
	kernel  compute.Kernel
	slots   *compute.SlotAllocator
	offsets compute.Buffer
}

// newHostHarness wires the host form of the match kernel to real device
// buffers so tests can drive single instances by hand.
func newHostHarness(t *testing.T, text, pattern string, capacity uint32) *hostHarness {
	t.Helper()

	dev, err := compute.NewCPUDevice(1)
	require.NoError(t, err)
	t.Cleanup(dev.Release)

	textBuf, err := dev.NewBufferFrom([]byte(text))
	require.NoError(t, err)
	t.Cleanup(textBuf.Release)

	patBuf, err := dev.NewBufferFrom([]byte(pattern))
	require.NoError(t, err)
	t.Cleanup(patBuf.Release)

	counter, err := dev.NewBuffer(4)
	require.NoError(t, err)
	t.Cleanup(counter.Release)

	offsets, err := dev.NewBuffer(int(capacity) * 4)
	require.NoError(t, err)
	t.Cleanup(offsets.Release)

	slots, err := compute.NewSlotAllocator(counter, capacity)
	require.NoError(t, err)

	return &hostHarness{
		kernel:  matchKernel(textBuf.Bytes(), patBuf.Bytes(), slots, offsets),
		slots:   slots,
		offsets: offsets,
	}
}

func (h *hostHarness) recordedOffset(slot int) uint32 {
	return binary.LittleEndian.Uint32(h.offsets.Bytes()[slot*4:])
}

func TestMatchKernelHostForm(t *testing.T) {
	t.Run("match at final candidate offset", func(t *testing.T) {
		h := newHostHarness(t, "xxab", "ab", 8)

		h.kernel.Host(0)
		h.kernel.Host(1)
		h.kernel.Host(2)

		require.EqualValues(t, 1, h.slots.Count())
		assert.EqualValues(t, 2, h.recordedOffset(0))
	})

	t.Run("suffix mismatch rejects early", func(t *testing.T) {
		// tid 0 sees 'a' twice: the right-to-left compare fails on the
		// last pattern byte before touching the first.
		h := newHostHarness(t, "aab", "ab", 8)

		h.kernel.Host(0)
		assert.EqualValues(t, 0, h.slots.Count())

		h.kernel.Host(1)
		require.EqualValues(t, 1, h.slots.Count())
		assert.EqualValues(t, 1, h.recordedOffset(0))
	})

	t.Run("single byte pattern", func(t *testing.T) {
		h := newHostHarness(t, "aba", "a", 8)

		for tid := uint32(0); tid < 3; tid++ {
			h.kernel.Host(tid)
		}

		require.EqualValues(t, 2, h.slots.Count())
		assert.EqualValues(t, 0, h.recordedOffset(0))
		assert.EqualValues(t, 2, h.recordedOffset(1))
	})

	t.Run("overflow counts without writing", func(t *testing.T) {
		h := newHostHarness(t, "zzzaaa", "a", 1)

		h.kernel.Host(3)
		h.kernel.Host(4)
		h.kernel.Host(5)

		assert.EqualValues(t, 3, h.slots.Count())
		assert.EqualValues(t, 3, h.recordedOffset(0), "first grant keeps its slot")
	})
}

func TestMatchKernelDeviceForm(t *testing.T) {
	k := matchKernel(nil, nil, nil, mustBuffer(t, 4))

	assert.Equal(t, matchKernelName, k.Name)
	assert.Contains(t, k.Source, "kernel void "+matchKernelName,
		"device entry point must carry the kernel name")
}

func mustBuffer(t *testing.T, n int) compute.Buffer {
	t.Helper()
	dev, err := compute.NewCPUDevice(1)
	require.NoError(t, err)
	t.Cleanup(dev.Release)

	buf, err := dev.NewBuffer(n)
	require.NoError(t, err)
	t.Cleanup(buf.Release)
	return buf
}

func TestPackParams(t *testing.T) {
	p := packParams(3, 0x01020304)
	assert.Equal(t, []byte{3, 0, 0, 0, 4, 3, 2, 1}, p)
}
