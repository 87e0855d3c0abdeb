//go:build unix

package output

import (
	"os"

	"golang.org/x/sys/unix"
)

// iovMax bounds how many buffers one writev call may carry. POSIX guarantees
// at least 16; Linux and macOS allow 1024.
const iovMax = 1024

// Writer batches many small record buffers into few writev system calls.
type Writer struct {
	fd int
}

// NewWriter wraps an open file for vectored writes.
func NewWriter(f *os.File) *Writer {
	return &Writer{fd: int(f.Fd())}
}

// Write submits one buffer, retrying short writes until it drains.
func (w *Writer) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		n, err := unix.Writev(w.fd, [][]byte{p})
		if err != nil {
			return total, err
		}
		p = p[n:]
		total += n
	}
	return total, nil
}

// WriteVec submits the buffers in order using as few system calls as the
// platform allows. The vector is consumed: elements may be re-sliced while
// the write drains.
func (w *Writer) WriteVec(vec [][]byte) error {
	for len(vec) > 0 {
		if len(vec[0]) == 0 {
			vec = vec[1:]
			continue
		}

		chunk := vec
		if len(chunk) > iovMax {
			chunk = chunk[:iovMax]
		}

		n, err := unix.Writev(w.fd, chunk)
		if err != nil {
			return err
		}

		// Advance past what the kernel took; a short write leaves a
		// partial head buffer for the next round.
		for n > 0 {
			if n >= len(vec[0]) {
				n -= len(vec[0])
				vec = vec[1:]
				continue
			}
			vec[0] = vec[0][n:]
			n = 0
		}
	}
	return nil
}
