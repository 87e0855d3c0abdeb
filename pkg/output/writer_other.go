//go:build !unix

package output

import (
	"os"
)

// Writer degrades to plain sequential writes on platforms without writev.
type Writer struct {
	f *os.File
}

// NewWriter wraps an open file.
func NewWriter(f *os.File) *Writer {
	return &Writer{f: f}
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.f.Write(p)
}

// WriteVec writes the buffers in order, one write per buffer.
func (w *Writer) WriteVec(vec [][]byte) error {
	for _, p := range vec {
		if len(p) == 0 {
			continue
		}
		if _, err := w.f.Write(p); err != nil {
			return err
		}
	}
	return nil
}
