// Package lineindex maps byte offsets in a text to 1-based line numbers and
// line boundaries.
//
// The index is built once in a single pass and then answers offset queries
// with a binary search, so resolving k match offsets over an n-byte text
// costs O(n + k log n) instead of rescanning the text per match.
//
// Usage:
//
//	ix := lineindex.New(data)
//	pos := ix.Locate(offset)
//	line := data[pos.Start:pos.End] // trailing newline excluded
package lineindex

import "bytes"

// Index holds the precomputed line-start offsets of one text.
type Index struct {
	starts []int
	size   int
}

// Position describes the line containing a byte offset.
type Position struct {
	// Line is the 1-based line number.
	Line int
	// Start is the byte offset of the first byte of the line.
	Start int
	// End is the byte offset one past the last byte of the line. The
	// trailing newline is excluded; a carriage return before it is not.
	End int
}

// New builds the index for data. Offset 0 is always a line start, and every
// newline opens a new line at the following byte. Text that ends with a
// newline therefore records a final empty line at offset len(data).
func New(data []byte) *Index {
	starts := make([]int, 1, bytes.Count(data, []byte{'\n'})+1)
	starts[0] = 0

	pos := 0
	for {
		i := bytes.IndexByte(data[pos:], '\n')
		if i < 0 {
			break
		}
		pos += i + 1
		starts = append(starts, pos)
	}

	return &Index{starts: starts, size: len(data)}
}

// Count returns the number of line starts recorded, including the start of
// the empty final line when the text ends with a newline.
func (ix *Index) Count() int {
	return len(ix.starts)
}

// Locate returns the position of the line containing offset. Offsets below
// zero resolve to the first line; offsets at or past the end of the text
// resolve to the last line.
func (ix *Index) Locate(offset int) Position {
	// Binary search for the greatest line start <= offset.
	l, r := 0, len(ix.starts)-1
	for l < r {
		m := (l + r + 1) / 2
		if ix.starts[m] <= offset {
			l = m
		} else {
			r = m - 1
		}
	}

	end := ix.size
	if l+1 < len(ix.starts) {
		// The byte before the next line start is the newline itself.
		end = ix.starts[l+1] - 1
	}

	return Position{
		Line:  l + 1,
		Start: ix.starts[l],
		End:   end,
	}
}
