// Package output renders search reports in classic grep shape and knows how
// to push them through vectored writes when the destination supports it.
package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/orneryd/gridgrep/pkg/grep"
	"github.com/orneryd/gridgrep/pkg/pool"
)

// recordOverhead covers the separators and the widest line number a record
// can carry: ":<line>:\t...\n".
const recordOverhead = 1 + 20 + 2 + 1

// vecWriter is satisfied by writers that accept a whole batch of buffers in
// one call.
type vecWriter interface {
	WriteVec(vec [][]byte) error
}

// Reporter writes one search outcome: an optional truncation warning on the
// error stream, a summary header, then one record per retained match.
type Reporter struct {
	out    io.Writer
	errOut io.Writer
}

// NewReporter builds a reporter over the two output streams.
func NewReporter(out, errOut io.Writer) *Reporter {
	return &Reporter{out: out, errOut: errOut}
}

// Report renders rep for one search of pattern in source.
//
// The header always states the true logical match count. When the count
// exceeded capacity, a warning goes to the error stream before any record so
// interleaved terminals show it first. Records are formatted as
// `source:lineNumber:<tab>lineText`.
func (r *Reporter) Report(rep *grep.Report, pattern, source string) error {
	if rep.Truncated() > 0 {
		fmt.Fprintf(r.errOut, "Warning: Found %d matches but only %d can be stored\n",
			rep.Total, len(rep.Matches))
	}

	if _, err := fmt.Fprintf(r.out, "Found %d matches for '%s' in '%s'\n",
		rep.Total, pattern, source); err != nil {
		return err
	}

	if len(rep.Matches) == 0 {
		return nil
	}
	return r.writeRecords(rep.Matches, source)
}

func (r *Reporter) writeRecords(matches []grep.Match, source string) error {
	arena := pool.GetByteBuffer()
	defer func() { pool.PutByteBuffer(arena) }()
	vec := pool.GetVecSlice()
	defer func() { pool.PutVecSlice(vec) }()

	// Size the arena up front: appends must never reallocate, or the record
	// slices already in vec would go stale.
	need := 0
	for _, m := range matches {
		need += len(source) + len(m.Text) + recordOverhead
	}
	if cap(arena) < need {
		arena = make([]byte, 0, need)
	}

	for _, m := range matches {
		start := len(arena)
		arena = append(arena, source...)
		arena = append(arena, ':')
		arena = strconv.AppendInt(arena, int64(m.Line), 10)
		arena = append(arena, ':', '\t')
		arena = append(arena, m.Text...)
		arena = append(arena, '\n')
		vec = append(vec, arena[start:len(arena):len(arena)])
	}

	if vw, ok := r.out.(vecWriter); ok {
		return vw.WriteVec(vec)
	}
	for _, rec := range vec {
		if _, err := r.out.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
