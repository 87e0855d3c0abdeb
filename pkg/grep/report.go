package grep

// Match is one retained pattern occurrence, resolved to the line that
// contains its first byte.
type Match struct {
	// Offset is the byte offset of the occurrence in the haystack.
	Offset int
	// Line is the 1-based number of the line containing Offset.
	Line int
	// Text is that full line, trailing newline excluded.
	Text string
}

// Report is the outcome of one search.
type Report struct {
	// Total is the logical number of matches discovered, including any
	// whose offsets could not be retained.
	Total int
	// Matches holds the retained matches, at most the configured
	// capacity. Order follows slot grants unless the engine sorted them.
	Matches []Match
}

// Truncated returns how many discovered matches were dropped because every
// result slot was taken.
func (r *Report) Truncated() int {
	if n := r.Total - len(r.Matches); n > 0 {
		return n
	}
	return 0
}
