package battle

import (
	"sort"
	"strings"
	"sync"
)

// Narrative_t is an append-only buffer of narrative lines guarded by a
// mutex, drained and sorted at round boundaries. The same shape backs both
// a single battle's running narrative and a team runtime's per-round
// accumulator.
type Narrative_t struct {
	mu    sync.Mutex
	lines []string
}

// Append adds a line to the buffer. Safe for concurrent use.
func (n *Narrative_t) Append(line string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.lines = append(n.lines, line)
}

// String joins the buffered lines in insertion order without sorting or
// clearing, used to capture a single battle's finished narrative.
func (n *Narrative_t) String() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return strings.Join(n.lines, "")
}

// Drain returns a sorted copy of the buffered lines and clears the buffer,
// the operation a team runtime performs at every round boundary.
func (n *Narrative_t) Drain() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.lines))
	copy(out, n.lines)
	sort.Strings(out)
	n.lines = n.lines[:0]
	return out
}
