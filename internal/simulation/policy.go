package simulation

import "fmt"

// ClosurePolicy determines which age buckets lose population first when
// complaints are closed in a given week.
type ClosurePolicy string

const (
	// OldestFirst drains the oldest bucket before younger ones. This is the
	// policy that improves the aging percentages fastest.
	OldestFirst ClosurePolicy = "oldest_first"
	// NewestFirst drains the youngest bucket before older ones (throughput-first,
	// FIFO-style). It can worsen aging percentages even while shrinking the backlog.
	NewestFirst ClosurePolicy = "newest_first"
	// Mixed closes proportionally to each bucket's share of the backlog.
	Mixed ClosurePolicy = "mixed"
)

// ParseClosurePolicy maps user-facing policy names onto a ClosurePolicy.
// Accepts a few common aliases so MCP clients don't have to guess the exact token.
func ParseClosurePolicy(s string) (ClosurePolicy, error) {
	switch s {
	case "", "oldest_first", "oldest":
		return OldestFirst, nil
	case "newest_first", "newest", "fifo":
		return NewestFirst, nil
	case "mixed", "proportional":
		return Mixed, nil
	default:
		return "", fmt.Errorf("unknown closure policy %q (expected oldest_first, newest_first or mixed)", s)
	}
}

// Valid reports whether p is one of the three known policies.
func (p ClosurePolicy) Valid() bool {
	return p == OldestFirst || p == NewestFirst || p == Mixed
}
