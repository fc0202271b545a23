// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"slices"
)

// Event is a timestamped payload read from an input stream.
// Two events may carry identical fields; use Handle to tell them apart.
type Event struct {
	Timestamp int64  // recency key, larger is more recent
	Payload   string // opaque
}

// Handle identifies one event by its origin: the stream index and the
// zero-based slot within that stream's original sequence.
type Handle struct {
	Stream int
	Slot   int
}

func (h Handle) String() string {
	return fmt.Sprintf("%d/%d", h.Stream, h.Slot)
}

// Streams maps a stream index to its ordered events (earliest first).
type Streams map[int][]Event

// Indices returns the stream indices in ascending order.
func (s Streams) Indices() []int {
	idx := make([]int, 0, len(s))
	for i := range s {
		idx = append(idx, i)
	}
	slices.Sort(idx)
	return idx
}

// Total returns the number of events across all streams.
func (s Streams) Total() int {
	n := 0
	for _, events := range s {
		n += len(events)
	}
	return n
}

// Clone returns a deep copy so callers can keep their slices untouched.
func (s Streams) Clone() Streams {
	out := make(Streams, len(s))
	for i, events := range s {
		out[i] = slices.Clone(events)
	}
	return out
}
