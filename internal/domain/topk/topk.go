// Package topk provides a bounded container that retains the K most recent
// candidates offered to it.
//
// Ordering: timestamp DESC, then stream index ASC, then slot ASC. The
// container is a min-heap under that ordering, so the root is always the
// candidate that would be evicted next.
package topk

import (
	"container/heap"
	"fmt"
	"slices"

	"github.com/okian/recency/internal/domain/model"
)

// Candidate is a head event reference held by a Tracker.
type Candidate struct {
	Timestamp int64
	Handle    model.Handle
}

// Result describes what Offer did with a candidate.
type Result struct {
	Admitted bool
	Evicted  *Candidate // non-nil when admitting pushed out the previous minimum
}

// Tracker is a bounded min-priority container over candidates.
type Tracker interface {
	// Offer admits c while the tracker has room. When full, c is admitted only
	// if its timestamp is strictly greater than the held minimum, which is
	// evicted.
	Offer(c Candidate) Result
	// Min returns the least recent held candidate.
	Min() (Candidate, bool)
	// Items returns the held candidates, most recent first.
	Items() []Candidate
	Len() int
	Cap() int
	Reset()
}

// outranks reports whether a is more recent than b. Equal timestamps fall
// back to the lower stream index, then the lower slot.
func outranks(a, b Candidate) bool {
	if a.Timestamp != b.Timestamp {
		return a.Timestamp > b.Timestamp
	}
	if a.Handle.Stream != b.Handle.Stream {
		return a.Handle.Stream < b.Handle.Stream
	}
	return a.Handle.Slot < b.Handle.Slot
}

// minHeap implements heap.Interface with the least recent candidate at the root.
type minHeap []Candidate

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return outranks(h[j], h[i]) }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *minHeap) Push(x any) { *h = append(*h, x.(Candidate)) }

func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// Heap is the heap-backed Tracker.
type Heap struct {
	capacity int
	items    minHeap
}

var _ Tracker = (*Heap)(nil)

// NewHeap returns an empty tracker holding at most capacity candidates.
func NewHeap(capacity int) (*Heap, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &Heap{capacity: capacity, items: make(minHeap, 0, min(capacity, 64))}, nil
}

// Offer implements Tracker.Offer in O(log K).
func (h *Heap) Offer(c Candidate) Result {
	if len(h.items) < h.capacity {
		heap.Push(&h.items, c)
		return Result{Admitted: true}
	}
	if c.Timestamp <= h.items[0].Timestamp {
		return Result{}
	}
	evicted := h.items[0]
	h.items[0] = c
	heap.Fix(&h.items, 0)
	return Result{Admitted: true, Evicted: &evicted}
}

// Min implements Tracker.Min in O(1).
func (h *Heap) Min() (Candidate, bool) {
	if len(h.items) == 0 {
		return Candidate{}, false
	}
	return h.items[0], true
}

// Items implements Tracker.Items.
func (h *Heap) Items() []Candidate {
	out := slices.Clone([]Candidate(h.items))
	slices.SortFunc(out, func(a, b Candidate) int {
		switch {
		case outranks(a, b):
			return -1
		case outranks(b, a):
			return 1
		default:
			return 0
		}
	})
	return out
}

func (h *Heap) Len() int { return len(h.items) }
func (h *Heap) Cap() int { return h.capacity }

// Reset empties the tracker, keeping its storage.
func (h *Heap) Reset() { h.items = h.items[:0] }
