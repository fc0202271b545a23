// Package stream provides the FIFO input streams and the append-only output
// stream that events move between.
//
// Streams are not safe for concurrent use. A selector owns its streams
// exclusively for the duration of a run.
package stream

import (
	"fmt"
	"slices"

	"github.com/okian/recency/internal/domain/model"
)

// Reader is the read side of an input stream.
type Reader interface {
	// Index returns the stream index the reader was built with.
	Index() int
	// Peek returns the head without removing it.
	Peek() (model.Event, model.Handle, bool)
	// Pop removes and returns the head. Returns ErrEmpty when exhausted.
	Pop() (model.Event, model.Handle, error)
	// Len returns the number of unconsumed events.
	Len() int
}

// Input is a FIFO over a materialized slice of events.
type Input struct {
	index  int
	events []model.Event
	head   int // slot of the current head
}

var _ Reader = (*Input)(nil)

// NewInput builds an input stream for the given index. The events are copied.
func NewInput(index int, events []model.Event) *Input {
	return &Input{index: index, events: slices.Clone(events)}
}

// Index implements Reader.
func (in *Input) Index() int { return in.index }

// Peek implements Reader.
func (in *Input) Peek() (model.Event, model.Handle, bool) {
	if in.head >= len(in.events) {
		return model.Event{}, model.Handle{}, false
	}
	return in.events[in.head], model.Handle{Stream: in.index, Slot: in.head}, true
}

// Pop implements Reader.
func (in *Input) Pop() (model.Event, model.Handle, error) {
	e, h, ok := in.Peek()
	if !ok {
		return model.Event{}, model.Handle{}, fmt.Errorf("%w: stream %d", ErrEmpty, in.index)
	}
	in.head++
	return e, h, nil
}

// Len implements Reader.
func (in *Input) Len() int { return len(in.events) - in.head }

// Output is an append-only sequence of selected events together with the
// handles they were taken from.
type Output struct {
	events  []model.Event
	handles []model.Handle
}

// NewOutput creates an empty output stream.
func NewOutput(opts ...Option) *Output {
	o := &Output{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Append adds e, taken from h, to the end of the stream.
func (o *Output) Append(e model.Event, h model.Handle) {
	o.events = append(o.events, e)
	o.handles = append(o.handles, h)
}

// Len returns the number of events appended since the last Drain.
func (o *Output) Len() int { return len(o.events) }

// Events returns a copy of the events in append order.
func (o *Output) Events() []model.Event { return slices.Clone(o.events) }

// Handles returns a copy of the origin handles in append order.
func (o *Output) Handles() []model.Handle { return slices.Clone(o.handles) }

// Drain returns every event and empties the stream. Drained events are
// never returned again.
func (o *Output) Drain() []model.Event {
	out := o.events
	o.events = nil
	o.handles = nil
	return out
}
