// Package stream provides the FIFO input streams and the append-only output
// stream that events move between.
package stream

import "github.com/okian/recency/internal/domain/model"

// Option applies a configuration option to an Output.
type Option func(*Output)

// WithCapacity preallocates room for n events.
func WithCapacity(n int) Option {
	return func(o *Output) {
		if n > 0 {
			o.events = make([]model.Event, 0, n)
			o.handles = make([]model.Handle, 0, n)
		}
	}
}
