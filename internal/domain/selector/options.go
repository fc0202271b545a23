// Package selector implements recency selection across input streams.
package selector

import (
	"github.com/okian/recency/internal/domain/topk"
	"github.com/okian/recency/pkg/logger"
)

// Option applies a configuration option to the Selector.
type Option func(*Selector)

// WithLogger sets the logger used for round and run diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(s *Selector) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTracker replaces the top-K tracker constructor. The function is called
// once per Run with the requested width.
func WithTracker(newTracker func(capacity int) (topk.Tracker, error)) Option {
	return func(s *Selector) {
		if newTracker != nil {
			s.newTracker = newTracker
		}
	}
}
