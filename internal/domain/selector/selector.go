// Package selector implements recency selection across input streams.
//
// Each round the selector peeks the head of every non-empty input, ranks the
// heads by timestamp (most recent first, ties broken by ascending stream
// index), rebuilds a bounded top-K window over them, and moves the single
// most recent head to the output. The window never gates the choice; it is
// exposed through Window and the metrics package.
package selector

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/okian/recency/internal/adapters/stream"
	"github.com/okian/recency/internal/domain/model"
	"github.com/okian/recency/internal/domain/topk"
	"github.com/okian/recency/pkg/logger"
	"github.com/okian/recency/pkg/metrics"
)

// head is a peeked candidate for the current round.
type head struct {
	event  model.Event
	handle model.Handle
}

// Selector owns N input streams and one output stream.
type Selector struct {
	inputs     []stream.Reader // ascending stream index
	byIndex    map[int]stream.Reader
	output     *stream.Output
	remaining  int
	rounds     int
	window     []topk.Candidate
	heads      []head // per-round scratch
	newTracker func(capacity int) (topk.Tracker, error)
	logger     logger.Logger
}

// New builds a selector over the given streams. Empty and nil sequences are
// accepted. The caller's slices are copied and never modified.
func New(streams map[int][]model.Event, opts ...Option) *Selector {
	set := model.Streams(streams)
	s := &Selector{
		inputs:    make([]stream.Reader, 0, len(set)),
		byIndex:   make(map[int]stream.Reader, len(set)),
		output:    stream.NewOutput(),
		remaining: set.Total(),
		newTracker: func(capacity int) (topk.Tracker, error) {
			return topk.NewHeap(capacity)
		},
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, idx := range set.Indices() {
		in := stream.NewInput(idx, set[idx])
		s.inputs = append(s.inputs, in)
		s.byIndex[idx] = in
	}
	s.heads = make([]head, 0, len(s.inputs))

	metrics.UpdateInputStreams(len(s.inputs))
	metrics.UpdateRemainingEvents(s.remaining)
	return s
}

// Run selects events until the output holds targetCount events or every input
// is empty. Running out of input is not an error. targetCount must be >= 0 and
// topK >= 1; otherwise a *ConfigError is returned and nothing is consumed.
func (s *Selector) Run(ctx context.Context, targetCount, topK int) error {
	if err := validate(targetCount, topK); err != nil {
		metrics.RecordConfigError(err.Field)
		s.logger.Warn(ctx, "selection run rejected", logger.Error(err))
		return err
	}

	tracker, err := s.newTracker(topK)
	if err != nil {
		return fmt.Errorf("build top-k tracker: %w", err)
	}

	start := time.Now()
	rounds := 0
	for s.output.Len() < targetCount {
		ok, err := s.round(ctx, tracker)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		rounds++
	}
	metrics.RecordRunDuration(float64(time.Since(start).Microseconds()) / 1000)

	exhausted := s.output.Len() < targetCount
	if exhausted {
		metrics.RecordExhaustedRun()
	}
	s.logger.Info(ctx, "selection run complete",
		logger.Int("target", targetCount),
		logger.Int("topK", topK),
		logger.Int("rounds", rounds),
		logger.Int("output", s.output.Len()),
		logger.Int("remaining", s.remaining),
		logger.Bool("exhausted", exhausted),
	)
	return nil
}

// round performs one selection. It returns false when every input is empty.
func (s *Selector) round(ctx context.Context, tracker topk.Tracker) (bool, error) {
	s.heads = s.heads[:0]
	for _, in := range s.inputs {
		if e, h, ok := in.Peek(); ok {
			s.heads = append(s.heads, head{event: e, handle: h})
		}
	}
	if len(s.heads) == 0 {
		return false, nil
	}

	// Heads were collected in ascending stream index, so a stable sort keeps
	// that order among equal timestamps.
	slices.SortStableFunc(s.heads, func(a, b head) int {
		return cmp.Compare(b.event.Timestamp, a.event.Timestamp)
	})

	tracker.Reset()
	for _, h := range s.heads {
		r := tracker.Offer(topk.Candidate{Timestamp: h.event.Timestamp, Handle: h.handle})
		if r.Admitted {
			metrics.RecordWindowAdmission()
		}
		if r.Evicted != nil {
			metrics.RecordWindowEviction()
		}
	}
	s.window = tracker.Items()

	chosen := s.heads[0]
	e, h, err := s.pop(chosen.handle)
	if err != nil {
		return false, err
	}
	s.output.Append(e, h)
	s.remaining--
	s.rounds++

	metrics.RecordRound()
	metrics.RecordEventSelected()
	metrics.UpdateWindowSize(len(s.window))
	metrics.UpdateOutputLength(s.output.Len())
	metrics.UpdateRemainingEvents(s.remaining)

	s.logger.Debug(ctx, "round selected",
		logger.Int("round", s.rounds),
		logger.Int("heads", len(s.heads)),
		logger.Int64("timestamp", e.Timestamp),
		logger.String("payload", e.Payload),
		logger.String("handle", h.String()),
		logger.Int("window", len(s.window)),
	)
	return true, nil
}

// pop removes the event identified by want from its stream, after checking it
// is still that stream's head.
func (s *Selector) pop(want model.Handle) (model.Event, model.Handle, error) {
	in, ok := s.byIndex[want.Stream]
	if !ok {
		return model.Event{}, model.Handle{}, fmt.Errorf("%w: unknown stream %d", ErrHeadMismatch, want.Stream)
	}
	if _, cur, ok := in.Peek(); !ok || cur != want {
		return model.Event{}, model.Handle{}, fmt.Errorf("%w: %s", ErrHeadMismatch, want)
	}
	return in.Pop()
}

func validate(targetCount, topK int) *ConfigError {
	if targetCount < 0 {
		return &ConfigError{Field: "targetCount", Value: targetCount, Rule: "must be >= 0"}
	}
	if topK < 1 {
		return &ConfigError{Field: "topK", Value: topK, Rule: "must be >= 1"}
	}
	return nil
}

// DrainOutput returns the output sequence and empties it. Drained events are
// not offered again.
func (s *Selector) DrainOutput() []model.Event {
	out := s.output.Drain()
	metrics.UpdateOutputLength(0)
	return out
}

// Output returns a copy of the current output without draining it.
func (s *Selector) Output() []model.Event { return s.output.Events() }

// OutputHandles returns the origin handle of every event in Output, in order.
func (s *Selector) OutputHandles() []model.Handle { return s.output.Handles() }

// Remaining returns the number of unconsumed events across all inputs.
func (s *Selector) Remaining() int { return s.remaining }

// Rounds returns the number of rounds executed over the selector's lifetime.
func (s *Selector) Rounds() int { return s.rounds }

// Window returns the top-K window built in the most recent round, most
// recent first.
func (s *Selector) Window() []topk.Candidate { return slices.Clone(s.window) }

// Streams returns the number of input streams.
func (s *Selector) Streams() int { return len(s.inputs) }
