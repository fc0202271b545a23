// Package service wires configuration, stream sources, the selector and
// metrics export into a single run.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/recency/internal/adapters/source"
	"github.com/okian/recency/internal/domain/model"
	"github.com/okian/recency/internal/domain/selector"
	"github.com/okian/recency/internal/domain/topk"
	"github.com/okian/recency/pkg/logger"
	"github.com/okian/recency/pkg/metrics"
)

// Default run parameters.
const (
	defaultTargetCount = 3
	defaultTopK        = 3
)

// ErrNoInput is returned when neither streams nor an input path is set and
// the sample is disabled.
var ErrNoInput = errors.New("no input streams configured")

// RunStats summarizes the most recent run.
type RunStats struct {
	Streams   int
	Selected  int
	Remaining int
	Rounds    int
	Exhausted bool
	Window    []topk.Candidate
	Duration  time.Duration
}

// Service runs recency selections.
type Service struct {
	mu sync.RWMutex

	// Configuration
	targetCount     int
	topK            int
	streams         model.Streams
	inputPath       string
	useSample       bool
	metricsTextfile string

	// State
	runs    int
	lastRun *RunStats

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithTargetCount sets how many events a run selects. Invalid values are kept
// so that Run reports them.
func WithTargetCount(n int) Option {
	return func(s *Service) { s.targetCount = n }
}

// WithTopK sets the candidate window width. Invalid values are kept so that
// Run reports them.
func WithTopK(k int) Option {
	return func(s *Service) { s.topK = k }
}

// WithStreams supplies the input streams directly. Takes precedence over
// WithInputPath.
func WithStreams(streams model.Streams) Option {
	return func(s *Service) { s.streams = streams }
}

// WithInputPath reads streams from a YAML file on each run.
func WithInputPath(path string) Option {
	return func(s *Service) { s.inputPath = path }
}

// WithSample controls whether the built-in sample is used when no other
// input is configured. Enabled by default.
func WithSample(enabled bool) Option {
	return func(s *Service) { s.useSample = enabled }
}

// WithMetricsTextfile writes a Prometheus textfile after each run.
func WithMetricsTextfile(path string) Option {
	return func(s *Service) { s.metricsTextfile = path }
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		targetCount: defaultTargetCount,
		topK:        defaultTopK,
		useSample:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loads the input streams, selects events and returns them in selection
// order.
func (s *Service) Run(ctx context.Context) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.logger == nil {
		s.logger = logger.Get()
	}

	streams, origin, err := s.loadStreams(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to load input streams", logger.Error(err))
		return nil, err
	}
	s.logger.Info(ctx, "input streams loaded",
		logger.String("origin", origin),
		logger.Int("streams", len(streams)),
		logger.Int("events", streams.Total()),
	)

	start := time.Now()
	sel := selector.New(streams, selector.WithLogger(s.logger.Named("selector")))
	if err := sel.Run(ctx, s.targetCount, s.topK); err != nil {
		return nil, fmt.Errorf("selection: %w", err)
	}

	stats := &RunStats{
		Streams:   sel.Streams(),
		Rounds:    sel.Rounds(),
		Remaining: sel.Remaining(),
		Window:    sel.Window(),
	}
	events := sel.DrainOutput()
	stats.Selected = len(events)
	stats.Exhausted = stats.Selected < s.targetCount
	stats.Duration = time.Since(start)

	s.runs++
	s.lastRun = stats

	if s.metricsTextfile != "" {
		if err := metrics.WriteTextfile(s.metricsTextfile); err != nil {
			s.logger.Warn(ctx, "failed to write metrics textfile",
				logger.String("path", s.metricsTextfile),
				logger.Error(err),
			)
		}
	}
	return events, nil
}

func (s *Service) loadStreams(ctx context.Context) (model.Streams, string, error) {
	switch {
	case s.streams != nil:
		return s.streams, "options", nil
	case s.inputPath != "":
		streams, err := source.LoadFile(ctx, s.inputPath)
		return streams, s.inputPath, err
	case s.useSample:
		return source.Sample(), "sample", nil
	default:
		return nil, "", ErrNoInput
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"runs":        s.runs,
		"targetCount": s.targetCount,
		"topK":        s.topK,
	}
	if s.lastRun != nil {
		stats["streams"] = s.lastRun.Streams
		stats["selected"] = s.lastRun.Selected
		stats["remaining"] = s.lastRun.Remaining
		stats["rounds"] = s.lastRun.Rounds
		stats["exhausted"] = s.lastRun.Exhausted
		stats["windowSize"] = len(s.lastRun.Window)
		stats["durationMs"] = float64(s.lastRun.Duration.Microseconds()) / 1000
	}
	return stats
}

// LastRun returns a copy of the most recent run's statistics.
func (s *Service) LastRun() (RunStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastRun == nil {
		return RunStats{}, false
	}
	return *s.lastRun, true
}
