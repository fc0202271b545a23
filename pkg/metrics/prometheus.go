// Package metrics provides Prometheus metrics for recency selection runs.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the selection metrics and the registry they live on.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         *prometheus.Registry

	// Selection
	rounds         prometheus.Counter
	eventsSelected prometheus.Counter
	exhaustedRuns  prometheus.Counter
	configErrors   *prometheus.CounterVec
	runDuration    prometheus.Histogram

	// Top-K tracker
	windowAdmissions prometheus.Counter
	windowEvictions  prometheus.Counter
	windowSize       prometheus.Gauge

	// Streams
	inputStreams    prometheus.Gauge
	remainingEvents prometheus.Gauge
	outputLength    prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton used by the package-level helpers

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager()
}

// NewManager creates a Manager on its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "recency",
		subsystem:        "selector",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500},
		constLabels:      prometheus.Labels{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) initializeMetrics() {
	m.rounds = m.counter("rounds_total", "Total number of selection rounds executed")
	m.eventsSelected = m.counter("events_selected_total", "Total number of events moved to an output stream")
	m.exhaustedRuns = m.counter("exhausted_runs_total", "Runs that stopped because every input was empty before the target count")
	m.configErrors = promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "config_errors_total",
		Help:        "Runs rejected because of invalid configuration",
		ConstLabels: m.constLabels,
	}, []string{"field"})
	m.runDuration = promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_milliseconds",
		Help:        "Duration of a full selection run in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.windowAdmissions = m.counter("window_admissions_total", "Candidates admitted into the bounded top-K window")
	m.windowEvictions = m.counter("window_evictions_total", "Candidates evicted from the bounded top-K window")
	m.windowSize = m.gauge("window_size", "Number of candidates held in the top-K window after the last round")

	m.inputStreams = m.gauge("input_streams", "Number of input streams owned by the selector")
	m.remainingEvents = m.gauge("remaining_events", "Events still unconsumed across all input streams")
	m.outputLength = m.gauge("output_length", "Current length of the output stream")
}

// Registry returns the registry the manager's metrics are registered on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes every metric in the text exposition format to path.
func (m *Manager) WriteTextfile(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty textfile path", ErrExport)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Join(ErrExport, err)
	}
	return nil
}

// Default returns the global manager.
func Default() *Manager { return globalManager }

// GetRegistry returns the global registry.
func GetRegistry() *prometheus.Registry { return globalManager.registry }

// WriteTextfile writes the global metrics to path.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }

// RecordRound increments the round counter.
func RecordRound() { globalManager.rounds.Inc() }

// RecordEventSelected increments the selected events counter.
func RecordEventSelected() { globalManager.eventsSelected.Inc() }

// RecordExhaustedRun counts a run that ended with a short output.
func RecordExhaustedRun() { globalManager.exhaustedRuns.Inc() }

// RecordConfigError counts a rejected run, labelled by the offending field.
func RecordConfigError(field string) { globalManager.configErrors.WithLabelValues(field).Inc() }

// RecordRunDuration observes a run duration in milliseconds.
func RecordRunDuration(ms float64) { globalManager.runDuration.Observe(ms) }

// RecordWindowAdmission counts a candidate admitted into the top-K window.
func RecordWindowAdmission() { globalManager.windowAdmissions.Inc() }

// RecordWindowEviction counts a candidate evicted from the top-K window.
func RecordWindowEviction() { globalManager.windowEvictions.Inc() }

// UpdateWindowSize sets the window size gauge.
func UpdateWindowSize(n int) { globalManager.windowSize.Set(float64(n)) }

// UpdateInputStreams sets the input stream gauge.
func UpdateInputStreams(n int) { globalManager.inputStreams.Set(float64(n)) }

// UpdateRemainingEvents sets the remaining events gauge.
func UpdateRemainingEvents(n int) { globalManager.remainingEvents.Set(float64(n)) }

// UpdateOutputLength sets the output length gauge.
func UpdateOutputLength(n int) { globalManager.outputLength.Set(float64(n)) }
