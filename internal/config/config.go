// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - New(ctx) returns a Config filled with defaults.
// - Load layers defaults, an optional YAML file and RECENCY_* env vars.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// TargetCount is the number of events to move to the output.
	TargetCount int `koanf:"target_count"`

	// TopK is the width of the per-round candidate window.
	TopK int `koanf:"top_k"`

	// InputPath names a YAML stream file. Empty selects the built-in sample.
	InputPath string `koanf:"input_path"`

	// MetricsTextfile, when set, receives a Prometheus textfile after the run.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// RenderFormat selects the output renderer: text or tsv.
	RenderFormat string `koanf:"render_format"`
}

// New creates a Config with defaults. The context is reserved for future
// loaders and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:     "info",
		TargetCount:  3,
		TopK:         3,
		RenderFormat: "text",
	}
}
