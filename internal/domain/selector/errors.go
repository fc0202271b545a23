package selector

import (
	"errors"
	"fmt"
)

// Sentinel kinds for selector errors.
var (
	// ErrInvalidConfig is wrapped by every *ConfigError.
	ErrInvalidConfig = errors.New("invalid selector configuration")
	// ErrHeadMismatch means the chosen candidate was no longer the head of its
	// stream. Streams are owned exclusively by the selector, so this indicates
	// outside mutation.
	ErrHeadMismatch = errors.New("selected candidate is not the head of its stream")
)

// ConfigError reports a run parameter that was rejected before processing.
type ConfigError struct {
	Field string
	Value int
	Rule  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%d, %s", ErrInvalidConfig, e.Field, e.Value, e.Rule)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }
