package source

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/recency/internal/domain/model"
)

// Default generator settings.
const (
	defaultMaxGap = 5
)

// GenerateConfig controls synthetic stream generation.
type GenerateConfig struct {
	Streams         int    // number of streams, indexed 0..Streams-1
	EventsPerStream int    // events in each stream
	MaxGap          int64  // largest timestamp step between consecutive events
	Seed            uint64 // same seed, same output
	PayloadPrefix   string // "" means uuid payloads
}

// Generate builds streams whose timestamps strictly increase in arrival order
// with random gaps in [1, MaxGap]. Output is deterministic for a given config.
func Generate(cfg GenerateConfig) (model.Streams, error) {
	if cfg.Streams < 0 || cfg.EventsPerStream < 0 {
		return nil, fmt.Errorf("%w: streams=%d events=%d", ErrInvalidInput, cfg.Streams, cfg.EventsPerStream)
	}
	if cfg.MaxGap <= 0 {
		cfg.MaxGap = defaultMaxGap
	}

	var seed [32]byte
	for i := 0; i < 8; i++ {
		seed[i] = byte(cfg.Seed >> (8 * i))
	}
	src := rand.NewChaCha8(seed)
	rng := rand.New(src)

	out := make(model.Streams, cfg.Streams)
	for s := 0; s < cfg.Streams; s++ {
		events := make([]model.Event, cfg.EventsPerStream)
		ts := rng.Int64N(cfg.MaxGap + 1)
		for i := range events {
			payload, err := payloadFor(cfg.PayloadPrefix, s, i, src)
			if err != nil {
				return nil, err
			}
			events[i] = model.Event{Timestamp: ts, Payload: payload}
			ts += 1 + rng.Int64N(cfg.MaxGap)
		}
		out[s] = events
	}
	return out, nil
}

func payloadFor(prefix string, stream, slot int, src *rand.ChaCha8) (string, error) {
	if prefix != "" {
		return fmt.Sprintf("%s%d-%d", prefix, stream+1, slot+1), nil
	}
	id, err := uuid.NewRandomFromReader(src)
	if err != nil {
		return "", fmt.Errorf("generate payload: %w", err)
	}
	return id.String(), nil
}
