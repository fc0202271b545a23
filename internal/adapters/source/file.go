// Package source loads, writes and generates input stream sets.
//
// Stream files are YAML:
//
//	streams:
//	  - index: 0
//	    events:
//	      - {ts: 1, payload: "Event1-1"}
//	      - {ts: 2, payload: "Event1-2"}
package source

import (
	"context"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/recency/internal/domain/model"
)

const filePermission = 0o600

type fileEvent struct {
	TS      int64  `koanf:"ts"`
	Payload string `koanf:"payload"`
}

type fileStream struct {
	Index  int         `koanf:"index"`
	Events []fileEvent `koanf:"events"`
}

type document struct {
	Streams []fileStream `koanf:"streams"`
}

// LoadFile reads a stream set from a YAML file.
func LoadFile(_ context.Context, path string) (model.Streams, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}
	if !k.Exists("streams") {
		return nil, fmt.Errorf("%w: %s: missing top-level streams key", ErrInvalidInput, path)
	}

	var doc document
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, path, err)
	}

	out := make(model.Streams, len(doc.Streams))
	for _, fs := range doc.Streams {
		if fs.Index < 0 {
			return nil, fmt.Errorf("%w: negative stream index %d", ErrInvalidInput, fs.Index)
		}
		if _, dup := out[fs.Index]; dup {
			return nil, fmt.Errorf("%w: duplicate stream index %d", ErrInvalidInput, fs.Index)
		}
		events := make([]model.Event, len(fs.Events))
		for i, fe := range fs.Events {
			events[i] = model.Event{Timestamp: fe.TS, Payload: fe.Payload}
		}
		out[fs.Index] = events
	}
	return out, nil
}

// WriteFile writes streams to path in the format LoadFile reads, ordered by
// stream index.
func WriteFile(_ context.Context, path string, streams model.Streams) error {
	list := make([]any, 0, len(streams))
	for _, idx := range streams.Indices() {
		events := make([]any, len(streams[idx]))
		for i, e := range streams[idx] {
			events[i] = map[string]any{"ts": e.Timestamp, "payload": e.Payload}
		}
		list = append(list, map[string]any{"index": idx, "events": events})
	}

	data, err := yaml.Parser().Marshal(map[string]any{"streams": list})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteInput, err)
	}
	if err := os.WriteFile(path, data, filePermission); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteInput, path, err)
	}
	return nil
}
