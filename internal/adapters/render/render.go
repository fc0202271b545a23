// Package render formats an output stream for consumers.
package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/okian/recency/internal/domain/model"
)

// ErrUnknownFormat is returned by Format for unsupported names.
var ErrUnknownFormat = errors.New("unknown render format")

// Renderer writes events to w in order.
type Renderer func(w io.Writer, events []model.Event) error

// Format resolves a renderer by name: "text" or "tsv".
func Format(name string) (Renderer, error) {
	switch name {
	case "", "text":
		return Text, nil
	case "tsv":
		return TSV, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Text writes one line per event: "Event Timestamp: <ts>, Data: <payload>".
func Text(w io.Writer, events []model.Event) error {
	return lines(w, events, "Event Timestamp: %d, Data: %s\n")
}

// TSV writes one "<ts>\t<payload>" line per event.
func TSV(w io.Writer, events []model.Event) error {
	return lines(w, events, "%d\t%s\n")
}

func lines(w io.Writer, events []model.Event, format string) error {
	bw := bufio.NewWriter(w)
	for _, e := range events {
		if _, err := fmt.Fprintf(bw, format, e.Timestamp, e.Payload); err != nil {
			return err
		}
	}
	return bw.Flush()
}
