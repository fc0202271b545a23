package stream

import "errors"

// Sentinel kinds for stream errors.
var (
	ErrEmpty = errors.New("stream is empty")
)
