package topk

import "errors"

// Sentinel kinds for tracker errors.
var (
	ErrInvalidCapacity = errors.New("top-k capacity must be at least 1")
)
