package source

import "errors"

// Sentinel kinds for source errors.
var (
	ErrInvalidInput = errors.New("invalid stream input")
	ErrReadInput    = errors.New("read stream input failed")
	ErrWriteInput   = errors.New("write stream input failed")
)
