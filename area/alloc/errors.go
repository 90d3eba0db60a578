package alloc

import "errors"

var (
	// ErrNoSpace indicates that the data buffer cannot hold the requested record.
	ErrNoSpace = errors.New("alloc: no space left in property area")

	// ErrCorruptHeader indicates a bytes_used that overlaps the root node or
	// points past the data buffer.
	ErrCorruptHeader = errors.New("alloc: bytes_used beyond data buffer")
)
