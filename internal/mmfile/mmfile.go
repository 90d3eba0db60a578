// Package mmfile provides platform-specific helpers for memory-mapping region files.
package mmfile

import (
	"errors"
	"fmt"
)

// ErrSize is returned when a file's size differs from the size the caller
// requires. Nothing is mapped in that case.
var ErrSize = errors.New("mmfile: unexpected file size")

func sizeError(path string, got, want int64) error {
	return fmt.Errorf("%w: %s is %d bytes, want %d", ErrSize, path, got, want)
}
