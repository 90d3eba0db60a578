package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBadSize indicates a region file whose size is not AreaSize.
	ErrBadSize = errors.New("format: region size mismatch")
	// ErrSegmentTooLong indicates a name segment longer than MaxSegmentLen.
	ErrSegmentTooLong = errors.New("format: segment too long")
)
