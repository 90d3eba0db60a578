//go:build !unix

package dirty

// msync is a no-op where regions are plain in-memory copies; the mmfile
// fallback writes them back on close.
func msync([]byte) error { return nil }
