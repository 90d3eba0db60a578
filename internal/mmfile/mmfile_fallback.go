//go:build !unix

package mmfile

import "os"

// Map reads the entire file when mmap is not available. Writable mappings are
// written back to the file by the cleanup function.
func Map(path string, writable bool, want int64) ([]byte, func() error, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if want > 0 && info.Size() != want {
		return nil, nil, sizeError(path, info.Size(), want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	if !writable {
		return data, func() error { return nil }, nil
	}
	return data, func() error { return os.WriteFile(path, data, info.Mode().Perm()) }, nil
}
