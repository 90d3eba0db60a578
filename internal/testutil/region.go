// Package testutil builds property area fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/propkit/internal/format"
)

// RootNodeSize is the space the implicit root node occupies in a freshly
// initialized region.
var RootNodeSize = format.NodeSize(0)

// BlankRegion returns the bytes of an initialized, empty property area: a
// header carrying the magic/version identifiers and a root node with no
// children. serial is stored as-is so round-trip tests can check it.
func BlankRegion(serial uint32) []byte {
	b := make([]byte, format.AreaSize)
	format.PutU32(b, format.AreaBytesUsedOffset, uint32(RootNodeSize))
	format.PutU32(b, format.AreaSerialOffset, serial)
	format.PutU32(b, format.AreaMagicOffset, format.AreaMagic)
	format.PutU32(b, format.AreaVersionOffset, format.AreaVersion)
	return b
}

// WriteBlankRegion writes a blank region named name into dir and returns its path.
func WriteBlankRegion(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, BlankRegion(0), 0o644); err != nil {
		t.Fatalf("write region %s: %v", path, err)
	}
	return path
}

// TempRegion writes a blank region into a fresh temp dir and returns its path.
func TempRegion(t *testing.T) string {
	t.Helper()
	return WriteBlankRegion(t, t.TempDir(), "u:object_r:default_prop:s0")
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
