package trie

import (
	"bytes"
	"strings"

	"github.com/joshuapare/propkit/internal/format"
	"github.com/joshuapare/propkit/pkg/types"
)

// Compare orders two segments by length, then bytewise. It returns -1, 0 or 1.
func Compare(a, b []byte) int {
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return bytes.Compare(a, b)
	}
}

// Split breaks a dotted name into its segments. Empty names, empty segments
// and segments longer than a node can hold are rejected.
func Split(name string) ([][]byte, error) {
	if name == "" {
		return nil, types.Errorf(types.ErrKindValidation, nil, "empty name")
	}
	parts := strings.Split(name, string(format.SegmentSeparator))
	segs := make([][]byte, len(parts))
	for i, p := range parts {
		switch {
		case p == "":
			return nil, types.Errorf(types.ErrKindValidation, nil, "name %q has an empty segment", name)
		case len(p) > format.MaxSegmentLen:
			return nil, types.Errorf(types.ErrKindValidation, format.ErrSegmentTooLong,
				"name %q segment %d is %d bytes", name, i, len(p))
		}
		segs[i] = []byte(p)
	}
	return segs, nil
}
