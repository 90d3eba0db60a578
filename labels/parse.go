package labels

import (
	"bufio"
	"io"
	"strings"
)

// maxLineSize bounds a single definition line.
const maxLineSize = 1 << 20

// Entry is one prefix to label mapping.
type Entry struct {
	Prefix string
	Label  string
}

// isSpace matches the C locale whitespace set used by the definition files.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// ParseLine parses one definition line. ok is false for comments, blank
// lines and lines without a label.
func ParseLine(line string) (e Entry, ok bool) {
	fields := strings.FieldsFunc(line, isSpace)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return Entry{}, false
	}
	if len(fields) < 2 {
		return Entry{}, false
	}
	return Entry{Prefix: fields[0], Label: fields[1]}, true
}

// Parse reads every well-formed entry from r in file order.
func Parse(r io.Reader) ([]Entry, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)

	var out []Entry
	for sc.Scan() {
		if e, ok := ParseLine(sc.Text()); ok {
			out = append(out, e)
		}
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	return out, nil
}
