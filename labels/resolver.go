package labels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Wildcard is the catch-all prefix. It matches every name and always sorts
// after the real prefixes.
const Wildcard = "*"

type prefix struct {
	name  string
	label int // index into Resolver.labels
}

// Resolver is a file-backed label source.
type Resolver struct {
	prefixes []prefix
	labels   []string
	index    map[string]int
	log      *zap.Logger
}

// NewResolver returns an empty Resolver. A nil logger discards output.
func NewResolver(log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{index: make(map[string]int), log: log}
}

// Add inserts one mapping. Longer prefixes go first; among equal lengths the
// earlier one stays in front, and Wildcard entries always go last.
func (r *Resolver) Add(e Entry) {
	li, ok := r.index[e.Label]
	if !ok {
		li = len(r.labels)
		r.labels = append(r.labels, e.Label)
		r.index[e.Label] = li
	}

	p := prefix{name: e.Prefix, label: li}
	at := len(r.prefixes)
	if e.Prefix != Wildcard {
		for i, cur := range r.prefixes {
			if len(cur.name) < len(e.Prefix) || cur.name == Wildcard {
				at = i
				break
			}
		}
	}
	r.prefixes = append(r.prefixes, prefix{})
	copy(r.prefixes[at+1:], r.prefixes[at:])
	r.prefixes[at] = p
}

// LoadFile adds every entry in path. A missing file is reported with an
// error wrapping fs.ErrNotExist.
func (r *Resolver) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	for _, e := range entries {
		r.Add(e)
	}
	r.log.Debug("loaded label definitions",
		zap.String("path", path),
		zap.Int("entries", len(entries)))
	return nil
}

// LoadFiles loads each path in order, logging and skipping the ones that
// cannot be opened or read. It returns how many files were loaded.
func (r *Resolver) LoadFiles(paths ...string) int {
	n := 0
	for _, p := range paths {
		err := r.LoadFile(p)
		switch {
		case err == nil:
			n++
		case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
			r.log.Debug("skipping label definitions", zap.String("path", p), zap.Error(err))
		default:
			r.log.Warn("unreadable label definitions", zap.String("path", p), zap.Error(err))
		}
	}
	return n
}

// Label returns the label of the first prefix matching name.
func (r *Resolver) Label(name string) (string, bool) {
	for _, p := range r.prefixes {
		if p.name == Wildcard || strings.HasPrefix(name, p.name) {
			return r.labels[p.label], true
		}
	}
	return "", false
}

// Labels returns the distinct labels in the order they were first seen.
func (r *Resolver) Labels() []string {
	return append([]string(nil), r.labels...)
}

// Entries returns the prefix list in match order.
func (r *Resolver) Entries() []Entry {
	out := make([]Entry, len(r.prefixes))
	for i, p := range r.prefixes {
		out[i] = Entry{Prefix: p.name, Label: r.labels[p.label]}
	}
	return out
}

// Len returns the number of prefixes.
func (r *Resolver) Len() int { return len(r.prefixes) }
