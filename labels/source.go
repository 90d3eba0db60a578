package labels

import (
	"strings"

	"go.uber.org/zap"

	"github.com/joshuapare/propkit/pkg/types"
)

// LegacyStrip is the prefix ignored by label lookups on releases that
// predate per-label regions.
const LegacyStrip = "ro."

// Source supplies the label of a name and the set of all labels.
type Source interface {
	// Label returns the label for name, or false when nothing matches.
	Label(name string) (string, bool)
	// Labels returns every distinct label.
	Labels() []string
}

// CatalogSource adapts a platform context catalog to Source.
type CatalogSource struct {
	C types.Catalog
}

// Label implements Source.
func (s CatalogSource) Label(name string) (string, bool) {
	l := s.C.ContextFor(name)
	return l, l != ""
}

// Labels implements Source.
func (s CatalogSource) Labels() []string {
	n := s.C.ContextSize()
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if l := s.C.ContextAt(i); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// legacy strips LegacyStrip before delegating.
type legacy struct{ Source }

func (l legacy) Label(name string) (string, bool) {
	return l.Source.Label(strings.TrimPrefix(name, LegacyStrip))
}

// Legacy wraps s so names starting with "ro." are looked up without it.
func Legacy(s Source) Source {
	if s == nil {
		return nil
	}
	return legacy{s}
}

// Select returns the catalog when it is usable and files were not
// requested, and otherwise a Resolver loaded from files.
func Select(cat types.Catalog, useFiles bool, files []string, log *zap.Logger) (Source, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if !useFiles && cat != nil && cat.IsValid() {
		return CatalogSource{C: cat}, nil
	}
	if !useFiles {
		log.Debug("context catalog unavailable, reading label files")
	}
	r := NewResolver(log)
	if n := r.LoadFiles(files...); n == 0 {
		log.Debug("no label definition files found", zap.Strings("tried", files))
	}
	return r, nil
}
