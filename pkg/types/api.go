package types

import "github.com/joshuapare/propkit/internal/format"

// Record is one populated value record pulled out of a region. Records are
// query-time copies; nothing in them aliases the mapped file.
type Record struct {
	Name   string        `json:"name"`
	Value  string        `json:"value"`
	Label  string        `json:"label,omitempty"`
	Serial format.Serial `json:"serial"`
}

// Count returns the record's 16-bit counter.
func (r Record) Count() uint32 { return r.Serial.Count() }

// Catalog is the property context catalog collaborator: a service that maps
// names to their owning region label without reading label-definition files.
type Catalog interface {
	// IsValid reports whether the catalog loaded successfully.
	IsValid() bool
	// ContextFor returns the label owning name, or "" when none matches.
	ContextFor(name string) string
	// ContextAt returns the i-th known label.
	ContextAt(i int) string
	// ContextSize returns how many labels the catalog knows.
	ContextSize() int
}
