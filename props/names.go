package props

import (
	"sort"
	"strings"

	"github.com/joshuapare/propkit/internal/format"
	"github.com/joshuapare/propkit/pkg/types"
	"github.com/joshuapare/propkit/trie"
)

const (
	// AllAlias is accepted in place of MatchAll.
	AllAlias = "all"
	// MatchAll selects every record.
	MatchAll = "**"
)

// ValidateName checks a query name and returns it normalized: "all" becomes
// "**". Names may not start or end with '.', and must contain '.' or '*'.
func ValidateName(name string) (string, error) {
	if name == AllAlias {
		return MatchAll, nil
	}
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") || !strings.ContainsAny(name, "*.") {
		return "", types.Errorf(types.ErrKindValidation, nil, "invalid property name %q", name)
	}
	return name, nil
}

// IsGlob reports whether name selects several records.
func IsGlob(name string) bool {
	return strings.HasPrefix(name, "*") || strings.HasSuffix(name, "*")
}

// ValidateValue rejects values that do not fit a value record: values of
// format.ValueMax bytes or more and values holding a NUL byte.
func ValidateValue(v string) error {
	if len(v) >= format.ValueMax {
		return types.Errorf(types.ErrKindValidation, nil,
			"value is %d bytes, need less than %d", len(v), format.ValueMax)
	}
	if strings.IndexByte(v, 0) >= 0 {
		return types.Errorf(types.ErrKindValidation, nil, "value contains a NUL byte")
	}
	return nil
}

// validateSingle checks that name is one well-formed property name.
func validateSingle(name string) error {
	n, err := ValidateName(name)
	if err != nil {
		return err
	}
	if IsGlob(n) {
		return types.Errorf(types.ErrKindValidation, nil, "%q is a pattern, not a property name", name)
	}
	_, err = trie.Split(n)
	return err
}

// Match reports whether name is selected by pattern. Patterns shorter than
// two bytes and "**" select everything; "*x" matches a suffix, "x*" a prefix
// and "*x*" a substring. Anything else must equal name.
func Match(pattern, name string) bool {
	if len(pattern) < 2 || pattern == MatchAll {
		return true
	}
	lead := strings.HasPrefix(pattern, "*")
	trail := strings.HasSuffix(pattern, "*")
	switch {
	case lead && strings.HasSuffix(name, pattern[1:]):
		return true
	case trail && strings.HasPrefix(name, pattern[:len(pattern)-1]):
		return true
	case lead && trail && strings.Contains(name, pattern[1:len(pattern)-1]):
		return true
	case !lead && !trail:
		return name == pattern
	}
	return false
}

// Filter returns the records selected by pattern, sorted by name.
func Filter(recs []types.Record, pattern string) []types.Record {
	out := make([]types.Record, 0, len(recs))
	for _, r := range recs {
		if Match(pattern, r.Name) {
			out = append(out, r)
		}
	}
	SortByName(out)
	return out
}

// SortByName sorts recs by name, keeping the order of equal names.
func SortByName(recs []types.Record) {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Name < recs[j].Name })
}
