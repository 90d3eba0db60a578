package props

import (
	"strings"

	"github.com/joshuapare/propkit/area"
	"github.com/joshuapare/propkit/trie"
)

// RegionStats summarizes one region file.
type RegionStats struct {
	Path    string      `json:"path"`
	Label   string      `json:"label,omitempty"`
	Header  area.Header `json:"header"`
	Free    uint32      `json:"free"`
	Records int         `json:"records"`
}

// Inspect reports the header and record count of a region. region may be a
// label or, when it contains a '/', a file path. Below SDK 24 an empty
// region names the single region file.
func (s *Store) Inspect(region string) (RegionStats, error) {
	path, label := region, ""
	if !strings.ContainsRune(region, '/') {
		p, err := s.RegionPath(region)
		if err != nil {
			return RegionStats{}, err
		}
		path, label = p, region
	}

	a, err := area.Open(path, false)
	if err != nil {
		return RegionStats{}, err
	}
	defer a.Close()

	st := RegionStats{Path: path, Label: label, Header: a.Header()}
	if used := st.Header.BytesUsed; used < st.Header.Capacity {
		st.Free = st.Header.Capacity - used
	}
	err = trie.New(a, s.log).Walk(func(area.Info) error {
		st.Records++
		return nil
	})
	return st, err
}
