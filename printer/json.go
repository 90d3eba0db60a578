package printer

import (
	"encoding/json"
	"fmt"

	"github.com/joshuapare/propkit/pkg/types"
)

// jsonRecord represents a property record in JSON format.
type jsonRecord struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Count   uint32 `json:"count"`
	Serial  string `json:"serial,omitempty"`
	Label   string `json:"label,omitempty"`
	Changed bool   `json:"changed,omitempty"`
}

func (p *Printer) toJSON(r types.Record, changed bool) jsonRecord {
	out := jsonRecord{
		Name:    r.Name,
		Value:   r.Value,
		Count:   r.Count(),
		Label:   r.Label,
		Changed: changed,
	}
	if p.opts.Verbose {
		out.Serial = fmt.Sprintf("0x%08X", uint32(r.Serial))
	}
	return out
}

func (p *Printer) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}
