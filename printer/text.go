package printer

import (
	"fmt"

	"github.com/joshuapare/propkit/pkg/types"
)

// printLine prints "[name]: [value]" followed by the optional count, serial
// and label fields.
func (p *Printer) printLine(r types.Record) error {
	if _, err := fmt.Fprintf(p.writer, "[%s]: [%s]", p.name.Sprint(r.Name), r.Value); err != nil {
		return err
	}
	if c := r.Count(); c != 0 {
		fmt.Fprintf(p.writer, " count: %d", c)
	}
	if p.opts.Verbose {
		fmt.Fprintf(p.writer, " serial: 0x%08X", uint32(r.Serial))
	}
	if r.Label != "" {
		fmt.Fprintf(p.writer, " s_context: %s", p.label.Sprint(r.Label))
	}
	_, err := fmt.Fprintln(p.writer)
	return err
}

// printSet prints the change marker that precedes the record line.
func (p *Printer) printSet(r types.Record) error {
	if p.opts.Verbose {
		_, err := fmt.Fprintf(p.writer, "%s %s == %s, valuelen %d\n",
			p.set.Sprint("set"), r.Name, r.Value, r.Serial.ValueLen())
		return err
	}
	_, err := fmt.Fprintf(p.writer, "%s ", p.set.Sprint("set"))
	return err
}
