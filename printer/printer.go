// Package printer renders property records as text lines or JSON.
package printer

import (
	"io"

	"github.com/fatih/color"

	"github.com/joshuapare/propkit/pkg/types"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs one "[name]: [value]" line per record.
	FormatText Format = "text"

	// FormatJSON outputs JSON objects.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// Verbose adds the raw metadata word to every record.
	// Default: false
	Verbose bool

	// Color highlights names and labels in text output.
	// Default: false
	Color bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{Format: FormatText}
}

// Printer writes records to an io.Writer.
type Printer struct {
	opts   Options
	writer io.Writer

	name  *color.Color
	label *color.Color
	set   *color.Color
}

// New creates a new Printer.
//
// Example:
//
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintRecords(recs)
func New(w io.Writer, opts Options) *Printer {
	p := &Printer{
		opts:   opts,
		writer: w,
		name:   color.New(color.FgCyan),
		label:  color.New(color.FgYellow),
		set:    color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.name, p.label, p.set} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// PrintRecord prints a single record.
func (p *Printer) PrintRecord(r types.Record) error {
	if p.opts.Format == FormatJSON {
		return p.writeJSON(p.toJSON(r, false))
	}
	return p.printLine(r)
}

// PrintRecords prints records in order. JSON output is a single array.
func (p *Printer) PrintRecords(recs []types.Record) error {
	if p.opts.Format == FormatJSON {
		out := make([]jsonRecord, len(recs))
		for i, r := range recs {
			out[i] = p.toJSON(r, false)
		}
		return p.writeJSON(out)
	}
	for _, r := range recs {
		if err := p.printLine(r); err != nil {
			return err
		}
	}
	return nil
}

// PrintUpdate prints the record after a write, marking it when the write
// changed it.
func (p *Printer) PrintUpdate(r types.Record, changed bool) error {
	if p.opts.Format == FormatJSON {
		return p.writeJSON(p.toJSON(r, changed))
	}
	if changed {
		if err := p.printSet(r); err != nil {
			return err
		}
	}
	return p.printLine(r)
}

// PrintUpdates prints several written records; changed[i] marks recs[i].
// JSON output is a single array.
func (p *Printer) PrintUpdates(recs []types.Record, changed []bool) error {
	if p.opts.Format == FormatJSON {
		out := make([]jsonRecord, len(recs))
		for i, r := range recs {
			out[i] = p.toJSON(r, i < len(changed) && changed[i])
		}
		return p.writeJSON(out)
	}
	for i, r := range recs {
		if err := p.PrintUpdate(r, i < len(changed) && changed[i]); err != nil {
			return err
		}
	}
	return nil
}
