package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/joshuapare/propkit/pkg/types"
	"github.com/joshuapare/propkit/props"
)

func init() {
	rootCmd.AddCommand(newCountCmd())
}

func newCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count <name|pattern> <count>",
		Short: "Set the change counter of one or many properties",
		Long: `The count command stores a 16-bit counter in every property the name or
pattern selects. Requires root.

Example:
  propctl count ro.build.type 2
  propctl count 'persist.*' 0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd.Context(), args)
		},
	}
	return cmd
}

func runCount(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	pattern, err := props.ValidateName(args[0])
	if err != nil {
		return err
	}
	count, err := parseCount(args[1])
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	results, err := s.SetCount(ctx, pattern, count)
	p := newPrinter()
	if !props.IsGlob(pattern) {
		for _, r := range results {
			if perr := p.PrintUpdate(r.Record, r.Changed); perr != nil {
				return perr
			}
		}
		return err
	}
	recs := make([]types.Record, len(results))
	changed := make([]bool, len(results))
	for i, r := range results {
		recs[i], changed[i] = r.Record, r.Changed
	}
	if perr := p.PrintUpdates(recs, changed); perr != nil {
		return multierr.Append(err, perr)
	}
	return err
}
