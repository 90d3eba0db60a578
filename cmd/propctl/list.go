package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/props"
)

func init() {
	rootCmd.AddCommand(newListCmd())
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [pattern]",
		Short: "List properties, optionally filtered by a wildcard",
		Long: `The list command walks every property region and prints the records
sorted by name. A pattern may carry a leading and/or trailing '*'; "all" or
"**" selects everything.

Example:
  propctl list
  propctl list 'ro.boot.*'
  propctl list '*debug*' -s`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), args)
		},
	}
	return cmd
}

func runList(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	pattern := ""
	if len(args) == 1 {
		p, err := props.ValidateName(args[0])
		if err != nil {
			return err
		}
		pattern = p
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	recs, err := s.List(ctx, pattern)
	if err != nil {
		return fmt.Errorf("failed to list properties: %w", err)
	}
	printVerbose("%d properties\n", len(recs))
	return newPrinter().PrintRecords(recs)
}
