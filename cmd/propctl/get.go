package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/props"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Print a single property",
		Long: `The get command resolves one property in the region its label maps to.
A name with a leading or trailing '*' is handled like list.

Example:
  propctl get ro.build.type
  propctl get ro.build.type -v -s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.Context(), args)
		},
	}
	return cmd
}

func runGet(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	name, err := props.ValidateName(args[0])
	if err != nil {
		return err
	}
	if props.IsGlob(name) {
		return runList(ctx, []string{name})
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	res, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	return newPrinter().PrintRecord(res.Record)
}
