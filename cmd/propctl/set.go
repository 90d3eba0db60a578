package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/internal/format"
	"github.com/joshuapare/propkit/props"
)

func init() {
	rootCmd.AddCommand(newSetCmd())
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <name> <value> [count]",
		Short: "Set a property value and optionally its change counter",
		Long: `The set command writes a value (and optionally a 16-bit counter) into the
region owning the name. Missing names are created after confirmation unless
--yes is given. Requires root.

Example:
  propctl set persist.sys.locale en-US
  propctl set debug.my.flag 1 3 --yes`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd.Context(), args)
		},
	}
	return cmd
}

// parseCount parses a counter argument, keeping its low 16 bits.
func parseCount(s string) (uint32, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: %w", s, err)
	}
	return uint32(n) & format.SerialCountMask, nil
}

func runSet(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	name, err := props.ValidateName(args[0])
	if err != nil {
		return err
	}
	if props.IsGlob(name) {
		return fmt.Errorf("set needs a single name, use count for patterns")
	}
	value := args[1]
	count := uint32(format.CountUnset)
	if len(args) == 3 {
		if count, err = parseCount(args[2]); err != nil {
			return err
		}
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	res, err := s.Update(ctx, name, &value, count)
	if err != nil {
		return err
	}
	return newPrinter().PrintUpdate(res.Record, res.Changed)
}
