package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [region]",
		Short: "Report a region's header and usage",
		Long: `The info command opens one region read-only and prints its header fields,
how much of the data buffer is in use, and how many records it holds. The
region is a label, a file path, or nothing for the single region below SDK 24.

Example:
  propctl info u:object_r:default_prop:s0
  propctl info /dev/__properties__/u:object_r:system_prop:s0 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	region := ""
	if len(args) == 1 {
		region = args[0]
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	st, err := s.Inspect(region)
	if err != nil {
		return fmt.Errorf("failed to inspect region: %w", err)
	}

	if jsonOut {
		return printJSON(st)
	}

	h := st.Header
	printInfo("\nRegion Information:\n")
	printInfo("  File: %s\n", st.Path)
	if st.Label != "" {
		printInfo("  Label: %s\n", st.Label)
	}
	printInfo("  Magic: 0x%08X\n", h.Magic)
	printInfo("  Version: 0x%08X\n", h.Version)
	printInfo("  Serial: %d\n", h.Serial)
	printInfo("  Used: %s of %s (%.1f%%)\n",
		humanize.IBytes(uint64(h.BytesUsed)),
		humanize.IBytes(uint64(h.Capacity)),
		100*float64(h.BytesUsed)/float64(h.Capacity))
	printInfo("  Free: %s\n", humanize.IBytes(uint64(st.Free)))
	printInfo("  Records: %s\n", humanize.Comma(int64(st.Records)))
	return nil
}
