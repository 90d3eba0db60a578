package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/pkg/types"
)

func init() {
	rootCmd.AddCommand(newLabelCmd())
}

func newLabelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label <name>",
		Short: "Show the security label and region file owning a name",
		Long: `The label command resolves a name against the context catalog or label
definition files, without opening any region.

Example:
  propctl label ro.boot.hardware
  propctl label persist.sys.locale --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLabel(args)
		},
	}
	return cmd
}

func runLabel(args []string) error {
	name := args[0]
	s, err := openStore()
	if err != nil {
		return err
	}
	label, ok := s.Label(name)
	if !ok && !s.Config().Legacy() {
		return types.Errorf(types.ErrKindNotFound, nil, "no label for %s", name)
	}
	path, err := s.RegionPath(label)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]string{"name": name, "label": label, "region": path})
	}
	printInfo("%s\n", name)
	printInfo("  label:  %s\n", labelOrNone(label))
	printInfo("  region: %s\n", path)
	return nil
}

func labelOrNone(l string) string {
	if l == "" {
		return "(none)"
	}
	return l
}
